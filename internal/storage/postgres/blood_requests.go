package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"lifeline/internal/domain"
	"lifeline/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BloodRequestRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewBloodRequestRepo(pool *pgxpool.Pool, logger *slog.Logger) *BloodRequestRepo {
	return &BloodRequestRepo{pool: pool, logger: logger}
}

const bloodRequestColumns = `id, requesting_hospital_id, blood_type, units_needed, urgency,
	status, donor_hospital_id, delivery_eta_minutes, reject_reason, created_at, resolved_at`

func scanBloodRequest(row pgx.Row) (*domain.BloodRequest, error) {
	var req domain.BloodRequest
	err := row.Scan(
		&req.ID, &req.RequestingHospitalID, &req.BloodType, &req.UnitsNeeded,
		&req.Urgency, &req.Status, &req.DonorHospitalID, &req.DeliveryEtaMinutes,
		&req.RejectReason, &req.CreatedAt, &req.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *BloodRequestRepo) Create(ctx context.Context, req *domain.BloodRequest) error {
	const op = "postgres.BloodRequest.Create"

	const query = `
INSERT INTO blood_requests (id, requesting_hospital_id, blood_type, units_needed, urgency,
	status, donor_hospital_id, delivery_eta_minutes, reject_reason, created_at, resolved_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`
	_, err := r.pool.Exec(ctx, query,
		req.ID, req.RequestingHospitalID, req.BloodType, req.UnitsNeeded, req.Urgency,
		req.Status, req.DonorHospitalID, req.DeliveryEtaMinutes, req.RejectReason,
		req.CreatedAt, req.ResolvedAt,
	)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (r *BloodRequestRepo) Get(ctx context.Context, id uuid.UUID) (*domain.BloodRequest, error) {
	const op = "postgres.BloodRequest.Get"

	query := `SELECT ` + bloodRequestColumns + ` FROM blood_requests WHERE id = $1`

	req, err := scanBloodRequest(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return req, nil
}

// Update applies only while the row still holds the status the caller read,
// so two concurrent accepts can never both win.
func (r *BloodRequestRepo) Update(ctx context.Context, req *domain.BloodRequest, from domain.BloodRequestStatus) error {
	const op = "postgres.BloodRequest.Update"

	const query = `
UPDATE blood_requests
SET status = $3, donor_hospital_id = $4, delivery_eta_minutes = $5,
    reject_reason = $6, resolved_at = $7
WHERE id = $1 AND status = $2
`
	ct, err := r.pool.Exec(ctx, query,
		req.ID, from, req.Status, req.DonorHospitalID,
		req.DeliveryEtaMinutes, req.RejectReason, req.ResolvedAt,
	)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	if ct.RowsAffected() == 0 {
		if _, err := r.Get(ctx, req.ID); err != nil {
			return err
		}
		return fmt.Errorf("%s: %w", op, e.ErrConflict)
	}
	return nil
}
