package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lifeline/internal/domain"
	"lifeline/internal/service"
	"lifeline/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AmbulanceRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewAmbulanceRepo(pool *pgxpool.Pool, logger *slog.Logger) *AmbulanceRepo {
	return &AmbulanceRepo{pool: pool, logger: logger}
}

const ambulanceColumns = `id, call_sign, driver_name, password_hash, lat, lng, status,
	current_accident_id, destination_hospital_id, updated_at`

func scanAmbulance(row pgx.Row) (*domain.Ambulance, error) {
	var a domain.Ambulance
	err := row.Scan(
		&a.ID, &a.CallSign, &a.DriverName, &a.PasswordHash,
		&a.Location.Lat, &a.Location.Lng, &a.Status,
		&a.CurrentAccidentID, &a.DestinationHospitalID, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AmbulanceRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Ambulance, error) {
	const op = "postgres.Ambulance.Get"

	query := `SELECT ` + ambulanceColumns + ` FROM ambulances WHERE id = $1`

	a, err := scanAmbulance(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return a, nil
}

func (r *AmbulanceRepo) ListAvailable(ctx context.Context) ([]domain.Ambulance, error) {
	const op = "postgres.Ambulance.ListAvailable"

	query := `SELECT ` + ambulanceColumns + ` FROM ambulances WHERE status = $1 ORDER BY call_sign`

	rows, err := r.pool.Query(ctx, query, domain.AmbulanceAvailable)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	out := make([]domain.Ambulance, 0, 8)
	for rows.Next() {
		a, err := scanAmbulance(rows)
		if err != nil {
			return nil, e.WrapError(ctx, op, err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return out, nil
}

// Transition is the conditional status update: it only applies while the row
// still holds the status the caller read. Zero rows affected on an existing
// ambulance means a lost race, reported as e.ErrConflict.
func (r *AmbulanceRepo) Transition(ctx context.Context, id uuid.UUID, from, to domain.AmbulanceStatus, assign *service.AmbulanceAssignment) error {
	const op = "postgres.Ambulance.Transition"

	var tag int64
	if assign != nil {
		const query = `
UPDATE ambulances
SET status = $3, current_accident_id = $4, destination_hospital_id = $5, updated_at = $6
WHERE id = $1 AND status = $2
`
		ct, err := r.pool.Exec(ctx, query, id, from, to, assign.AccidentID, assign.DestinationHospitalID, time.Now().UTC())
		if err != nil {
			r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
			return e.WrapError(ctx, op, err)
		}
		tag = ct.RowsAffected()
	} else {
		const query = `
UPDATE ambulances SET status = $3, updated_at = $4
WHERE id = $1 AND status = $2
`
		ct, err := r.pool.Exec(ctx, query, id, from, to, time.Now().UTC())
		if err != nil {
			r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
			return e.WrapError(ctx, op, err)
		}
		tag = ct.RowsAffected()
	}

	if tag == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("%s: %w", op, e.ErrConflict)
	}
	return nil
}

func (r *AmbulanceRepo) SetStatus(ctx context.Context, id uuid.UUID, to domain.AmbulanceStatus) error {
	const op = "postgres.Ambulance.SetStatus"

	const query = `
UPDATE ambulances
SET status = $2,
    current_accident_id = CASE WHEN $2 = 'available' THEN NULL ELSE current_accident_id END,
    destination_hospital_id = CASE WHEN $2 = 'available' THEN NULL ELSE destination_hospital_id END,
    updated_at = $3
WHERE id = $1
`
	ct, err := r.pool.Exec(ctx, query, id, to, time.Now().UTC())
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	return nil
}

func (r *AmbulanceRepo) UpdateLocation(ctx context.Context, id uuid.UUID, loc domain.Location) error {
	const op = "postgres.Ambulance.UpdateLocation"

	const query = `UPDATE ambulances SET lat = $2, lng = $3, updated_at = $4 WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id, loc.Lat, loc.Lng, time.Now().UTC())
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	return nil
}
