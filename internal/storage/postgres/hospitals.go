package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"lifeline/internal/domain"
	"lifeline/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HospitalRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewHospitalRepo(pool *pgxpool.Pool, logger *slog.Logger) *HospitalRepo {
	return &HospitalRepo{pool: pool, logger: logger}
}

const hospitalColumns = `id, name, password_hash, lat, lng, beds_available,
	staff_count, blood_inventory, specialties, is_available, updated_at`

func scanHospital(row pgx.Row) (*domain.Hospital, error) {
	var (
		h         domain.Hospital
		staff     []byte
		inventory []byte
	)
	err := row.Scan(
		&h.ID, &h.Name, &h.PasswordHash,
		&h.Location.Lat, &h.Location.Lng, &h.BedsAvailable,
		&staff, &inventory, &h.Specialties, &h.IsAvailable, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(staff, &h.StaffCount); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(inventory, &h.BloodInventory); err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HospitalRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Hospital, error) {
	const op = "postgres.Hospital.Get"

	query := `SELECT ` + hospitalColumns + ` FROM hospitals WHERE id = $1`

	h, err := scanHospital(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return h, nil
}

func (r *HospitalRepo) ListActive(ctx context.Context) ([]*domain.Hospital, error) {
	const op = "postgres.Hospital.ListActive"

	query := `SELECT ` + hospitalColumns + ` FROM hospitals WHERE is_available ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	out := make([]*domain.Hospital, 0, 8)
	for rows.Next() {
		h, err := scanHospital(rows)
		if err != nil {
			return nil, e.WrapError(ctx, op, err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return out, nil
}

// ReserveBed decrements beds_available only while a bed remains; the WHERE
// clause is the check-and-decrement, so concurrent reservations can never
// drive the count negative.
func (r *HospitalRepo) ReserveBed(ctx context.Context, id uuid.UUID) error {
	const op = "postgres.Hospital.ReserveBed"

	const query = `
UPDATE hospitals SET beds_available = beds_available - 1, updated_at = $2
WHERE id = $1 AND beds_available > 0
`
	ct, err := r.pool.Exec(ctx, query, id, time.Now().UTC())
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	if ct.RowsAffected() == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("%s: %w", op, e.ErrInsufficientResource)
	}
	return nil
}

func (r *HospitalRepo) ReleaseBed(ctx context.Context, id uuid.UUID) error {
	const op = "postgres.Hospital.ReleaseBed"

	const query = `
UPDATE hospitals SET beds_available = beds_available + 1, updated_at = $2
WHERE id = $1
`
	ct, err := r.pool.Exec(ctx, query, id, time.Now().UTC())
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	return nil
}

// WithdrawBlood applies a single conditional jsonb update so the per-type
// count is checked and decremented in one statement.
func (r *HospitalRepo) WithdrawBlood(ctx context.Context, id uuid.UUID, bloodType domain.BloodType, units int) error {
	const op = "postgres.Hospital.WithdrawBlood"

	if units <= 0 {
		return fmt.Errorf("%s: %w", op, e.ErrValidation)
	}

	const query = `
UPDATE hospitals
SET blood_inventory = jsonb_set(blood_inventory, ARRAY[$2::text],
        to_jsonb(COALESCE((blood_inventory->>$2)::int, 0) - $3)),
    updated_at = $4
WHERE id = $1 AND COALESCE((blood_inventory->>$2)::int, 0) >= $3
`
	ct, err := r.pool.Exec(ctx, query, id, string(bloodType), units, time.Now().UTC())
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	if ct.RowsAffected() == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("%s: %w", op, e.ErrInsufficientResource)
	}
	return nil
}

func (r *HospitalRepo) DepositBlood(ctx context.Context, id uuid.UUID, bloodType domain.BloodType, units int) error {
	const op = "postgres.Hospital.DepositBlood"

	if units <= 0 {
		return fmt.Errorf("%s: %w", op, e.ErrValidation)
	}

	const query = `
UPDATE hospitals
SET blood_inventory = jsonb_set(blood_inventory, ARRAY[$2::text],
        to_jsonb(COALESCE((blood_inventory->>$2)::int, 0) + $3)),
    updated_at = $4
WHERE id = $1
`
	ct, err := r.pool.Exec(ctx, query, id, string(bloodType), units, time.Now().UTC())
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	return nil
}
