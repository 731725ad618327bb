package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lifeline/internal/domain"
	"lifeline/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewReservationRepo(pool *pgxpool.Pool, logger *slog.Logger) *ReservationRepo {
	return &ReservationRepo{pool: pool, logger: logger}
}

const reservationColumns = `id, kind, hospital_id, subject_id, blood_type, quantity,
	created_at, expires_at, released_at`

func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	var res domain.Reservation
	err := row.Scan(
		&res.ID, &res.Kind, &res.HospitalID, &res.SubjectID,
		&res.BloodType, &res.Quantity,
		&res.CreatedAt, &res.ExpiresAt, &res.ReleasedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepo) Create(ctx context.Context, res *domain.Reservation) error {
	const op = "postgres.Reservation.Create"

	const query = `
INSERT INTO reservations (id, kind, hospital_id, subject_id, blood_type, quantity, created_at, expires_at, released_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	_, err := r.pool.Exec(ctx, query,
		res.ID, res.Kind, res.HospitalID, res.SubjectID,
		res.BloodType, res.Quantity, res.CreatedAt, res.ExpiresAt, res.ReleasedAt,
	)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (r *ReservationRepo) FindActiveBySubject(ctx context.Context, subjectID uuid.UUID) (*domain.Reservation, error) {
	const op = "postgres.Reservation.FindActiveBySubject"

	query := `SELECT ` + reservationColumns + ` FROM reservations
WHERE subject_id = $1 AND released_at IS NULL
ORDER BY created_at DESC
LIMIT 1`

	res, err := scanReservation(r.pool.QueryRow(ctx, query, subjectID))
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return res, nil
}

func (r *ReservationRepo) Release(ctx context.Context, id uuid.UUID, at time.Time) error {
	const op = "postgres.Reservation.Release"

	const query = `UPDATE reservations SET released_at = $2 WHERE id = $1 AND released_at IS NULL`

	ct, err := r.pool.Exec(ctx, query, id, at)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	return nil
}

func (r *ReservationRepo) ListExpired(ctx context.Context, now time.Time) ([]*domain.Reservation, error) {
	const op = "postgres.Reservation.ListExpired"

	query := `SELECT ` + reservationColumns + ` FROM reservations
WHERE released_at IS NULL AND expires_at IS NOT NULL AND expires_at < $1`

	rows, err := r.pool.Query(ctx, query, now)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	out := make([]*domain.Reservation, 0, 8)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, e.WrapError(ctx, op, err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return out, nil
}
