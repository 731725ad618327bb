package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"lifeline/internal/domain"
	"lifeline/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccidentRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewAccidentRepo(pool *pgxpool.Pool, logger *slog.Logger) *AccidentRepo {
	return &AccidentRepo{pool: pool, logger: logger}
}

const accidentColumns = `id, title, description, lat, lng, status,
	assigned_ambulance, casualty_ids, created_at, completed_at`

func scanAccident(row pgx.Row) (*domain.Accident, error) {
	var (
		acc      domain.Accident
		assigned []byte
	)
	err := row.Scan(
		&acc.ID, &acc.Title, &acc.Description,
		&acc.Location.Lat, &acc.Location.Lng, &acc.Status,
		&assigned, &acc.CasualtyIDs, &acc.CreatedAt, &acc.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(assigned) > 0 {
		if err := json.Unmarshal(assigned, &acc.AssignedAmbulance); err != nil {
			return nil, err
		}
	}
	if acc.CasualtyIDs == nil {
		acc.CasualtyIDs = []uuid.UUID{}
	}
	return &acc, nil
}

func (r *AccidentRepo) Create(ctx context.Context, acc *domain.Accident) error {
	const op = "postgres.Accident.Create"

	assigned, err := marshalNullable(acc.AssignedAmbulance)
	if err != nil {
		return e.Wrap(op, err)
	}

	const query = `
INSERT INTO accidents (id, title, description, lat, lng, status, assigned_ambulance, casualty_ids, created_at, completed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`
	_, err = r.pool.Exec(ctx, query,
		acc.ID, acc.Title, acc.Description,
		acc.Location.Lat, acc.Location.Lng, acc.Status,
		assigned, acc.CasualtyIDs, acc.CreatedAt, acc.CompletedAt,
	)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (r *AccidentRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Accident, error) {
	const op = "postgres.Accident.Get"

	query := `SELECT ` + accidentColumns + ` FROM accidents WHERE id = $1`

	acc, err := scanAccident(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return acc, nil
}

// Update rewrites the row only while the status still matches what the
// caller read; zero affected rows on an existing accident is a lost race.
func (r *AccidentRepo) Update(ctx context.Context, acc *domain.Accident, from domain.AccidentStatus) error {
	const op = "postgres.Accident.Update"

	assigned, err := marshalNullable(acc.AssignedAmbulance)
	if err != nil {
		return e.Wrap(op, err)
	}

	const query = `
UPDATE accidents
SET title = $3, description = $4, lat = $5, lng = $6, status = $7,
    assigned_ambulance = $8, casualty_ids = $9, completed_at = $10
WHERE id = $1 AND status = $2
`
	ct, err := r.pool.Exec(ctx, query,
		acc.ID, from,
		acc.Title, acc.Description, acc.Location.Lat, acc.Location.Lng,
		acc.Status, assigned, acc.CasualtyIDs, acc.CompletedAt,
	)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	if ct.RowsAffected() == 0 {
		if _, err := r.Get(ctx, acc.ID); err != nil {
			return err
		}
		return fmt.Errorf("%s: %w", op, e.ErrConflict)
	}
	return nil
}

func (r *AccidentRepo) FindByAmbulance(ctx context.Context, ambulanceID uuid.UUID) (*domain.Accident, error) {
	const op = "postgres.Accident.FindByAmbulance"

	query := `SELECT ` + accidentColumns + ` FROM accidents
WHERE assigned_ambulance->>'id' = $1 AND status NOT IN ('completed', 'cancelled')
ORDER BY created_at DESC
LIMIT 1`

	acc, err := scanAccident(r.pool.QueryRow(ctx, query, ambulanceID.String()))
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return acc, nil
}

func marshalNullable(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	switch t := v.(type) {
	case *domain.AssignedAmbulance:
		if t == nil {
			return nil, nil
		}
	case *domain.AssignedHospital:
		if t == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}
