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

type CasualtyRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewCasualtyRepo(pool *pgxpool.Pool, logger *slog.Logger) *CasualtyRepo {
	return &CasualtyRepo{pool: pool, logger: logger}
}

const casualtyColumns = `id, accident_id, name, age, gender, injury_type, severity,
	blood_type, blood_units_needed, status, assigned_hospital, created_at`

func scanCasualty(row pgx.Row) (*domain.Casualty, error) {
	var (
		c        domain.Casualty
		assigned []byte
	)
	err := row.Scan(
		&c.ID, &c.AccidentID, &c.Name, &c.Age, &c.Gender,
		&c.InjuryType, &c.Severity, &c.BloodType, &c.BloodUnitsNeeded,
		&c.Status, &assigned, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(assigned) > 0 {
		if err := json.Unmarshal(assigned, &c.AssignedHospital); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func (r *CasualtyRepo) Create(ctx context.Context, c *domain.Casualty) error {
	const op = "postgres.Casualty.Create"

	assigned, err := marshalNullable(c.AssignedHospital)
	if err != nil {
		return e.Wrap(op, err)
	}

	const query = `
INSERT INTO casualties (id, accident_id, name, age, gender, injury_type, severity,
	blood_type, blood_units_needed, status, assigned_hospital, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`
	_, err = r.pool.Exec(ctx, query,
		c.ID, c.AccidentID, c.Name, c.Age, c.Gender,
		c.InjuryType, c.Severity, c.BloodType, c.BloodUnitsNeeded,
		c.Status, assigned, c.CreatedAt,
	)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (r *CasualtyRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Casualty, error) {
	const op = "postgres.Casualty.Get"

	query := `SELECT ` + casualtyColumns + ` FROM casualties WHERE id = $1`

	c, err := scanCasualty(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return c, nil
}

func (r *CasualtyRepo) Update(ctx context.Context, c *domain.Casualty) error {
	const op = "postgres.Casualty.Update"

	assigned, err := marshalNullable(c.AssignedHospital)
	if err != nil {
		return e.Wrap(op, err)
	}

	const query = `
UPDATE casualties
SET name = $2, age = $3, gender = $4, injury_type = $5, severity = $6,
    blood_type = $7, blood_units_needed = $8, status = $9, assigned_hospital = $10
WHERE id = $1
`
	ct, err := r.pool.Exec(ctx, query,
		c.ID, c.Name, c.Age, c.Gender, c.InjuryType, c.Severity,
		c.BloodType, c.BloodUnitsNeeded, c.Status, assigned,
	)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	return nil
}

func (r *CasualtyRepo) ListByAccident(ctx context.Context, accidentID uuid.UUID) ([]*domain.Casualty, error) {
	const op = "postgres.Casualty.ListByAccident"

	query := `SELECT ` + casualtyColumns + ` FROM casualties WHERE accident_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, accidentID)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	out := make([]*domain.Casualty, 0, 4)
	for rows.Next() {
		c, err := scanCasualty(rows)
		if err != nil {
			return nil, e.WrapError(ctx, op, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return out, nil
}
