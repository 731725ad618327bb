package e

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func Wrap(message string, err error) error {
	return fmt.Errorf("%s: %w", message, err)
}

var (
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("concurrency conflict")
	ErrValidation           = errors.New("validation failed")
	ErrInvalidState         = errors.New("invalid state transition")
	ErrInsufficientResource = errors.New("insufficient resource")
	ErrInvalidCoordinates   = errors.New("invalid coordinates")
	ErrInternal             = errors.New("internal error")
	ErrDeadline             = errors.New("deadline exceeded")
	ErrCanceled             = errors.New("context canceled")
	ErrQueueEmpty           = errors.New("event queue is empty")
)

// WrapError maps driver-level errors onto the package sentinels so callers
// only ever match against the taxonomy above.
func WrapError(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, ErrDeadline)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, ErrCanceled)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%s: %w", op, ErrConflict)
		case "23514":
			// check constraints guard the non-negative bed/blood counters
			return fmt.Errorf("%s: %w", op, ErrInsufficientResource)
		case "23503":
			return fmt.Errorf("%s: %w", op, ErrValidation)
		default:
			return fmt.Errorf("%s: pg error %s: %w", op, pgErr.Code, ErrInternal)
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, ErrInternal)
}
