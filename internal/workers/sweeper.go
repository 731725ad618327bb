package workers

import (
	"context"
	"log/slog"
	"time"

	"lifeline/internal/domain"
	"lifeline/internal/service"

	"github.com/robfig/cron/v3"
)

// ReservationSweeper releases bed reservations whose advisory expiry passed
// without the trip completing, restoring the reserved bed. The dispatch core
// never does this itself; expiry is strictly this worker's concern.
type ReservationSweeper struct {
	reservations service.ReservationRepository
	hospitals    service.HospitalRepository
	logger       *slog.Logger
	cron         *cron.Cron
}

func NewReservationSweeper(
	reservations service.ReservationRepository,
	hospitals service.HospitalRepository,
	logger *slog.Logger,
) *ReservationSweeper {
	return &ReservationSweeper{
		reservations: reservations,
		hospitals:    hospitals,
		logger:       logger,
		cron:         cron.New(),
	}
}

// Start schedules the sweep every five minutes and returns immediately.
func (w *ReservationSweeper) Start(ctx context.Context) error {
	_, err := w.cron.AddFunc("*/5 * * * *", func() {
		w.Sweep(ctx)
	})
	if err != nil {
		return err
	}
	w.cron.Start()
	return nil
}

func (w *ReservationSweeper) Stop() {
	<-w.cron.Stop().Done()
}

func (w *ReservationSweeper) Sweep(ctx context.Context) {
	now := time.Now().UTC()
	expired, err := w.reservations.ListExpired(ctx, now)
	if err != nil {
		w.logger.Error("expired reservation query failed", slog.Any("error", err))
		return
	}

	released := 0
	for _, res := range expired {
		if res.Kind == domain.ReservationBed {
			if err := w.hospitals.ReleaseBed(ctx, res.HospitalID); err != nil {
				w.logger.Error("bed release failed",
					slog.String("reservation_id", res.ID.String()),
					slog.Any("error", err),
				)
				continue
			}
		}
		if err := w.reservations.Release(ctx, res.ID, now); err != nil {
			w.logger.Error("reservation release failed",
				slog.String("reservation_id", res.ID.String()),
				slog.Any("error", err),
			)
			continue
		}
		released++
	}

	if released > 0 {
		w.logger.Info("expired reservations swept", slog.Int("released", released))
	}
}
