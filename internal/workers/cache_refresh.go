package workers

import (
	"context"
	"log/slog"
	"time"

	"lifeline/internal/service"
)

const refreshInterval = 30 * time.Second
const cacheTTL = 90 * time.Second

// CacheRefresher keeps the redis hospital snapshot warm so read paths stay
// off postgres between refreshes.
type CacheRefresher struct {
	hospitals service.HospitalRepository
	cache     service.HospitalCache
	logger    *slog.Logger
}

func NewCacheRefresher(hospitals service.HospitalRepository, cache service.HospitalCache, logger *slog.Logger) *CacheRefresher {
	return &CacheRefresher{hospitals: hospitals, cache: cache, logger: logger}
}

func (w *CacheRefresher) Run(ctx context.Context) {
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	w.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *CacheRefresher) refresh(ctx context.Context) {
	hospitals, err := w.hospitals.ListActive(ctx)
	if err != nil {
		w.logger.Error("hospital roster load failed", slog.Any("error", err))
		return
	}
	if err := w.cache.SetActive(ctx, hospitals, cacheTTL); err != nil {
		w.logger.Error("hospital cache refresh failed", slog.Any("error", err))
		return
	}
	w.logger.Debug("hospital cache refreshed", slog.Int("count", len(hospitals)))
}
