package system

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Pinger is satisfied by the postgres pool and the redis client.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	logger *slog.Logger
	db     Pinger
	cache  Pinger
}

func NewHandler(logger *slog.Logger, db, cache Pinger) *Handler {
	return &Handler{logger: logger, db: db, cache: cache}
}

// Health reports the process and its backing stores. Degraded stores turn the
// response into a 503 so load balancers drain the instance.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := map[string]string{"service": "ok"}

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Error("postgres health check failed", slog.Any("error", err))
		checks["postgres"] = "down"
		status = http.StatusServiceUnavailable
	} else {
		checks["postgres"] = "ok"
	}

	if err := h.cache.Ping(ctx); err != nil {
		h.logger.Error("redis health check failed", slog.Any("error", err))
		checks["redis"] = "down"
		status = http.StatusServiceUnavailable
	} else {
		checks["redis"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(checks); err != nil {
		h.logger.Error("json encode failed", slog.Any("error", err))
	}
}
