package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"log/slog"

	"lifeline/internal/config"
	"lifeline/internal/domain"
	"lifeline/pkg/e"
)

// EventDequeuer is the consuming side of the event queue.
type EventDequeuer interface {
	BRPop(ctx context.Context, timeout time.Duration) (domain.DispatchEvent, error)
}

// EventNotifier drains the domain-event queue and POSTs each event to the
// configured sink. Delivery is best effort: failures are logged and the
// event is dropped after the retry budget, never replayed into core state.
type EventNotifier struct {
	logger *slog.Logger
	cfg    config.NotifyConfig
	queue  EventDequeuer
	http   *http.Client
}

func NewEventNotifier(logger *slog.Logger, cfg config.NotifyConfig, q EventDequeuer) *EventNotifier {
	return &EventNotifier{
		logger: logger,
		cfg:    cfg,
		queue:  q,
		http:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (n *EventNotifier) Run(ctx context.Context) {
	if n.cfg.Disabled {
		n.logger.Info("event notifier disabled, events stay queued")
		return
	}
	n.logger.Info("event notifier started", slog.String("url", n.cfg.URL))

	for {
		select {
		case <-ctx.Done():
			n.logger.Info("event notifier stopped", slog.String("reason", ctx.Err().Error()))
			return
		default:
		}

		ev, err := n.queue.BRPop(ctx, 5*time.Second)
		if err != nil {
			if errors.Is(err, e.ErrQueueEmpty) {
				continue
			}
			n.logger.Error("event dequeue failed", slog.Any("error", err))
			time.Sleep(500 * time.Millisecond)
			continue
		}

		n.sendWithRetry(ctx, ev)
	}
}

func (n *EventNotifier) sendWithRetry(ctx context.Context, ev domain.DispatchEvent) {
	const maxRetries = 3

	body, err := json.Marshal(ev)
	if err != nil {
		n.logger.Error("marshal event failed", slog.String("error", err.Error()))
		return
	}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.URL, bytes.NewReader(body))
		if err != nil {
			n.logger.Error("create notify request failed", slog.String("error", err.Error()))
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := n.http.Do(req)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}

		reason := "unknown"
		if err != nil {
			reason = err.Error()
		} else if resp != nil {
			reason = resp.Status
		}
		n.logger.Warn("event delivery failed",
			slog.Int("attempt", attempt),
			slog.String("type", string(ev.Type)),
			slog.String("reason", reason),
		)

		time.Sleep(time.Duration(attempt) * time.Second)
	}
}
