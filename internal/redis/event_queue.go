package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"lifeline/internal/domain"
	"lifeline/pkg/e"

	"github.com/redis/go-redis/v9"
)

// EventQueue buffers domain events between the coordinators and the
// notifier. LPUSH on emit, BRPop on drain.
type EventQueue struct {
	client *redis.Client
	key    string
}

func NewEventQueue(client *redis.Client, key string) *EventQueue {
	return &EventQueue{client: client, key: key}
}

func (q *EventQueue) Enqueue(ctx context.Context, ev domain.DispatchEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, b).Err()
}

func (q *EventQueue) BRPop(ctx context.Context, timeout time.Duration) (domain.DispatchEvent, error) {
	var ev domain.DispatchEvent

	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ev, e.ErrQueueEmpty
		}
		return ev, err
	}
	if len(res) < 2 {
		return ev, redis.Nil
	}
	if err := json.Unmarshal([]byte(res[1]), &ev); err != nil {
		return ev, err
	}
	return ev, nil
}
