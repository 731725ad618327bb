package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"lifeline/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

// HospitalCache holds the active-hospital roster as a single JSON blob with
// a TTL. The refresher worker keeps it warm; read paths fall through to
// postgres on a miss.
type HospitalCache struct {
	client *goredis.Client
	key    string
}

func NewHospitalCache(r *Redis) *HospitalCache {
	return &HospitalCache{
		client: r.Client,
		key:    "hospitals:active",
	}
}

func (c *HospitalCache) GetActive(ctx context.Context) ([]*domain.Hospital, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var hospitals []*domain.Hospital
	if err := json.Unmarshal(data, &hospitals); err != nil {
		return nil, err
	}
	return hospitals, nil
}

func (c *HospitalCache) SetActive(ctx context.Context, hospitals []*domain.Hospital, ttl time.Duration) error {
	b, err := json.Marshal(hospitals)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, b, ttl).Err()
}
