package redisx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

func New(addr string) *redis.Client {
	r := redis.NewClient(&redis.Options{Addr: addr})
	return r.WithTimeout(2 * time.Second)
}

// Dedup marks keys first-seen atomically via SET NX so that concurrent
// deliveries of the same notification or event cannot both pass.
type Dedup struct {
	R   *redis.Client
	TTL time.Duration
}

// SeenOrMark returns true if the key was already marked. On a fresh key it
// marks it and returns false.
func (d *Dedup) SeenOrMark(ctx context.Context, key string) (bool, error) {
	ok, err := d.R.SetNX(ctx, key, "1", d.TTL).Result()
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// Unmark releases a marked key so a redelivery can pass the gate again. Used
// when the work behind the mark failed and must be retried.
func (d *Dedup) Unmark(ctx context.Context, key string) error {
	return d.R.Del(ctx, key).Err()
}
