package redisx

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Dedup tracks processed event ids per consuming service.
type Dedup struct {
	R       *redis.Client
	Service string
}

// Seen marks id as processed and reports whether it had been seen before.
func (d Dedup) Seen(ctx context.Context, id string) (bool, error) {
	key := fmt.Sprintf(KeyDedup, d.Service, id)
	ok, err := d.R.SetNX(ctx, key, "1", TTLDedup).Result()
	if err != nil {
		return false, err
	}
	return !ok, nil
}
