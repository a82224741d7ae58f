package catalog

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/milsabores/storefront/internal/redisx"
)

// Cache keeps the full product listing in redis so the hot read path skips
// the database. A miss or a decode failure just falls through to the store.
type Cache struct{ Redis *redis.Client }

func (c *Cache) GetList(ctx context.Context) ([]Product, bool) {
	s, err := c.Redis.Get(ctx, redisx.KeyCatalog).Result()
	if err != nil || s == "" {
		return nil, false
	}
	var out []Product
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, false
	}
	return out, true
}

func (c *Cache) SetList(ctx context.Context, products []Product) error {
	b, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return c.Redis.Set(ctx, redisx.KeyCatalog, b, redisx.TTLCatalogCache).Err()
}

func (c *Cache) Invalidate(ctx context.Context) error {
	return c.Redis.Del(ctx, redisx.KeyCatalog).Err()
}
