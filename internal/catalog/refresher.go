package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
)

var ErrRefreshInFlight = errors.New("catalog: refresh already in flight")

// Source is the remote product feed.
type Source interface {
	FetchProducts(ctx context.Context) ([]Product, error)
}

// Records is the locally persisted catalog the refresher replaces.
type Records interface {
	ReplaceAll(ctx context.Context, products []Product) error
	Count(ctx context.Context) (int, error)
}

type invalidator interface {
	Invalidate(ctx context.Context) error
}

// Refresher performs a single fetch attempt per Refresh call. Callers decide
// when to retry. At most one refresh runs at a time.
type Refresher struct {
	Source Source
	Store  Records
	Cache  invalidator // optional
	Log    *zap.Logger

	busy atomic.Bool
}

// Refresh fetches the upstream catalog and replaces the local record set
// atomically. On fetch failure the local set is left untouched unless it is
// empty, in which case it is seeded from the built-in fallback; the fetch
// error is still returned.
func (r *Refresher) Refresh(ctx context.Context) error {
	if !r.busy.CompareAndSwap(false, true) {
		return ErrRefreshInFlight
	}
	defer r.busy.Store(false)

	products, err := r.Source.FetchProducts(ctx)
	if err != nil {
		if seedErr := r.seedIfEmpty(ctx); seedErr != nil {
			return seedErr
		}
		return fmt.Errorf("catalog: fetch: %w", err)
	}

	if err := r.Store.ReplaceAll(ctx, products); err != nil {
		return fmt.Errorf("catalog: replace: %w", err)
	}
	r.invalidate(ctx)
	r.Log.Info("catalog refreshed", zap.Int("products", len(products)))
	return nil
}

func (r *Refresher) seedIfEmpty(ctx context.Context) error {
	n, err := r.Store.Count(ctx)
	if err != nil {
		return fmt.Errorf("catalog: count: %w", err)
	}
	if n > 0 {
		return nil
	}
	seed := Fallback()
	if err := r.Store.ReplaceAll(ctx, seed); err != nil {
		return fmt.Errorf("catalog: seed: %w", err)
	}
	r.invalidate(ctx)
	r.Log.Warn("upstream unavailable, seeded fallback catalog", zap.Int("products", len(seed)))
	return nil
}

func (r *Refresher) invalidate(ctx context.Context) {
	if r.Cache == nil {
		return
	}
	if err := r.Cache.Invalidate(ctx); err != nil {
		r.Log.Warn("catalog cache invalidate", zap.Error(err))
	}
}
