package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	fetch func(ctx context.Context) ([]Product, error)
}

func (f *fakeSource) FetchProducts(ctx context.Context) ([]Product, error) { return f.fetch(ctx) }

type memRecords struct {
	products []Product
	replaced int
}

func (m *memRecords) ReplaceAll(_ context.Context, products []Product) error {
	m.products = append([]Product(nil), products...)
	m.replaced++
	return nil
}

func (m *memRecords) Count(context.Context) (int, error) { return len(m.products), nil }

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("success replaces the whole record set", func(t *testing.T) {
		upstream := []Product{{ID: 1, Code: "TC001", Name: "Torta"}, {ID: 2, Code: "PI001", Name: "Mousse"}}
		store := &memRecords{products: Fallback()}
		r := &Refresher{
			Source: &fakeSource{fetch: func(context.Context) ([]Product, error) { return upstream, nil }},
			Store:  store,
			Log:    zap.NewNop(),
		}
		require.NoError(t, r.Refresh(ctx))
		assert.Equal(t, upstream, store.products)
	})

	t.Run("failure with empty store seeds the fallback catalog", func(t *testing.T) {
		fetchErr := errors.New("connection refused")
		store := &memRecords{}
		r := &Refresher{
			Source: &fakeSource{fetch: func(context.Context) ([]Product, error) { return nil, fetchErr }},
			Store:  store,
			Log:    zap.NewNop(),
		}
		err := r.Refresh(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, fetchErr)
		assert.Len(t, store.products, 16)
	})

	t.Run("failure with populated store leaves it untouched", func(t *testing.T) {
		existing := []Product{{ID: 1, Code: "TC001"}}
		store := &memRecords{products: existing}
		r := &Refresher{
			Source: &fakeSource{fetch: func(context.Context) ([]Product, error) { return nil, errors.New("boom") }},
			Store:  store,
			Log:    zap.NewNop(),
		}
		require.Error(t, r.Refresh(ctx))
		assert.Equal(t, existing, store.products)
		assert.Zero(t, store.replaced)
	})

	t.Run("second concurrent refresh is rejected", func(t *testing.T) {
		entered := make(chan struct{})
		release := make(chan struct{})
		r := &Refresher{
			Source: &fakeSource{fetch: func(context.Context) ([]Product, error) {
				close(entered)
				<-release
				return nil, nil
			}},
			Store: &memRecords{},
			Log:   zap.NewNop(),
		}
		done := make(chan error, 1)
		go func() { done <- r.Refresh(ctx) }()
		<-entered
		assert.ErrorIs(t, r.Refresh(ctx), ErrRefreshInFlight)
		close(release)
		require.NoError(t, <-done)
	})
}

func TestFallback(t *testing.T) {
	seed := Fallback()
	require.Len(t, seed, 16)

	codes := map[string]bool{}
	categories := map[string]bool{}
	for _, p := range seed {
		assert.False(t, codes[p.Code], "duplicate code %s", p.Code)
		codes[p.Code] = true
		categories[p.Category] = true
		assert.True(t, p.Price.IsPositive(), "product %s has non-positive price", p.Code)
		assert.NotEmpty(t, p.Name)
	}
	assert.Contains(t, categories, "Tortas Cuadradas")
	assert.Contains(t, categories, "Postres Individuales")
}
