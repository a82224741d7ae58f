package cart

import (
	"context"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milsabores/storefront/internal/catalog"
)

const user = "amelia@duocuc.cl"

func product(id int64, price int64) catalog.Product {
	return catalog.Product{ID: id, Code: "P", Name: "producto", Category: "Postres Individuales", Price: decimal.NewFromInt(price)}
}

func TestAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("adding the same product twice yields one line with quantity 2", func(t *testing.T) {
		m := NewMemory()
		p := product(1, 5000)
		require.NoError(t, m.Add(ctx, user, p))
		require.NoError(t, m.Add(ctx, user, p))

		lines, err := m.Lines(ctx, user)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, 2, lines[0].Quantity)
	})

	t.Run("a line snapshots every product field, sale flag included", func(t *testing.T) {
		m := NewMemory()
		p := catalog.Product{
			ID: 9, Code: "TE001", Category: "Tortas Especiales",
			Name: "Torta Especial de Cumpleaños", Price: decimal.NewFromInt(55000),
			Image: "te001.png", OnSale: true,
		}
		require.NoError(t, m.Add(ctx, user, p))

		lines, err := m.Lines(ctx, user)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, p, lines[0].Product)
		assert.True(t, lines[0].Product.OnSale)
	})

	t.Run("carts are isolated per user", func(t *testing.T) {
		m := NewMemory()
		require.NoError(t, m.Add(ctx, user, product(1, 5000)))

		lines, err := m.Lines(ctx, "otro@duocuc.cl")
		require.NoError(t, err)
		assert.Empty(t, lines)
	})
}

func TestDecrease(t *testing.T) {
	ctx := context.Background()

	t.Run("at quantity 2 decrements to 1", func(t *testing.T) {
		m := NewMemory()
		p := product(1, 5000)
		require.NoError(t, m.Add(ctx, user, p))
		require.NoError(t, m.Add(ctx, user, p))
		require.NoError(t, m.Decrease(ctx, user, p.ID))

		lines, _ := m.Lines(ctx, user)
		require.Len(t, lines, 1)
		assert.Equal(t, 1, lines[0].Quantity)
	})

	t.Run("at quantity 1 removes the line", func(t *testing.T) {
		m := NewMemory()
		p := product(1, 5000)
		require.NoError(t, m.Add(ctx, user, p))
		require.NoError(t, m.Decrease(ctx, user, p.ID))

		lines, _ := m.Lines(ctx, user)
		assert.Empty(t, lines)
	})

	t.Run("missing line is a no-op", func(t *testing.T) {
		m := NewMemory()
		require.NoError(t, m.Decrease(ctx, user, 42))
		lines, _ := m.Lines(ctx, user)
		assert.Empty(t, lines)
	})
}

func TestIncreaseRemoveClear(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	a, b := product(1, 5000), product(2, 3000)

	require.NoError(t, m.Increase(ctx, user, a.ID)) // no line yet: no-op
	lines, _ := m.Lines(ctx, user)
	assert.Empty(t, lines)

	require.NoError(t, m.Add(ctx, user, a))
	require.NoError(t, m.Add(ctx, user, b))
	require.NoError(t, m.Increase(ctx, user, a.ID))

	lines, _ = m.Lines(ctx, user)
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Quantity)

	require.NoError(t, m.Remove(ctx, user, a.ID))
	lines, _ = m.Lines(ctx, user)
	require.Len(t, lines, 1)
	assert.Equal(t, b.ID, lines[0].Product.ID)

	require.NoError(t, m.Clear(ctx, user))
	lines, _ = m.Lines(ctx, user)
	assert.Empty(t, lines)
}

func TestTotal(t *testing.T) {
	lines := []Line{
		{Product: product(1, 45000), Quantity: 2},
		{Product: product(2, 5500), Quantity: 3},
	}
	assert.True(t, Total(lines).Equal(decimal.NewFromInt(106500)))
	assert.True(t, Total(nil).IsZero())
}

// Randomized operation sequences: quantities never drop to zero or below and
// the total always matches an independently tracked model.
func TestRandomizedOperations(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(1))

	products := make([]catalog.Product, 6)
	for i := range products {
		products[i] = product(int64(i+1), int64((i+1)*1000))
	}

	m := NewMemory()
	model := map[int64]int{}

	for i := 0; i < 1000; i++ {
		p := products[rng.Intn(len(products))]
		switch rng.Intn(5) {
		case 0:
			require.NoError(t, m.Add(ctx, user, p))
			model[p.ID]++
		case 1:
			require.NoError(t, m.Increase(ctx, user, p.ID))
			if model[p.ID] > 0 {
				model[p.ID]++
			}
		case 2:
			require.NoError(t, m.Decrease(ctx, user, p.ID))
			if model[p.ID] > 0 {
				model[p.ID]--
				if model[p.ID] == 0 {
					delete(model, p.ID)
				}
			}
		case 3:
			require.NoError(t, m.Remove(ctx, user, p.ID))
			delete(model, p.ID)
		case 4:
			// rare full clear
			if rng.Intn(20) == 0 {
				require.NoError(t, m.Clear(ctx, user))
				model = map[int64]int{}
			}
		}

		lines, err := m.Lines(ctx, user)
		require.NoError(t, err)
		require.Len(t, lines, len(model))

		want := decimal.Zero
		for _, l := range lines {
			require.GreaterOrEqual(t, l.Quantity, 1)
			require.Equal(t, model[l.Product.ID], l.Quantity)
			want = want.Add(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
		}
		require.True(t, Total(lines).Equal(want))
	}
}
