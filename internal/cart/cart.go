package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/milsabores/storefront/internal/catalog"
)

// Line is one (product, quantity) pairing in a user's in-progress cart.
// Product fields are snapshotted at add time so a catalog refresh cannot
// mutate a cart under the user. Quantity is always >= 1; a line reaching
// zero is removed, never retained.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Store holds the cart lines of the current user. Every operation is a total
// function: a missing line is a no-op, never an error.
type Store interface {
	// Add inserts a quantity-1 line for p, or increments an existing one.
	Add(ctx context.Context, userEmail string, p catalog.Product) error
	// Increase increments the matching line by one.
	Increase(ctx context.Context, userEmail string, productID int64) error
	// Decrease decrements the matching line by one, removing it at quantity 1.
	Decrease(ctx context.Context, userEmail string, productID int64) error
	// Remove deletes the matching line unconditionally.
	Remove(ctx context.Context, userEmail string, productID int64) error
	// Clear removes all lines for the user.
	Clear(ctx context.Context, userEmail string) error
	Lines(ctx context.Context, userEmail string) ([]Line, error)
}

// Total is the sum of unit price times quantity over lines.
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}
