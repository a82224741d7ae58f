package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is an immutable snapshot of a cart at the moment it was placed,
// append-only per user.
type Order struct {
	ID              string          `json:"id"`
	UserEmail       string          `json:"user_email"`
	BuyerName       string          `json:"buyer_name"`
	BuyerEmail      string          `json:"buyer_email"`
	ShippingAddress string          `json:"shipping_address"`
	Total           decimal.Decimal `json:"total"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	Items           []Item          `json:"items"`
}

// Item carries the product fields as they were when the order was placed; a
// later catalog refresh cannot rewrite order history.
type Item struct {
	ProductID int64           `json:"product_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Image     string          `json:"image"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}
