package catalog

import "github.com/shopspring/decimal"

// Product is immutable once fetched; the whole catalog is replaced on each
// successful refresh.
type Product struct {
	ID       int64           `json:"id"`
	Code     string          `json:"code"`
	Category string          `json:"category"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	OnSale   bool            `json:"on_sale"`
}
