package orders

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventOrderPlaced = "OrderPlaced"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

type OrderPlacedItem struct {
	ProductID int64           `json:"product_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

type OrderPlacedPayload struct {
	OrderID         string            `json:"order_id"`
	UserEmail       string            `json:"user_email"`
	BuyerName       string            `json:"buyer_name"`
	BuyerEmail      string            `json:"buyer_email"`
	ShippingAddress string            `json:"shipping_address"`
	Items           []OrderPlacedItem `json:"items"`
	Total           decimal.Decimal   `json:"total"`
	PlacedAt        time.Time         `json:"placed_at"`
}
