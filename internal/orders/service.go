package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/milsabores/storefront/internal/cart"
	kafkax "github.com/milsabores/storefront/internal/kafka"
)

// ErrBlankAddress is the only way Place can fail by contract; everything
// else is an internal error.
var ErrBlankAddress = errors.New("orders: shipping address required")

// Carts is the slice of the cart store the placement service needs. The cart
// clear itself happens inside Store.Create, in the same transaction as the
// order insert.
type Carts interface {
	Lines(ctx context.Context, userEmail string) ([]cart.Line, error)
}

// Producer publishes order events. Nil-able: a service without kafka just
// keeps orders local.
type Producer interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type Service struct {
	Carts       Carts
	Store       Store
	Producer    Producer
	ServiceName string
	Log         *zap.Logger
}

// Place snapshots the current cart into an order, persists it and announces
// it. Store.Create commits the order and the cart clear together, so any
// failure leaves both the order table and the cart untouched.
func (s *Service) Place(ctx context.Context, userEmail, shippingAddress, buyerName, buyerEmail string) (Order, error) {
	if strings.TrimSpace(shippingAddress) == "" {
		return Order{}, ErrBlankAddress
	}

	lines, err := s.Carts.Lines(ctx, userEmail)
	if err != nil {
		return Order{}, fmt.Errorf("orders: read cart: %w", err)
	}

	o := Order{
		ID:              uuid.NewString(),
		UserEmail:       userEmail,
		BuyerName:       buyerName,
		BuyerEmail:      buyerEmail,
		ShippingAddress: shippingAddress,
		Total:           cart.Total(lines),
		Status:          StatusPlaced,
		CreatedAt:       time.Now().UTC(),
		Items:           itemsFromLines(lines),
	}
	if err := s.Store.Create(ctx, o); err != nil {
		return Order{}, fmt.Errorf("orders: persist: %w", err)
	}

	s.publish(o)
	s.Log.Info("order placed",
		zap.String("order_id", o.ID),
		zap.String("user", userEmail),
		zap.String("total", o.Total.String()),
	)
	return o, nil
}

func itemsFromLines(lines []cart.Line) []Item {
	out := make([]Item, 0, len(lines))
	for _, l := range lines {
		out = append(out, Item{
			ProductID: l.Product.ID,
			Code:      l.Product.Code,
			Name:      l.Product.Name,
			Category:  l.Product.Category,
			Image:     l.Product.Image,
			UnitPrice: l.Product.Price,
			Quantity:  l.Quantity,
		})
	}
	return out
}

func (s *Service) publish(o Order) {
	if s.Producer == nil {
		return
	}
	items := make([]OrderPlacedItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderPlacedItem{
			ProductID: it.ProductID,
			Code:      it.Code,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		CorrelationID: o.ID,
		Payload: kafkax.MustMarshal(OrderPlacedPayload{
			OrderID:         o.ID,
			UserEmail:       o.UserEmail,
			BuyerName:       o.BuyerName,
			BuyerEmail:      o.BuyerEmail,
			ShippingAddress: o.ShippingAddress,
			Items:           items,
			Total:           o.Total,
			PlacedAt:        o.CreatedAt,
		}),
	}
	s.Producer.Publish(PartitionKey(o.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventOrderPlaced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
