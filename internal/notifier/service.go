// Package notifier consumes order.placed events and confirms the order:
// status transition in the store plus a cached status for fast reads.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	kafkax "github.com/milsabores/storefront/internal/kafka"
	"github.com/milsabores/storefront/internal/orders"
	"github.com/milsabores/storefront/internal/redisx"
)

// Orders is the slice of the order store the notifier needs.
type Orders interface {
	SetStatus(ctx context.Context, id string, from, to orders.Status) error
}

// Dedup filters replayed events. Nil-able in tests.
type Dedup interface {
	Seen(ctx context.Context, id string) (bool, error)
}

type Service struct {
	Orders Orders
	Dedup  Dedup
	Redis  *redis.Client
	Log    *zap.Logger
}

// HandleOrderPlaced is wired as the consumer handler.
func (s *Service) HandleOrderPlaced(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderPlaced {
		return nil // ignore
	}

	if s.Dedup != nil {
		seen, err := s.Dedup.Seen(ctx, env.EventID)
		if err != nil {
			return err
		}
		if seen {
			return nil
		}
	}

	p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
	if err != nil {
		return err
	}

	if err := s.Orders.SetStatus(ctx, p.OrderID, orders.StatusPlaced, orders.StatusConfirmed); err != nil {
		return err
	}
	s.cacheStatus(ctx, p.OrderID, p.UserEmail)

	s.Log.Info("order confirmed",
		zap.String("order_id", p.OrderID),
		zap.String("buyer", p.BuyerEmail),
		zap.String("total", p.Total.String()),
	)
	return nil
}

func (s *Service) cacheStatus(ctx context.Context, orderID, userEmail string) {
	if s.Redis == nil {
		return
	}
	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	body := kafkax.MustMarshal(orders.CachedStatus{UserEmail: userEmail, Status: orders.StatusConfirmed})
	if err := s.Redis.Set(ctx, key, body, redisx.TTLOrderStatus).Err(); err != nil {
		s.Log.Warn("status cache", zap.String("order_id", orderID), zap.Error(err))
	}
}
