package notifier

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	kafkax "github.com/milsabores/storefront/internal/kafka"
	"github.com/milsabores/storefront/internal/orders"
)

type fakeOrders struct {
	transitions []string
}

func (f *fakeOrders) SetStatus(_ context.Context, id string, from, to orders.Status) error {
	f.transitions = append(f.transitions, id)
	return nil
}

type fakeDedup struct {
	seen map[string]bool
}

func (f *fakeDedup) Seen(_ context.Context, id string) (bool, error) {
	if f.seen[id] {
		return true, nil
	}
	f.seen[id] = true
	return false, nil
}

func placedMessage(t *testing.T, eventID, orderID string) kafkago.Message {
	t.Helper()
	env := orders.Envelope{
		EventID:       eventID,
		EventType:     orders.EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      "storefront-api",
		CorrelationID: orderID,
		Payload:       kafkax.MustMarshal(orders.OrderPlacedPayload{OrderID: orderID, UserEmail: "amelia@duocuc.cl", BuyerEmail: "jane@x.com"}),
	}
	return kafkago.Message{Key: orders.PartitionKey(orderID), Value: kafkax.MustMarshal(env)}
}

func TestHandleOrderPlaced(t *testing.T) {
	ctx := context.Background()

	t.Run("confirms the order", func(t *testing.T) {
		store := &fakeOrders{}
		svc := &Service{Orders: store, Log: zap.NewNop()}

		orderID := uuid.NewString()
		require.NoError(t, svc.HandleOrderPlaced(ctx, placedMessage(t, uuid.NewString(), orderID)))
		assert.Equal(t, []string{orderID}, store.transitions)
	})

	t.Run("replayed events are dropped by dedup", func(t *testing.T) {
		store := &fakeOrders{}
		svc := &Service{Orders: store, Dedup: &fakeDedup{seen: map[string]bool{}}, Log: zap.NewNop()}

		msg := placedMessage(t, uuid.NewString(), uuid.NewString())
		require.NoError(t, svc.HandleOrderPlaced(ctx, msg))
		require.NoError(t, svc.HandleOrderPlaced(ctx, msg))
		assert.Len(t, store.transitions, 1)
	})

	t.Run("foreign event types are ignored", func(t *testing.T) {
		store := &fakeOrders{}
		svc := &Service{Orders: store, Log: zap.NewNop()}

		env := orders.Envelope{EventID: uuid.NewString(), EventType: "SomethingElse"}
		msg := kafkago.Message{Value: kafkax.MustMarshal(env)}
		require.NoError(t, svc.HandleOrderPlaced(ctx, msg))
		assert.Empty(t, store.transitions)
	})

	t.Run("garbage payload errors so the offset is not committed", func(t *testing.T) {
		svc := &Service{Orders: &fakeOrders{}, Log: zap.NewNop()}
		assert.Error(t, svc.HandleOrderPlaced(ctx, kafkago.Message{Value: []byte("not-json")}))
	})
}
