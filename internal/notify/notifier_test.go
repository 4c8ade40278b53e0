package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/joshua-takyi/eventtickets/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	args := m.Called(ctx, key, v)
	return args.Error(0)
}

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, "order.created", OrderNotification{Kind: OrderCreated}.RoutingKey())
	assert.Equal(t, "order.paid", OrderNotification{Kind: string(models.OrderStatusPaid)}.RoutingKey())
}

func TestAMQPNotifierPublishesUnderRoutingKey(t *testing.T) {
	pub := new(mockPublisher)
	n := OrderNotification{Kind: "CANCELLED", Order: models.Order{ID: "ORD-1-1"}}
	pub.On("PublishJSON", mock.Anything, "order.cancelled", n).Return(nil)

	err := NewAMQPNotifier(pub).NotifyOrder(context.Background(), n)

	assert.NoError(t, err)
	pub.AssertExpectations(t)
}

func TestAMQPNotifierReturnsPublishError(t *testing.T) {
	pub := new(mockPublisher)
	pub.On("PublishJSON", mock.Anything, "order.created", mock.Anything).Return(errors.New("channel closed"))

	err := NewAMQPNotifier(pub).NotifyOrder(context.Background(), OrderNotification{Kind: OrderCreated})

	assert.EqualError(t, err, "channel closed")
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	err := l.NotifyOrder(context.Background(), OrderNotification{Kind: OrderCreated, Order: models.Order{ID: "ORD-42-7"}})

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "routing_key=order.created")
	assert.Contains(t, buf.String(), "order_id=ORD-42-7")
}
