package notify

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/joshua-takyi/eventtickets/internal/models"
)

const (
	OrderCreated = "created"
)

// OrderNotification is the payload handed to the mailer for a booking,
// payment or cancellation message.
type OrderNotification struct {
	Kind       string              `json:"kind"`
	Order      models.Order        `json:"order"`
	SiteName   string              `json:"siteName"`
	Contact    string              `json:"contactEmail,omitempty"`
	Bank       *models.BankDetails `json:"bank,omitempty"`
	OccurredAt time.Time           `json:"occurredAt"`
}

// RoutingKey is "order.<kind>", e.g. "order.created" or "order.paid".
func (n OrderNotification) RoutingKey() string {
	return "order." + strings.ToLower(n.Kind)
}

type Notifier interface {
	NotifyOrder(ctx context.Context, n OrderNotification) error
}

type jsonPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type AMQPNotifier struct {
	pub jsonPublisher
}

func NewAMQPNotifier(pub jsonPublisher) *AMQPNotifier {
	return &AMQPNotifier{pub: pub}
}

func (a *AMQPNotifier) NotifyOrder(ctx context.Context, n OrderNotification) error {
	return a.pub.PublishJSON(ctx, n.RoutingKey(), n)
}

// LogNotifier only logs; used when no broker is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) NotifyOrder(ctx context.Context, n OrderNotification) error {
	l.logger.InfoContext(ctx, "order notification",
		"routing_key", n.RoutingKey(),
		"order_id", n.Order.ID,
		"status", n.Order.Status,
		"email", n.Order.Customer.Email,
	)
	return nil
}
