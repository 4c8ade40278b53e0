package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joshua-takyi/eventtickets/internal/helpers"
	"github.com/joshua-takyi/eventtickets/internal/models"
	"github.com/joshua-takyi/eventtickets/internal/monitoring"
	"github.com/joshua-takyi/eventtickets/internal/notify"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

type OrderService struct {
	orders   models.OrderRepository
	events   models.EventRepository
	tx       models.Transactor
	settings *SettingsService
	notifier notify.Notifier
	langs    Languages
	logger   *slog.Logger
	now      clock
}

func NewOrderService(
	orders models.OrderRepository,
	events models.EventRepository,
	tx models.Transactor,
	settings *SettingsService,
	notifier notify.Notifier,
	langs Languages,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		events:   events,
		tx:       tx,
		settings: settings,
		notifier: notifier,
		langs:    langs,
		logger:   logger,
	}
}

// CreateOrder validates the cart against the catalog and stores a PENDING
// order with its items in one transaction.
func (s *OrderService) CreateOrder(ctx context.Context, in models.CreateOrderInput) (_ *models.Order, err error) {
	ctx, span := monitoring.Tracer().Start(ctx, "orders.CreateOrder")
	span.SetAttributes(attribute.Int64("event.id", in.EventID))
	defer func() { endSpan(span, err) }()

	in.Customer.Name = strings.TrimSpace(in.Customer.Name)
	in.Customer.Email = strings.TrimSpace(in.Customer.Email)
	in.Customer.Phone = strings.TrimSpace(in.Customer.Phone)
	in.Language = strings.ToLower(strings.TrimSpace(in.Language))
	if in.Language == "" {
		in.Language = s.langs.Default
	}

	if err := models.Validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	if !s.langs.IsSupported(in.Language) {
		return nil, fmt.Errorf("%w: unsupported language %q", models.ErrValidation, in.Language)
	}
	for i, it := range in.Items {
		if err := models.CheckAmount(*it.Price); err != nil {
			return nil, fmt.Errorf("%w: item %d: price %v", models.ErrValidation, i+1, err)
		}
	}

	event, err := s.events.GetEventByID(ctx, in.EventID)
	if err != nil {
		return nil, internal(ctx, s.logger, "load event", err)
	}
	if !event.IsActive() {
		return nil, fmt.Errorf("%w: event %d", models.ErrNotFound, in.EventID)
	}

	now := s.now.now()
	id, err := helpers.GenerateOrderID(now)
	if err != nil {
		return nil, internal(ctx, s.logger, "generate order id", err)
	}

	order := &models.Order{
		ID:      id,
		EventID: event.ID,
		Event: models.EventSnapshot{
			Title:    event.Title,
			Location: event.Location,
			Date:     event.Date,
			Time:     event.Time,
		},
		Customer:      in.Customer,
		PaymentMethod: in.PaymentMethod,
		Status:        models.OrderStatusPending,
		Language:      in.Language,
		Items:         make([]models.OrderItem, 0, len(in.Items)),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	total := decimal.Zero
	for i, it := range in.Items {
		tt := event.FindTicketType(it.TicketTypeID)
		if tt == nil {
			return nil, fmt.Errorf("%w: item %d: ticket type %d does not belong to event %d",
				models.ErrValidation, i+1, it.TicketTypeID, event.ID)
		}
		subtotal := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(subtotal)
		order.Items = append(order.Items, models.OrderItem{
			TicketTypeID: it.TicketTypeID,
			Name:         tt.Name,
			Quantity:     it.Quantity,
			Price:        *it.Price,
			Subtotal:     subtotal,
		})
	}
	if err := models.CheckAmount(total); err != nil {
		return nil, fmt.Errorf("%w: order total %v", models.ErrValidation, err)
	}
	order.TotalAmount = total

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.orders.InsertOrder(ctx, order); err != nil {
			return err
		}
		return s.orders.InsertOrderItems(ctx, order.ID, order.Items)
	})
	if err != nil {
		return nil, internal(ctx, s.logger, "create order", err)
	}
	span.SetAttributes(attribute.String("order.id", order.ID))

	monitoring.TrackOrderCreated(string(order.PaymentMethod))
	s.logger.InfoContext(ctx, "order created",
		"order_id", order.ID,
		"event_id", order.EventID,
		"items", len(order.Items),
		"total", order.TotalAmount.String(),
	)
	s.publish(ctx, notify.OrderCreated, order)
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	o, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		return nil, internal(ctx, s.logger, "get order", err)
	}
	return o, nil
}

func (s *OrderService) ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	if filter.Status != nil {
		if _, err := models.ParseOrderStatus(string(*filter.Status)); err != nil {
			return nil, err
		}
	}
	orders, err := s.orders.ListOrders(ctx, filter)
	if err != nil {
		return nil, internal(ctx, s.logger, "list orders", err)
	}
	return orders, nil
}

// SetOrderStatus moves the order to status. Every transition between the
// four statuses is allowed.
func (s *OrderService) SetOrderStatus(ctx context.Context, id, status string) (_ *models.Order, err error) {
	ctx, span := monitoring.Tracer().Start(ctx, "orders.SetOrderStatus")
	span.SetAttributes(attribute.String("order.id", id), attribute.String("order.status", status))
	defer func() { endSpan(span, err) }()

	st, err := models.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	var order *models.Order
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.orders.UpdateOrderStatus(ctx, id, st, s.now.now()); err != nil {
			return err
		}
		o, err := s.orders.GetOrderByID(ctx, id)
		if err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, internal(ctx, s.logger, "update order status", err)
	}

	monitoring.TrackOrderTransition(string(st))
	s.logger.InfoContext(ctx, "order status changed", "order_id", id, "status", st)
	s.publish(ctx, string(st), order)
	return order, nil
}

// publish is best effort: a failed notification never fails the order.
func (s *OrderService) publish(ctx context.Context, kind string, order *models.Order) {
	if s.notifier == nil {
		return
	}
	n := notify.OrderNotification{
		Kind:       kind,
		Order:      *order,
		OccurredAt: s.now.now(),
	}
	if s.settings != nil {
		if all, err := s.settings.Admin(ctx); err == nil {
			n.SiteName = all[models.SettingSiteName]
			n.Contact = all[models.SettingContactEmail]
			if order.PaymentMethod == models.PaymentTransfer {
				n.Bank = bankDetails(all)
			}
		}
	}
	if err := s.notifier.NotifyOrder(ctx, n); err != nil {
		monitoring.TrackNotificationFailure()
		s.logger.WarnContext(ctx, "order notification failed",
			"order_id", order.ID,
			"routing_key", n.RoutingKey(),
			"error", err,
		)
	}
}
