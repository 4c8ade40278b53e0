package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/joshua-takyi/eventtickets/internal/models"
	"github.com/joshua-takyi/eventtickets/internal/monitoring"
	"go.opentelemetry.io/otel/attribute"
)

type CheckinService struct {
	orders   models.OrderRepository
	checkins models.CheckinRepository
	tx       models.Transactor
	logger   *slog.Logger
	now      clock
}

func NewCheckinService(orders models.OrderRepository, checkins models.CheckinRepository, tx models.Transactor, logger *slog.Logger) *CheckinService {
	return &CheckinService{
		orders:   orders,
		checkins: checkins,
		tx:       tx,
		logger:   logger,
	}
}

// CheckInGuest records entry for a PAID order. The unique order_id makes a
// second check-in fail with ErrConflict even under concurrent requests.
func (cs *CheckinService) CheckInGuest(ctx context.Context, orderID, staffUsername string) (_ *models.GuestCheckin, err error) {
	ctx, span := monitoring.Tracer().Start(ctx, "checkins.CheckInGuest")
	span.SetAttributes(attribute.String("order.id", orderID))
	defer func() { endSpan(span, err) }()

	checkin := &models.GuestCheckin{
		OrderID:     orderID,
		CheckedInAt: cs.now.now(),
		CheckedInBy: staffUsername,
	}
	err = cs.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		o, err := cs.orders.GetOrderByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return fmt.Errorf("%w: paid order not found", models.ErrNotFound)
			}
			return err
		}
		if o.Status != models.OrderStatusPaid {
			return fmt.Errorf("%w: paid order not found", models.ErrNotFound)
		}
		inserted, err := cs.checkins.InsertCheckin(ctx, checkin)
		if err != nil {
			return err
		}
		if !inserted {
			return fmt.Errorf("%w: guest already checked in", models.ErrConflict)
		}
		return nil
	})
	switch {
	case err == nil:
		monitoring.TrackCheckin("ok")
	case errors.Is(err, models.ErrConflict):
		monitoring.TrackCheckin("duplicate")
	case errors.Is(err, models.ErrNotFound):
		monitoring.TrackCheckin("not_paid")
	default:
		monitoring.TrackCheckin("error")
	}
	if err != nil {
		return nil, internal(ctx, cs.logger, "check in guest", err)
	}

	cs.logger.InfoContext(ctx, "guest checked in", "order_id", orderID, "by", staffUsername)
	return checkin, nil
}

func (cs *CheckinService) GetCheckinStatus(ctx context.Context, orderID string) (*models.CheckinStatus, error) {
	if _, err := cs.orders.GetOrderByID(ctx, orderID); err != nil {
		return nil, internal(ctx, cs.logger, "get order", err)
	}
	c, err := cs.checkins.GetCheckin(ctx, orderID)
	if err != nil {
		return nil, internal(ctx, cs.logger, "get checkin", err)
	}
	status := &models.CheckinStatus{OrderID: orderID}
	if c != nil {
		status.CheckedIn = true
		status.CheckedInAt = &c.CheckedInAt
		status.CheckedInBy = c.CheckedInBy
	}
	return status, nil
}
