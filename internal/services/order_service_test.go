package services

import (
	"context"
	"errors"
	"testing"

	"github.com/joshua-takyi/eventtickets/internal/models"
	"github.com/joshua-takyi/eventtickets/internal/notify"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderService_CreateOrderTotalsAndSnapshot(t *testing.T) {
	ts := setupTestServices(t)
	e := ts.createConcert(t)
	ts.notifier.On("NotifyOrder", mock.Anything, mock.MatchedBy(func(n notify.OrderNotification) bool {
		return n.Kind == notify.OrderCreated &&
			n.SiteName == "EventTickets" &&
			n.Bank != nil && n.Bank.IBAN == models.DefaultSettings[models.SettingBankIban]
	})).Return(nil).Once()

	o, err := ts.orders.CreateOrder(context.Background(), orderInput(e, 2))
	require.NoError(t, err)

	assert.Regexp(t, `^ORD-\d+-\d{1,6}$`, o.ID)
	assert.Equal(t, models.OrderStatusPending, o.Status)
	assert.True(t, decimal.NewFromInt(5000).Equal(o.TotalAmount), "total %s", o.TotalAmount)
	assert.True(t, o.ItemsTotal().Equal(o.TotalAmount))
	assert.Equal(t, "ru", o.Language)
	assert.Equal(t, "Concert", o.Event.Title["fr"])
	assert.Equal(t, "2025-02-15", o.Event.Date)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Взрослый", o.Items[0].Name["ru"])

	stored, err := ts.orders.GetOrder(context.Background(), o.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5000).Equal(stored.TotalAmount))
	require.Len(t, stored.Items, 1)
	ts.notifier.AssertExpectations(t)
}

func TestOrderService_CreateOrderMixedCart(t *testing.T) {
	ts := setupTestServices(t)
	e := ts.createConcert(t)
	ts.notifier.On("NotifyOrder", mock.Anything, mock.Anything).Return(nil)

	in := orderInput(e, 2)
	in.Items = append(in.Items, models.OrderItemInput{
		TicketTypeID: e.TicketTypes[1].ID,
		Price:        amount("999.50"),
		Quantity:     3,
	})
	o, err := ts.orders.CreateOrder(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "7998.5", o.TotalAmount.String())
}

func TestOrderService_CreateOrderValidation(t *testing.T) {
	ts := setupTestServices(t)
	e := ts.createConcert(t)

	cases := map[string]func(in *models.CreateOrderInput){
		"blank customer name": func(in *models.CreateOrderInput) { in.Customer.Name = "   " },
		"invalid email":       func(in *models.CreateOrderInput) { in.Customer.Email = "anna-at-example" },
		"no items":            func(in *models.CreateOrderInput) { in.Items = nil },
		"zero quantity":       func(in *models.CreateOrderInput) { in.Items[0].Quantity = 0 },
		"negative price":      func(in *models.CreateOrderInput) { in.Items[0].Price = amount("-5") },
		"missing price":       func(in *models.CreateOrderInput) { in.Items[0].Price = nil },
		"sub-cent price":      func(in *models.CreateOrderInput) { in.Items[0].Price = amount("2500.001") },
		"too many tickets":    func(in *models.CreateOrderInput) { in.Items[0].Quantity = models.MaxItemQuantity + 1 },
		"total overflow":      func(in *models.CreateOrderInput) { in.Items[0].Price, in.Items[0].Quantity = amount("9999999999.99"), 2 },
		"unknown payment":     func(in *models.CreateOrderInput) { in.PaymentMethod = "card" },
		"unsupported lang":    func(in *models.CreateOrderInput) { in.Language = "de" },
		"foreign ticket type": func(in *models.CreateOrderInput) { in.Items[0].TicketTypeID = 9999 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := orderInput(e, 1)
			mutate(&in)
			_, err := ts.orders.CreateOrder(context.Background(), in)
			assert.True(t, errors.Is(err, models.ErrValidation), "got %v", err)
		})
	}

	orders, err := ts.orders.ListOrders(context.Background(), models.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, orders)
	ts.notifier.AssertNotCalled(t, "NotifyOrder", mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrderForInactiveEvent(t *testing.T) {
	ts := setupTestServices(t)
	e := ts.createConcert(t)
	require.NoError(t, ts.catalog.DeleteEvent(context.Background(), e.ID))

	_, err := ts.orders.CreateOrder(context.Background(), orderInput(e, 1))
	assert.True(t, errors.Is(err, models.ErrNotFound))

	in := orderInput(e, 1)
	in.EventID = 777
	_, err = ts.orders.CreateOrder(context.Background(), in)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestOrderService_CreateOrderIsAtomic(t *testing.T) {
	ts := setupTestServices(t)
	e := ts.createConcert(t)
	ts.store.FailOn["InsertOrderItems"] = errors.New("connection reset")

	_, err := ts.orders.CreateOrder(context.Background(), orderInput(e, 1))
	require.True(t, errors.Is(err, models.ErrInternal))

	orders, err := ts.orders.ListOrders(context.Background(), models.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, orders, "order header must not survive without its items")
	ts.notifier.AssertNotCalled(t, "NotifyOrder", mock.Anything, mock.Anything)
}

func TestOrderService_NotificationFailureDoesNotFailOrder(t *testing.T) {
	ts := setupTestServices(t)
	e := ts.createConcert(t)
	ts.notifier.On("NotifyOrder", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	o, err := ts.orders.CreateOrder(context.Background(), orderInput(e, 1))
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, o.Status)
}

func TestOrderService_SetOrderStatus(t *testing.T) {
	ts := setupTestServices(t)
	e := ts.createConcert(t)
	o := ts.placeOrder(t, e)

	for _, st := range []models.OrderStatus{models.OrderStatusPaid, models.OrderStatusCancelled, models.OrderStatusPending} {
		got, err := ts.orders.SetOrderStatus(context.Background(), o.ID, string(st))
		require.NoError(t, err)
		assert.Equal(t, st, got.Status)
	}
	ts.notifier.AssertCalled(t, "NotifyOrder", mock.Anything, mock.MatchedBy(func(n notify.OrderNotification) bool {
		return n.RoutingKey() == "order.paid" && n.Order.ID == o.ID
	}))
}

func TestOrderService_SetOrderStatusRejectsUnknownStatus(t *testing.T) {
	ts := setupTestServices(t)
	e := ts.createConcert(t)
	o := ts.placeOrder(t, e)

	for _, bad := range []string{"paid", "REFUNDED", ""} {
		_, err := ts.orders.SetOrderStatus(context.Background(), o.ID, bad)
		assert.True(t, errors.Is(err, models.ErrValidation), bad)
	}

	stored, err := ts.orders.GetOrder(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, stored.Status)
	assert.Equal(t, o.UpdatedAt, stored.UpdatedAt)
}

func TestOrderService_SetOrderStatusUnknownOrder(t *testing.T) {
	ts := setupTestServices(t)

	_, err := ts.orders.SetOrderStatus(context.Background(), "ORD-0-0", "PAID")
	assert.True(t, errors.Is(err, models.ErrNotFound))

	_, err = ts.orders.GetOrder(context.Background(), "ORD-0-0")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestOrderService_SnapshotSurvivesEventDeletion(t *testing.T) {
	ts := setupTestServices(t)
	e := ts.createConcert(t)
	o := ts.placeOrder(t, e)

	require.NoError(t, ts.catalog.DeleteEvent(context.Background(), e.ID))

	stored, err := ts.orders.GetOrder(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Концерт", stored.Event.Title["ru"])
	assert.Equal(t, "19:00", stored.Event.Time)
}

func TestOrderService_ListOrdersFilters(t *testing.T) {
	ts := setupTestServices(t)
	e := ts.createConcert(t)
	paid := ts.placeOrder(t, e)
	ts.placeOrder(t, e)
	_, err := ts.orders.SetOrderStatus(context.Background(), paid.ID, "PAID")
	require.NoError(t, err)

	status := models.OrderStatusPaid
	orders, err := ts.orders.ListOrders(context.Background(), models.OrderFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, paid.ID, orders[0].ID)

	other := int64(4242)
	orders, err = ts.orders.ListOrders(context.Background(), models.OrderFilter{EventID: &other})
	require.NoError(t, err)
	assert.Empty(t, orders)

	bad := models.OrderStatus("SHIPPED")
	_, err = ts.orders.ListOrders(context.Background(), models.OrderFilter{Status: &bad})
	assert.True(t, errors.Is(err, models.ErrValidation))
}
