package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/joshua-takyi/eventtickets/internal/cache"
	"github.com/joshua-takyi/eventtickets/internal/helpers"
	"github.com/joshua-takyi/eventtickets/internal/models"
	"github.com/joshua-takyi/eventtickets/internal/notify"
	"github.com/joshua-takyi/eventtickets/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyOrder(ctx context.Context, n notify.OrderNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type testServices struct {
	store    *testutil.Store
	notifier *mockNotifier
	catalog  *CatalogService
	orders   *OrderService
	checkins *CheckinService
	settings *SettingsService
	auth     *AuthService
}

func setupTestServices(t *testing.T) *testServices {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := testutil.NewStore()
	langs := Languages{Supported: []string{"ru", "fr"}, Default: "ru"}
	notifier := new(mockNotifier)
	fixed := func() time.Time { return testNow }

	ts := &testServices{
		store:    store,
		notifier: notifier,
		catalog:  NewCatalogService(store, store, cache.NewCatalogCache(nil, time.Minute, logger), langs, logger),
		settings: NewSettingsService(store, store, logger),
		checkins: NewCheckinService(store, store, store, logger),
		auth:     NewAuthService(store, helpers.NewTokenSigner("services-test-secret", 24*time.Hour), logger),
	}
	ts.orders = NewOrderService(store, store, store, ts.settings, notifier, langs, logger)
	ts.catalog.now = fixed
	ts.orders.now = fixed
	ts.checkins.now = fixed
	ts.auth.now = fixed
	return ts
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func concertInput() models.EventInput {
	return models.EventInput{
		Title:    models.Localized{"ru": "Концерт", "fr": "Concert"},
		Location: models.Localized{"ru": "Филармония"},
		Date:     "2025-02-15",
		Time:     "19:00",
		TicketTypes: []models.TicketTypeInput{
			{Name: models.Localized{"ru": "Взрослый", "fr": "Adult"}, Price: amount("2500")},
			{Name: models.Localized{"ru": "Детский", "fr": "Enfant"}, Price: amount("1000")},
		},
	}
}

func (ts *testServices) createConcert(t *testing.T) *models.Event {
	t.Helper()
	e, err := ts.catalog.CreateEvent(context.Background(), concertInput())
	require.NoError(t, err)
	return e
}

func orderInput(e *models.Event, qty int) models.CreateOrderInput {
	return models.CreateOrderInput{
		EventID:  e.ID,
		Customer: models.Customer{Name: "Anna", Email: "anna@example.com", Phone: "+7 900 123-45-67"},
		Items: []models.OrderItemInput{
			{TicketTypeID: e.TicketTypes[0].ID, Price: amount(e.TicketTypes[0].Price.String()), Quantity: qty},
		},
		PaymentMethod: models.PaymentTransfer,
	}
}

// placeOrder creates an order while accepting any notification.
func (ts *testServices) placeOrder(t *testing.T, e *models.Event) *models.Order {
	t.Helper()
	ts.notifier.On("NotifyOrder", mock.Anything, mock.Anything).Return(nil).Maybe()
	o, err := ts.orders.CreateOrder(context.Background(), orderInput(e, 1))
	require.NoError(t, err)
	return o
}
