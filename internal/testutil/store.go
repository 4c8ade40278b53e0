// Package testutil provides an in-memory implementation of every repository
// interface for service and route tests.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/joshua-takyi/eventtickets/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	mu sync.Mutex

	events      map[int64]models.Event
	ticketTypes map[int64][]models.TicketType
	orders      map[string]models.Order
	checkins    map[string]models.GuestCheckin
	settings    map[string]string
	users       map[string]models.StaffUser

	nextID int64
	txMu   sync.Mutex

	// FailOn makes the named method return an error, e.g. "InsertOrderItems".
	FailOn map[string]error
}

func NewStore() *Store {
	return &Store{
		events:      map[int64]models.Event{},
		ticketTypes: map[int64][]models.TicketType{},
		orders:      map[string]models.Order{},
		checkins:    map[string]models.GuestCheckin{},
		settings:    map[string]string{},
		users:       map[string]models.StaffUser{},
		FailOn:      map[string]error{},
	}
}

var (
	_ models.Transactor         = (*Store)(nil)
	_ models.EventRepository    = (*Store)(nil)
	_ models.OrderRepository    = (*Store)(nil)
	_ models.CheckinRepository  = (*Store)(nil)
	_ models.SettingsRepository = (*Store)(nil)
	_ models.UserRepository     = (*Store)(nil)
)

func (s *Store) fail(op string) error {
	if err, ok := s.FailOn[op]; ok {
		return err
	}
	return nil
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

type snapshot struct {
	events      map[int64]models.Event
	ticketTypes map[int64][]models.TicketType
	orders      map[string]models.Order
	checkins    map[string]models.GuestCheckin
	settings    map[string]string
	users       map[string]models.StaffUser
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		events:      make(map[int64]models.Event, len(s.events)),
		ticketTypes: make(map[int64][]models.TicketType, len(s.ticketTypes)),
		orders:      make(map[string]models.Order, len(s.orders)),
		checkins:    make(map[string]models.GuestCheckin, len(s.checkins)),
		settings:    make(map[string]string, len(s.settings)),
		users:       make(map[string]models.StaffUser, len(s.users)),
	}
	for k, v := range s.events {
		snap.events[k] = v
	}
	for k, v := range s.ticketTypes {
		snap.ticketTypes[k] = append([]models.TicketType(nil), v...)
	}
	for k, v := range s.orders {
		v.Items = append([]models.OrderItem(nil), v.Items...)
		snap.orders[k] = v
	}
	for k, v := range s.checkins {
		snap.checkins[k] = v
	}
	for k, v := range s.settings {
		snap.settings[k] = v
	}
	for k, v := range s.users {
		snap.users[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.events = snap.events
	s.ticketTypes = snap.ticketTypes
	s.orders = snap.orders
	s.checkins = snap.checkins
	s.settings = snap.settings
	s.users = snap.users
}

// WithinTransaction runs transactions one at a time and restores the
// previous state when fn fails. Transactions must not nest.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snap := s.snapshot()
	s.mu.Unlock()

	err := fn(ctx)
	if err != nil {
		s.mu.Lock()
		s.restore(snap)
		s.mu.Unlock()
	}
	return err
}

func (s *Store) withTypes(e models.Event) models.Event {
	e.TicketTypes = append([]models.TicketType{}, s.ticketTypes[e.ID]...)
	return e
}

func (s *Store) ListActiveEvents(ctx context.Context) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListActiveEvents"); err != nil {
		return nil, err
	}
	out := []models.Event{}
	for _, e := range s.events {
		if e.Status == models.EventStatusActive {
			out = append(out, s.withTypes(e))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) GetEventByID(ctx context.Context, id int64) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return nil, fmt.Errorf("%w: event %d", models.ErrNotFound, id)
	}
	e = s.withTypes(e)
	return &e, nil
}

func (s *Store) CreateEvent(ctx context.Context, e *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateEvent"); err != nil {
		return err
	}
	e.ID = s.id()
	stored := *e
	stored.TicketTypes = nil
	s.events[e.ID] = stored
	return nil
}

func (s *Store) UpdateEvent(ctx context.Context, e *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.events[e.ID]
	if !ok {
		return fmt.Errorf("%w: event %d", models.ErrNotFound, e.ID)
	}
	stored := *e
	stored.TicketTypes = nil
	stored.Status = cur.Status
	stored.CreatedAt = cur.CreatedAt
	s.events[e.ID] = stored
	return nil
}

func (s *Store) SetEventStatus(ctx context.Context, id int64, status models.EventStatus, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return fmt.Errorf("%w: event %d", models.ErrNotFound, id)
	}
	e.Status = status
	e.UpdatedAt = at
	s.events[id] = e
	return nil
}

func (s *Store) ReplaceTicketTypes(ctx context.Context, eventID int64, types []models.TicketType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ReplaceTicketTypes"); err != nil {
		return err
	}
	stored := make([]models.TicketType, len(types))
	for i := range types {
		types[i].ID = s.id()
		types[i].EventID = eventID
		stored[i] = types[i]
	}
	s.ticketTypes[eventID] = stored
	return nil
}

func (s *Store) InsertOrder(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("InsertOrder"); err != nil {
		return err
	}
	if _, ok := s.orders[o.ID]; ok {
		return fmt.Errorf("duplicate order id %s", o.ID)
	}
	stored := *o
	stored.Items = []models.OrderItem{}
	s.orders[o.ID] = stored
	return nil
}

func (s *Store) InsertOrderItems(ctx context.Context, orderID string, items []models.OrderItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("InsertOrderItems"); err != nil {
		return err
	}
	o, ok := s.orders[orderID]
	if !ok {
		return fmt.Errorf("order %s missing", orderID)
	}
	for i := range items {
		items[i].ID = s.id()
		items[i].OrderID = orderID
		o.Items = append(o.Items, items[i])
	}
	s.orders[orderID] = o
	return nil
}

func (s *Store) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: order %s", models.ErrNotFound, id)
	}
	o.Items = append([]models.OrderItem{}, o.Items...)
	return &o, nil
}

func (s *Store) ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Order{}
	for _, o := range s.orders {
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		if filter.EventID != nil && o.EventID != *filter.EventID {
			continue
		}
		o.Items = append([]models.OrderItem{}, o.Items...)
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpdateOrderStatus"); err != nil {
		return err
	}
	o, ok := s.orders[id]
	if !ok {
		return fmt.Errorf("%w: order %s", models.ErrNotFound, id)
	}
	o.Status = status
	o.UpdatedAt = at
	s.orders[id] = o
	return nil
}

func (s *Store) InsertCheckin(ctx context.Context, c *models.GuestCheckin) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.checkins[c.OrderID]; ok {
		return false, nil
	}
	c.ID = s.id()
	s.checkins[c.OrderID] = *c
	return true, nil
}

func (s *Store) GetCheckin(ctx context.Context, orderID string) (*models.GuestCheckin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.checkins[orderID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *Store) AllSettings(ctx context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.settings))
	for k, v := range s.settings {
		out[k] = v
	}
	return out, nil
}

func (s *Store) UpsertSettings(ctx context.Context, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpsertSettings"); err != nil {
		return err
	}
	for k, v := range values {
		s.settings[k] = v
	}
	return nil
}

func (s *Store) InsertMissingSettings(ctx context.Context, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range values {
		if _, ok := s.settings[k]; !ok {
			s.settings[k] = v
		}
	}
	return nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.StaffUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return nil, fmt.Errorf("%w: user", models.ErrNotFound)
	}
	return &u, nil
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.StaffUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("%w: user %d", models.ErrNotFound, id)
}

func (s *Store) updateUser(id int64, fn func(u *models.StaffUser)) error {
	for name, u := range s.users {
		if u.ID == id {
			fn(&u)
			s.users[name] = u
			return nil
		}
	}
	return fmt.Errorf("%w: user %d", models.ErrNotFound, id)
}

func (s *Store) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateUser(id, func(u *models.StaffUser) { u.LastLogin = &at })
}

func (s *Store) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateUser(id, func(u *models.StaffUser) { u.PasswordHash = hash })
}

func (s *Store) EnsureUser(ctx context.Context, u *models.StaffUser) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Username]; ok {
		return false, nil
	}
	u.ID = s.id()
	s.users[u.Username] = *u
	return true, nil
}

// AddUser stores a user with a bcrypt hash of password.
func (s *Store) AddUser(username, password string, role models.Role) models.StaffUser {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	u := models.StaffUser{Username: username, PasswordHash: string(hash), Role: role, CreatedAt: time.Now()}
	if _, err := s.EnsureUser(context.Background(), &u); err != nil {
		panic(err)
	}
	return u
}
