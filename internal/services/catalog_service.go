package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joshua-takyi/eventtickets/internal/cache"
	"github.com/joshua-takyi/eventtickets/internal/models"
	"github.com/joshua-takyi/eventtickets/internal/monitoring"
	"go.opentelemetry.io/otel/attribute"
)

type CatalogService struct {
	events models.EventRepository
	tx     models.Transactor
	cache  *cache.CatalogCache
	langs  Languages
	logger *slog.Logger
	now    clock
}

func NewCatalogService(events models.EventRepository, tx models.Transactor, c *cache.CatalogCache, langs Languages, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		events: events,
		tx:     tx,
		cache:  c,
		langs:  langs,
		logger: logger,
	}
}

// ListActiveEvents reads the catalog generation before the database, so a
// result loaded across a concurrent mutation lands under a retired key.
func (cs *CatalogService) ListActiveEvents(ctx context.Context) ([]models.Event, error) {
	version, cached := cs.cache.Version(ctx)
	if cached {
		if events, ok := cs.cache.Events(ctx, version); ok {
			return events, nil
		}
	}
	events, err := cs.events.ListActiveEvents(ctx)
	if err != nil {
		return nil, internal(ctx, cs.logger, "list events", err)
	}
	if cached {
		cs.cache.SetEvents(ctx, version, events)
	}
	return events, nil
}

func (cs *CatalogService) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	version, cached := cs.cache.Version(ctx)
	if cached {
		if e, ok := cs.cache.Event(ctx, version, id); ok {
			return e, nil
		}
	}
	e, err := cs.events.GetEventByID(ctx, id)
	if err != nil {
		return nil, internal(ctx, cs.logger, "get event", err)
	}
	if !e.IsActive() {
		return nil, fmt.Errorf("%w: event %d", models.ErrNotFound, id)
	}
	if cached {
		cs.cache.SetEvent(ctx, version, e)
	}
	return e, nil
}

// mutate runs fn in a transaction bracketed by two catalog generation bumps.
// The first one aborts the write when the cache cannot be invalidated. The
// second one retires entries loaded between the first bump and the commit.
func (cs *CatalogService) mutate(ctx context.Context, fn func(ctx context.Context) error) error {
	err := cs.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := cs.cache.Invalidate(ctx); err != nil {
			return err
		}
		return fn(ctx)
	})
	if err != nil {
		return err
	}
	if err := cs.cache.Invalidate(ctx); err != nil {
		cs.logger.WarnContext(ctx, "catalog cache invalidation after commit failed", "error", err)
	}
	return nil
}

func (cs *CatalogService) CreateEvent(ctx context.Context, in models.EventInput) (_ *models.Event, err error) {
	ctx, span := monitoring.Tracer().Start(ctx, "catalog.CreateEvent")
	defer func() { endSpan(span, err) }()

	e, err := cs.buildEvent(in)
	if err != nil {
		return nil, err
	}
	now := cs.now.now()
	e.Status = models.EventStatusActive
	e.CreatedAt, e.UpdatedAt = now, now

	err = cs.mutate(ctx, func(ctx context.Context) error {
		if err := cs.events.CreateEvent(ctx, e); err != nil {
			return err
		}
		return cs.events.ReplaceTicketTypes(ctx, e.ID, e.TicketTypes)
	})
	if err != nil {
		return nil, internal(ctx, cs.logger, "create event", err)
	}
	span.SetAttributes(attribute.Int64("event.id", e.ID))

	cs.logger.InfoContext(ctx, "event created", "event_id", e.ID, "ticket_types", len(e.TicketTypes))
	return e, nil
}

func (cs *CatalogService) UpdateEvent(ctx context.Context, id int64, in models.EventInput) (_ *models.Event, err error) {
	ctx, span := monitoring.Tracer().Start(ctx, "catalog.UpdateEvent")
	span.SetAttributes(attribute.Int64("event.id", id))
	defer func() { endSpan(span, err) }()

	e, err := cs.buildEvent(in)
	if err != nil {
		return nil, err
	}
	e.ID = id
	e.UpdatedAt = cs.now.now()

	err = cs.mutate(ctx, func(ctx context.Context) error {
		cur, err := cs.events.GetEventByID(ctx, id)
		if err != nil {
			return err
		}
		if !cur.IsActive() {
			return fmt.Errorf("%w: event %d", models.ErrNotFound, id)
		}
		e.Status = cur.Status
		e.CreatedAt = cur.CreatedAt
		if err := cs.events.UpdateEvent(ctx, e); err != nil {
			return err
		}
		return cs.events.ReplaceTicketTypes(ctx, id, e.TicketTypes)
	})
	if err != nil {
		return nil, internal(ctx, cs.logger, "update event", err)
	}

	cs.logger.InfoContext(ctx, "event updated", "event_id", id, "ticket_types", len(e.TicketTypes))
	return e, nil
}

// DeleteEvent hides the event from the catalog. Ticket types and orders
// stay untouched.
func (cs *CatalogService) DeleteEvent(ctx context.Context, id int64) error {
	err := cs.mutate(ctx, func(ctx context.Context) error {
		cur, err := cs.events.GetEventByID(ctx, id)
		if err != nil {
			return err
		}
		if !cur.IsActive() {
			return fmt.Errorf("%w: event %d", models.ErrNotFound, id)
		}
		return cs.events.SetEventStatus(ctx, id, models.EventStatusDeleted, cs.now.now())
	})
	if err != nil {
		return internal(ctx, cs.logger, "delete event", err)
	}

	cs.logger.InfoContext(ctx, "event deleted", "event_id", id)
	return nil
}

func (cs *CatalogService) buildEvent(in models.EventInput) (*models.Event, error) {
	if err := models.Validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	e := &models.Event{
		Title:       in.Title.Normalize(cs.langs.Supported, cs.langs.Default),
		Description: in.Description.Normalize(cs.langs.Supported, cs.langs.Default),
		Location:    in.Location.Normalize(cs.langs.Supported, cs.langs.Default),
		Date:        in.Date,
		Time:        in.Time,
		Category:    strings.TrimSpace(in.Category),
		Image:       strings.TrimSpace(in.Image),
		TicketTypes: make([]models.TicketType, 0, len(in.TicketTypes)),
	}
	if e.Title.IsBlank() {
		return nil, fmt.Errorf("%w: title is required", models.ErrValidation)
	}
	if e.Location.IsBlank() {
		return nil, fmt.Errorf("%w: location is required", models.ErrValidation)
	}
	if e.Category == "" {
		e.Category = models.DefaultEventCategory
	}
	if e.Image == "" {
		e.Image = models.DefaultEventImage
	}

	for i, t := range in.TicketTypes {
		name := t.Name.Normalize(cs.langs.Supported, cs.langs.Default)
		if name.IsBlank() {
			return nil, fmt.Errorf("%w: ticket %d: name is required", models.ErrValidation, i+1)
		}
		if err := models.CheckAmount(*t.Price); err != nil {
			return nil, fmt.Errorf("%w: ticket %d: price %v", models.ErrValidation, i+1, err)
		}
		qty := models.UnlimitedQuantity
		if t.QuantityAvailable != nil {
			qty = *t.QuantityAvailable
		}
		e.TicketTypes = append(e.TicketTypes, models.TicketType{
			Name:              name,
			Price:             *t.Price,
			QuantityAvailable: qty,
		})
	}
	return e, nil
}
