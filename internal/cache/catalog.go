package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/joshua-takyi/eventtickets/internal/models"
	"github.com/redis/go-redis/v9"
)

// VersionKey holds the catalog generation. Every entry is stored under the
// generation it was read in, so bumping it retires all earlier entries.
const VersionKey = "catalog:version"

func EventsKey(version int64) string {
	return fmt.Sprintf("catalog:%d:events", version)
}

func EventKey(version, id int64) string {
	return fmt.Sprintf("catalog:%d:event:%d", version, id)
}

// CatalogCache is a read-through cache of the active catalog. A nil client
// turns every call into a miss.
type CatalogCache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

func NewCatalogCache(client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl, logger: logger}
}

func (c *CatalogCache) enabled() bool {
	return c != nil && c.client != nil
}

// Version returns the current catalog generation. Callers must read it
// before loading from the database and store what they loaded under it.
// ok is false when the cache is disabled or unreachable.
func (c *CatalogCache) Version(ctx context.Context) (int64, bool) {
	if !c.enabled() {
		return 0, false
	}
	val, err := c.client.Get(ctx, VersionKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		c.logger.Warn("catalog cache version read failed", "error", err)
		return 0, false
	}
	v, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		c.logger.Warn("catalog cache version is corrupt", "value", val, "error", err)
		return 0, false
	}
	return v, true
}

func (c *CatalogCache) Events(ctx context.Context, version int64) ([]models.Event, bool) {
	var events []models.Event
	if !c.get(ctx, EventsKey(version), &events) {
		return nil, false
	}
	return events, true
}

func (c *CatalogCache) SetEvents(ctx context.Context, version int64, events []models.Event) {
	c.set(ctx, EventsKey(version), events)
}

func (c *CatalogCache) Event(ctx context.Context, version, id int64) (*models.Event, bool) {
	var e models.Event
	if !c.get(ctx, EventKey(version, id), &e) {
		return nil, false
	}
	return &e, true
}

func (c *CatalogCache) SetEvent(ctx context.Context, version int64, e *models.Event) {
	c.set(ctx, EventKey(version, e.ID), e)
}

// Invalidate starts a new catalog generation. Entries of older generations
// are never read again and expire on their TTL.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	if err := c.client.Incr(ctx, VersionKey).Err(); err != nil {
		return fmt.Errorf("bump catalog version: %w", err)
	}
	return nil
}

func (c *CatalogCache) get(ctx context.Context, key string, dst any) bool {
	if !c.enabled() {
		return false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("catalog cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(val), dst); err != nil {
		c.logger.Warn("catalog cache entry is corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (c *CatalogCache) set(ctx context.Context, key string, v any) {
	if !c.enabled() {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("catalog cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, string(data), c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", "key", key, "error", err)
	}
}
