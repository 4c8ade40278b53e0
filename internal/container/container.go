package container

import (
	"context"
	"log/slog"

	"github.com/joshua-takyi/eventtickets/internal/cache"
	"github.com/joshua-takyi/eventtickets/internal/config"
	"github.com/joshua-takyi/eventtickets/internal/helpers"
	"github.com/joshua-takyi/eventtickets/internal/models"
	"github.com/joshua-takyi/eventtickets/internal/notify"
	"github.com/joshua-takyi/eventtickets/internal/services"
	"github.com/redis/go-redis/v9"
)

// Store is the full repository surface the services need.
type Store interface {
	models.EventRepository
	models.OrderRepository
	models.CheckinRepository
	models.SettingsRepository
	models.UserRepository
}

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Redis is nil when REDIS_URL is not set.
	Redis redis.Cmdable

	CatalogService  *services.CatalogService
	OrderService    *services.OrderService
	CheckinService  *services.CheckinService
	SettingsService *services.SettingsService
	AuthService     *services.AuthService

	// HealthChecks are pinged by GET /api/health.
	HealthChecks map[string]func(context.Context) error
}

// NewContainer wires the services. rdb and notifier may be nil: the catalog
// cache and rate limiter are then disabled and order events are only logged.
func NewContainer(cfg *config.Config, logger *slog.Logger, store Store, tx models.Transactor, rdb redis.Cmdable, notifier notify.Notifier) *Container {
	langs := services.Languages{Supported: cfg.SupportedLanguages, Default: cfg.DefaultLanguage}
	if notifier == nil {
		notifier = notify.NewLogNotifier(logger)
	}

	catalogCache := cache.NewCatalogCache(rdb, cfg.CatalogCacheTTL, logger)
	settingsService := services.NewSettingsService(store, tx, logger)
	signer := helpers.NewTokenSigner(cfg.JWTSecret, cfg.JWTTTL)

	c := &Container{
		Config:          cfg,
		Logger:          logger,
		Redis:           rdb,
		CatalogService:  services.NewCatalogService(store, tx, catalogCache, langs, logger),
		OrderService:    services.NewOrderService(store, store, tx, settingsService, notifier, langs, logger),
		CheckinService:  services.NewCheckinService(store, store, tx, logger),
		SettingsService: settingsService,
		AuthService:     services.NewAuthService(store, signer, logger),
		HealthChecks:    map[string]func(context.Context) error{},
	}

	if p, ok := store.(interface{ Ping(context.Context) error }); ok {
		c.HealthChecks["database"] = p.Ping
	}
	if rdb != nil {
		c.HealthChecks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}
	return c
}

// Bootstrap seeds default settings and the initial admin account.
func (c *Container) Bootstrap(ctx context.Context) error {
	if err := c.SettingsService.SeedDefaults(ctx); err != nil {
		return err
	}
	return c.AuthService.EnsureAdmin(ctx, c.Config.DefaultAdminUsername, c.Config.DefaultAdminPassword)
}
