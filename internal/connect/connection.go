package connect

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joshua-takyi/eventtickets/internal/notify"
	"github.com/redis/go-redis/v9"
)

// Postgres opens a pgx pool and pings it.
func Postgres(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}
	cfg.MaxConns = 20
	cfg.MinConns = 2
	cfg.MaxConnIdleTime = 5 * time.Minute

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping Postgres: %w", err)
	}
	return pool, nil
}

// Redis returns nil when url is empty.
func Redis(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	opts.PoolSize = 50
	opts.MinIdleConns = 5
	opts.MaxRetries = 3

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	return client, nil
}

// AMQP returns nil when url is empty.
func AMQP(url, exchange string) (*notify.Publisher, error) {
	if url == "" {
		return nil, nil
	}
	pub, err := notify.NewPublisher(url, exchange)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to AMQP broker: %w", err)
	}
	return pub, nil
}

// Clients bundles the external connections so they can be closed together.
type Clients struct {
	Pool      *pgxpool.Pool
	Redis     *redis.Client
	Publisher *notify.Publisher
}

func (c *Clients) Close(logger *slog.Logger) {
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			logger.Error("Error closing AMQP publisher", "error", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("Error closing Redis client", "error", err)
		}
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
}
