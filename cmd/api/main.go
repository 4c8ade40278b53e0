package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/joshua-takyi/eventtickets/internal/config"
	"github.com/joshua-takyi/eventtickets/internal/connect"
	"github.com/joshua-takyi/eventtickets/internal/container"
	"github.com/joshua-takyi/eventtickets/internal/models"
	"github.com/joshua-takyi/eventtickets/internal/monitoring"
	"github.com/joshua-takyi/eventtickets/internal/notify"
	"github.com/joshua-takyi/eventtickets/internal/routes"
	"github.com/redis/go-redis/v9"
	flag "github.com/spf13/pflag"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "apply the schema, seed defaults and exit")
	seedDemo := flag.Bool("seed-demo", false, "add the demo events missing from the catalog")
	envFile := flag.String("env-file", ".env.local", "dotenv file to load before reading the environment")
	flag.Parse()

	// Load environment variables
	_ = godotenv.Load(*envFile)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg)
	logger.Info("Starting EventTickets API server", "environment", cfg.Environment)

	ctx := context.Background()

	shutdownTracer, err := monitoring.InitTracer(ctx, cfg.OTLPEndpoint, cfg.Environment)
	if err != nil {
		logger.Error("Failed to initialize tracing", "error", err)
		os.Exit(1)
	}

	// Initialize connections
	clients := &connect.Clients{}
	clients.Pool, err = connect.Postgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to Postgres", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to Postgres successfully")

	clients.Redis, err = connect.Redis(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error("Failed to connect to Redis", "error", err)
		clients.Close(logger)
		os.Exit(1)
	}
	var rdb redis.Cmdable
	if clients.Redis != nil {
		rdb = clients.Redis
		logger.Info("Connected to Redis successfully")
	} else {
		logger.Warn("REDIS_URL not set, catalog cache and rate limiting disabled")
	}

	clients.Publisher, err = connect.AMQP(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		logger.Error("Failed to connect to AMQP broker", "error", err)
		clients.Close(logger)
		os.Exit(1)
	}
	var notifier notify.Notifier
	if clients.Publisher != nil {
		notifier = notify.NewAMQPNotifier(clients.Publisher)
		logger.Info("Connected to AMQP broker successfully", "exchange", cfg.AMQPExchange)
	}

	repo := models.NewPostgresRepo(clients.Pool)
	if err := repo.Migrate(ctx); err != nil {
		logger.Error("Failed to apply schema", "error", err)
		clients.Close(logger)
		os.Exit(1)
	}

	// Initialize dependency container
	appContainer := container.NewContainer(cfg, logger, repo, models.NewTxManager(clients.Pool), rdb, notifier)
	if err := appContainer.Bootstrap(ctx); err != nil {
		logger.Error("Failed to seed defaults", "error", err)
		clients.Close(logger)
		os.Exit(1)
	}
	if *seedDemo {
		n, err := appContainer.CatalogService.SeedDemoCatalog(ctx)
		if err != nil {
			logger.Error("Failed to seed demo catalog", "error", err)
		} else {
			logger.Info("Demo catalog seeded", "events", n)
		}
	}
	if *migrateOnly {
		logger.Info("Migration finished")
		clients.Close(logger)
		return
	}

	// Setup routes
	router := routes.SetupRoutes(appContainer)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	clients.Close(logger)
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Error("Error flushing traces", "error", err)
	}

	logger.Info("Server exited")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	var handler slog.Handler
	if cfg.IsProduction() {
		// JSON logging for production
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		// Human-readable logging for development
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}
