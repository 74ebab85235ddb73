// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/ammerola/inventory-dashboard/internal/adapters/db"
	redis_a "github.com/ammerola/inventory-dashboard/internal/adapters/redis_adapter"
	"github.com/ammerola/inventory-dashboard/internal/adapters/storage"
	"github.com/ammerola/inventory-dashboard/internal/core/ports"
	"github.com/ammerola/inventory-dashboard/internal/core/services"
	"github.com/ammerola/inventory-dashboard/internal/handlers"
	"github.com/ammerola/inventory-dashboard/internal/handlers/middleware"
	"github.com/ammerola/inventory-dashboard/internal/pkg/config"
	"github.com/ammerola/inventory-dashboard/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	appLogger := logger.SetupLogger("info", "json")
	slogger := appLogger.Logger

	slogger.Info("starting inventory dashboard",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
	)

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	appLogger = logger.NewLogger(&logger.LogConfig{
		Level:            cfg.App.LogLevel,
		Format:           cfg.App.LogFormat,
		Output:           "stdout",
		AddSource:        cfg.IsDevelopment(),
		EnableStackTrace: cfg.IsDevelopment(),
		Environment:      cfg.App.Environment,
		ServiceName:      cfg.App.Name,
		ServiceVersion:   Version,
	})
	slogger = appLogger.Logger
	slog.SetDefault(slogger)
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if cfg.Database.AutoMigrate {
		if err := runMigrations(ctx, cfg, slogger); err != nil {
			slogger.Error("failed to run migrations", slog.String("error", err.Error()))
			if cfg.IsProduction() {
				os.Exit(1)
			}
		}
	}

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	go deps.rateLimiter.Run(ctx)

	server := setupHTTPServer(cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server", slog.String("address", cfg.GetServerAddress()))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case <-ctx.Done():
		slogger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			_ = server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	database         *db.Database
	redisClient      *redis.Client
	cache            ports.CacheRepository
	objectStorage    ports.ObjectStorage
	rateLimiter      *middleware.RateLimiter
	metrics          *middleware.Metrics
	inventoryHandler *handlers.InventoryHandler
	productHandler   *handlers.ProductHandler
	dashboardHandler *handlers.DashboardHandler
	healthHandler    *handlers.HealthHandler
	cronHandler      *handlers.CronHandler
}

func (d *dependencies) cleanup() {
	if d.database != nil {
		d.database.Close()
	}
	if d.redisClient != nil {
		_ = d.redisClient.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	database, err := db.NewDatabase(ctx, &db.Config{
		URL:                cfg.Database.URL,
		MaxConnections:     cfg.Database.MaxConnections,
		MinConnections:     cfg.Database.MinConnections,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.database = database

	// Redis is optional; without it every read goes to Postgres.
	if cfg.Redis.Enabled {
		logger.Info("connecting to Redis", slog.String("addr", cfg.Redis.Addr))

		client := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			MaxRetries:   cfg.Redis.MaxRetries,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, caching disabled", slog.String("error", err.Error()))
			_ = client.Close()
		} else {
			deps.redisClient = client
			deps.cache = redis_a.NewCache(client, cfg.Cache.InventoryTTL, logger)
		}
	}

	if cfg.AWS.S3Enabled {
		s3Storage, err := storage.NewS3Storage(ctx, &storage.S3Config{
			Region:          cfg.AWS.Region,
			Bucket:          cfg.AWS.S3Bucket,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Endpoint:        cfg.AWS.S3Endpoint,
			UsePathStyle:    cfg.AWS.UsePathStyle,
		}, logger)
		if err != nil {
			logger.Warn("S3 unavailable, export archiving disabled", slog.String("error", err.Error()))
		} else {
			deps.objectStorage = s3Storage
		}
	}

	inventoryRepo := db.NewInventoryRepository(database)
	productRepo := db.NewProductRepository(database, logger)

	inventoryService := services.NewInventoryService(inventoryRepo, deps.cache, deps.objectStorage, services.InventoryOptions{
		PageTTL:       cfg.Cache.InventoryTTL,
		SummaryTTL:    cfg.Cache.DashboardTTL,
		ExportMaxRows: cfg.Export.MaxRows,
		PresignedTTL:  cfg.Export.PresignedTTL,
	}, logger)
	productService := services.NewProductService(productRepo, deps.cache, logger)

	deps.inventoryHandler = handlers.NewInventoryHandler(inventoryService, logger)
	deps.productHandler = handlers.NewProductHandler(productService, logger)
	deps.dashboardHandler = handlers.NewDashboardHandler(inventoryService, logger)
	deps.cronHandler = handlers.NewCronHandler(database, cfg.Security.CronSecret, logger)
	deps.healthHandler = handlers.NewHealthHandler(database, deps.cache, handlers.BuildInfo{
		Version:     Version,
		Environment: cfg.App.Environment,
	}, logger)

	deps.rateLimiter = middleware.NewRateLimiter(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration)
	if cfg.Server.EnableMetrics {
		deps.metrics = middleware.NewMetrics("inventory_dashboard", nil)
	}

	logger.Info("all dependencies initialized",
		slog.Bool("cache", deps.cache != nil),
		slog.Bool("archive", deps.objectStorage != nil),
	)
	return deps, nil
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, logger *slog.Logger) *http.Server {
	router := handlers.Router{
		Inventory: deps.inventoryHandler,
		Products:  deps.productHandler,
		Dashboard: deps.dashboardHandler,
		Health:    deps.healthHandler,
		Cron:      deps.cronHandler,
	}
	if deps.metrics != nil {
		router.Metrics = deps.metrics.Handler()
	}

	mux := http.NewServeMux()
	router.Register(mux)

	chain := []func(http.Handler) http.Handler{
		middleware.RequestID(cfg.Security.RequestIDHeader),
		middleware.Logger(logger),
		middleware.Recovery(logger),
	}
	if deps.metrics != nil {
		chain = append(chain, deps.metrics.Middleware)
	}
	if len(cfg.Security.AllowedOrigins) > 0 {
		chain = append(chain, middleware.CORS(cfg.Security.AllowedOrigins))
	}
	if cfg.Security.SecureHeaders {
		chain = append(chain, middleware.SecureHeaders)
	}
	if cfg.Security.RateLimitRequests > 0 {
		chain = append(chain, deps.rateLimiter.Middleware)
	}
	chain = append(chain, middleware.Compression)
	if cfg.Server.WriteTimeout > 0 {
		chain = append(chain, middleware.Timeout(cfg.Server.WriteTimeout))
	}

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        middleware.Chain(mux, chain...),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("running database migrations")

	return db.RunMigrationsWithRetry(ctx, &db.MigrationConfig{
		DatabaseURL: cfg.Database.URL,
		SourcePath:  cfg.Database.MigrationPath,
		TableName:   "schema_migrations",
		SchemaName:  "public",
	}, logger, 3)
}
