package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	gcstorage "cloud.google.com/go/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/adil24689/fashion-haven-hub-sub000/internal/config"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/event"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/guest"
	handler "github.com/adil24689/fashion-haven-hub-sub000/internal/handler/http"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/identity"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/mediastore"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/mediastore/gcs"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/mediastore/memory"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/repository/postgres"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/service"
	"github.com/adil24689/fashion-haven-hub-sub000/internal/store"
	"github.com/adil24689/fashion-haven-hub-sub000/migrations"
	"github.com/adil24689/fashion-haven-hub-sub000/pkg/database"
	"github.com/adil24689/fashion-haven-hub-sub000/pkg/health"
	pkgkafka "github.com/adil24689/fashion-haven-hub-sub000/pkg/kafka"
	"github.com/adil24689/fashion-haven-hub-sub000/pkg/tracing"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	rdb            *redis.Client
	producer       *pkgkafka.Producer
	stores         *store.Manager
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "storefront",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRate:     1.0,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Initialize PostgreSQL connection pool.
	pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)

	// Run database migrations.
	if err := database.RunMigrations(ctx, pool, migrations.FS, migrations.Dir, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Initialize Redis client for guest session snapshots.
	rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Media storage for avatar uploads.
	media, err := newMediaStorage(ctx, cfg)
	if err != nil {
		pool.Close()
		_ = rdb.Close()
		return nil, fmt.Errorf("init media storage: %w", err)
	}

	// Build the dependency graph.
	guestTTL := time.Duration(cfg.GuestTTL) * time.Hour
	guestStore := guest.NewStore(rdb, guestTTL, logger)
	provider := identity.NewProvider(logger)
	eventProducer := event.NewProducer(producer, logger)

	stores := store.NewManager(store.ManagerConfig{
		Identity:     provider,
		Guest:        guestStore,
		CartRepo:     postgres.NewCartRepository(pool),
		WishlistRepo: postgres.NewWishlistRepository(pool),
		Events:       eventProducer,
		Logger:       logger,
	})

	catalogService := service.NewCatalogService(postgres.NewCatalogRepository(pool), logger)
	profileService := service.NewProfileService(postgres.NewProfileRepository(pool), media, eventProducer, logger)
	checkoutService := service.NewCheckoutService(postgres.NewOrderRepository(pool), stores, eventProducer, logger)
	reviewService := service.NewReviewService(postgres.NewReviewRepository(pool), eventProducer, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	// HTTP router.
	router := handler.NewRouter(handler.RouterConfig{
		Stores:          stores,
		Identity:        provider,
		CatalogService:  catalogService,
		ProfileService:  profileService,
		CheckoutService: checkoutService,
		ReviewService:   reviewService,
		HealthHandler:   healthHandler,
		Logger:          logger,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		rdb:            rdb,
		producer:       producer,
		stores:         stores,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

func newMediaStorage(ctx context.Context, cfg *config.Config) (mediastore.Storage, error) {
	switch cfg.MediaBackend {
	case "gcs":
		client, err := gcstorage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("create gcs client: %w", err)
		}
		return gcs.New(client, cfg.GCSBucket)
	default:
		return memory.New(cfg.MediaBaseURL), nil
	}
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in order: drain HTTP requests,
// wait for detached persistence writes, flush spans, then close the Kafka
// producer, Redis client, and PostgreSQL pool.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	// Drain in-flight cart and wishlist backend writes.
	a.stores.Flush()

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
