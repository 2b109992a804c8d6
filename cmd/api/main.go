package main

import (
	"context"
	"time"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/application/usecases"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/config"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/quiz"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/repositories"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/infrastructure/analytics"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/infrastructure/cache"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/infrastructure/database"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/infrastructure/storage"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/interfaces/http/handlers"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/interfaces/http/middleware"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/interfaces/http/routes"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}
	logger.Init("info", true)

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			NewDatabase,
			NewKeyValueStore,
			NewCollector,
			NewFiberApp,
		),

		fx.Provide(
			quiz.DefaultCatalog,
			usecases.NewTrackerFactory,
			func(cfg *config.Config) *usecases.SessionRegistry {
				return usecases.NewSessionRegistry(cfg.Funnel.SessionTTL)
			},
		),

		fx.Provide(
			func(cfg *config.Config, catalog *quiz.Catalog, kv repositories.KeyValueStore, sessions *usecases.SessionRegistry, trackers *usecases.TrackerFactory) *handlers.ScreenHandler {
				return handlers.NewScreenHandler(catalog, kv, sessions, trackers, cfg.Funnel.AnalysisDuration)
			},
			NewRouteHandlers,
		),

		fx.Invoke(ConfigureLogger),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown finished with errors")
	}
}

func ConfigureLogger(cfg *config.Config) {
	logger.Init(cfg.LogLevel, cfg.IsDevelopment())
}

// NewDatabase connects to Postgres when DATABASE_URL is set and returns nil
// otherwise.
func NewDatabase(lc fx.Lifecycle, cfg *config.Config) (*gorm.DB, error) {
	if cfg.Storage.DatabaseURL == "" {
		log.Info().Msg("DATABASE_URL not set, running without event log")
		return nil, nil
	}

	db, err := database.SetupDatabase(cfg.Storage.DatabaseURL)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return database.Close(db)
		},
	})
	return db, nil
}

func NewKeyValueStore(lc fx.Lifecycle, cfg *config.Config, db *gorm.DB) (repositories.KeyValueStore, error) {
	switch cfg.Storage.Driver {
	case config.StorageRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client, err := storage.NewRedisClient(ctx, cfg.Storage.RedisAddr)
		if err != nil {
			return nil, err
		}
		store := storage.NewRedisStore(client, cfg.Storage.TTL)
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return store.Close()
			},
		})
		return store, nil

	case config.StoragePostgres:
		return storage.NewPostgresStore(db), nil

	default:
		store := storage.NewMemoryStore(cfg.Storage.TTL)
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return store.Close()
			},
		})
		return store, nil
	}
}

// NewCollector fans events out to Mixpanel, the Postgres event log and the
// AMQP exchange, whichever are configured, behind an async queue.
func NewCollector(lc fx.Lifecycle, cfg *config.Config, db *gorm.DB) (usecases.Collector, error) {
	collectors := []usecases.Collector{
		analytics.NewMixpanelCollector(cfg.Analytics.APIURL, cfg.Analytics.WriteKey),
	}
	if cfg.Analytics.WriteKey == analytics.PlaceholderToken {
		log.Warn().Msg("ANALYTICS_WRITE_KEY not set, Mixpanel deliveries will be rejected")
	}

	if db != nil {
		collectors = append(collectors, analytics.NewEventLogCollector(
			repositories.NewEventRepository(db),
			repositories.NewProfileRepository(db),
		))
	}

	if cfg.Analytics.AMQPURL != "" {
		publisher, err := analytics.NewAMQPCollector(cfg.Analytics.AMQPURL, cfg.Analytics.AMQPExchange)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return publisher.Close()
			},
		})
		collectors = append(collectors, publisher)
	}

	multi := analytics.NewMultiCollector(collectors...)
	log.Info().Int("collectors", multi.Len()).Msg("Analytics collectors configured")

	async := analytics.NewAsyncCollector(multi, cfg.Analytics.QueueSize)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return async.Close(ctx)
		},
	})
	return async, nil
}

func NewRouteHandlers(db *gorm.DB, screens *handlers.ScreenHandler, sessions *usecases.SessionRegistry) routes.Handlers {
	h := routes.Handlers{
		Screens: screens,
		Health:  handlers.NewHealthHandler(db, sessions),
	}
	if db != nil {
		h.Events = handlers.NewEventHandler(usecases.NewEventUseCase(repositories.NewEventRepository(db)))
		h.Funnel = handlers.NewFunnelHandler(usecases.NewFunnelUseCase(repositories.NewFunnelRepository(db), cache.New(time.Minute)))
	}
	return h
}

func NewFiberApp(cfg *config.Config) *fiber.App {
	// Configure Fiber for better performance
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		Concurrency:  256 * 1024,
		BodyLimit:    1024 * 1024,
		ReadTimeout:  5 * time.Second,
		// the loader stream stays open for the whole analysis
		WriteTimeout: cfg.Funnel.AnalysisDuration + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	})

	middleware.SetupMiddlewares(app, cfg.Server.CORSOrigins)
	return app
}

// RegisterRoutesAndStartServer mounts the routes and ties the server to the
// application lifecycle.
func RegisterRoutesAndStartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config, h routes.Handlers) {
	routes.SetupRoutes(app, h, cfg.Funnel.VisitorSecret)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Quiz funnel server starting on port %s", cfg.Server.Port)
			go func() {
				if err := app.Listen(":" + cfg.Server.Port); err != nil {
					log.Fatal().Err(err).Msg("Server Listen failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			return app.ShutdownWithContext(ctx)
		},
	})
}
