package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EhteshamRajpot/shop-o-backend/internal/adapter/http/handler"
	"github.com/EhteshamRajpot/shop-o-backend/internal/adapter/http/router"
	mongoadapter "github.com/EhteshamRajpot/shop-o-backend/internal/adapter/mongo"
	natsadapter "github.com/EhteshamRajpot/shop-o-backend/internal/adapter/nats"
	redisadapter "github.com/EhteshamRajpot/shop-o-backend/internal/adapter/redis"
	"github.com/EhteshamRajpot/shop-o-backend/internal/adapter/storage"
	"github.com/EhteshamRajpot/shop-o-backend/internal/app/config"
	"github.com/EhteshamRajpot/shop-o-backend/internal/auth"
	"github.com/EhteshamRajpot/shop-o-backend/internal/entity"
	"github.com/EhteshamRajpot/shop-o-backend/internal/mailer"
	"github.com/EhteshamRajpot/shop-o-backend/internal/platform/logger"
	"github.com/EhteshamRajpot/shop-o-backend/internal/platform/metrics"
	"github.com/EhteshamRajpot/shop-o-backend/internal/platform/tracer"
	"github.com/EhteshamRajpot/shop-o-backend/internal/repository"
	"github.com/EhteshamRajpot/shop-o-backend/internal/usecase"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type App struct {
	cfg            *config.Config
	log            logger.Logger
	server         *http.Server
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	publisher      natsadapter.MessagePublisher
	tracerShutdown tracer.ShutdownFunc
}

func New(cfg *config.Config) (_ *App, err error) {
	ctx := context.Background()

	var cleanup cleanupStack
	defer func() {
		if err != nil {
			cleanup.run()
		}
	}()

	appLogger, err := logger.NewZapLogger(logger.ZapLoggerConfig{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		TimeFormat: cfg.Logger.TimeFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger.Info("Logger initialized")
	appLogger.Infof("Configuration loaded: Env=%s, HTTP Port: %s", cfg.Env, cfg.HTTPServer.Port)

	tracerShutdown, err := tracer.InitTracer(ctx, cfg.Tracing, cfg.ServiceName, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}
	cleanup.push(func() {
		if shutdownErr := tracerShutdown(context.Background()); shutdownErr != nil {
			appLogger.Errorf("Error shutting down tracer provider: %v", shutdownErr)
		}
	})

	appLogger.Info("Initializing MongoDB client...")
	mongoClient, err := mongoadapter.NewClient(ctx, cfg.MongoDB)
	if err != nil {
		appLogger.Errorf("Failed to initialize MongoDB client: %v", err)
		return nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
	}
	cleanup.push(func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if disconnectErr := mongoClient.Disconnect(disconnectCtx); disconnectErr != nil {
			appLogger.Errorf("Error disconnecting from MongoDB: %v", disconnectErr)
		}
	})
	if err := mongoadapter.EnsureIndexes(ctx, mongoClient.Database(cfg.MongoDB.Database)); err != nil {
		return nil, fmt.Errorf("failed to ensure MongoDB indexes: %w", err)
	}
	appLogger.Info("MongoDB client initialized successfully")

	appLogger.Info("Initializing Redis client...")
	redisClient, err := redisadapter.NewClient(ctx, cfg.Redis)
	if err != nil {
		appLogger.Errorf("Failed to initialize Redis client: %v", err)
		return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
	}
	cleanup.push(func() {
		if closeErr := redisClient.Close(); closeErr != nil {
			appLogger.Errorf("Error closing Redis client: %v", closeErr)
		}
	})
	appLogger.Info("Redis client initialized successfully")

	var natsConn *nats.Conn
	publisher := natsadapter.NewNopPublisher()
	if cfg.NATS.URL != "" {
		natsConn, err = natsadapter.NewConnection(cfg.NATS, cfg.ServiceName, appLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		publisher, err = natsadapter.NewNATSPublisher(natsConn, appLogger)
		if err != nil {
			natsConn.Close()
			return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
		}
		cleanup.push(publisher.Close)
		appLogger.Info("NATS publisher initialized")
	} else {
		appLogger.Warn("NATS URL not set, domain events are disabled")
	}

	avatars, err := storage.New(ctx, cfg.Storage, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize avatar storage: %w", err)
	}
	mail, err := mailer.New(cfg.Mail, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mailer: %w", err)
	}

	metricsManager := metrics.NewMetricsManager(cfg.ServiceName)
	issuer := auth.NewSessionIssuer(cfg.Token.SessionSecret, cfg.Token.SessionTTL, nil)
	sessions := redisadapter.NewSessionStore(redisClient)
	shopRepo := mongoadapter.NewAccountRepository(mongoClient, cfg.MongoDB, entity.KindSeller)

	accountDeps := func(repo repository.AccountRepository) usecase.AccountDeps {
		return usecase.AccountDeps{
			Repo:     repo,
			Codec:    auth.NewActivationCodec(cfg.Token.ActivationSecret, cfg.Token.ActivationTTL, nil),
			Issuer:   issuer,
			Hasher:   auth.NewBcryptHasher(0),
			Mailer:   mail,
			Avatars:  avatars,
			Sessions: sessions,
			Events:   publisher,
			Metrics:  metricsManager,
			Log:      appLogger,
			BaseURL:  cfg.Activation.BaseURL,
		}
	}
	users := usecase.NewAccountUsecase(entity.KindUser,
		accountDeps(mongoadapter.NewAccountRepository(mongoClient, cfg.MongoDB, entity.KindUser)))
	shops := usecase.NewAccountUsecase(entity.KindSeller, accountDeps(shopRepo))
	products := usecase.NewProductUsecase(usecase.ProductDeps{
		Products: mongoadapter.NewProductRepository(mongoClient, cfg.MongoDB),
		Shops:    shopRepo,
		Cache:    redisadapter.NewProductCache(redisClient),
		CacheTTL: cfg.ProductCache.TTL,
		Events:   publisher,
		Metrics:  metricsManager,
		Log:      appLogger,
	})
	appLogger.Info("Usecases initialized")

	cookies := handler.CookieConfig{Secure: cfg.Token.SecureCookie}
	routerDeps := router.Deps{
		Users:    handler.NewAccountHandler(users, avatars, cookies, cfg.HTTPServer.MaxUploadSize, appLogger),
		Shops:    handler.NewAccountHandler(shops, avatars, cookies, cfg.HTTPServer.MaxUploadSize, appLogger),
		Products: handler.NewProductHandler(products, appLogger),
		Verifier: issuer,
		Sessions: sessions,
		Metrics:  metricsManager,
		Log:      appLogger,
	}
	if local, ok := avatars.(*storage.LocalStore); ok {
		routerDeps.UploadDir = local.Dir()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPServer.Port,
		Handler:      router.New(routerDeps),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}
	appLogger.Info("HTTP server instance created")

	return &App{
		cfg:            cfg,
		log:            appLogger,
		server:         srv,
		mongoClient:    mongoClient,
		redisClient:    redisClient,
		publisher:      publisher,
		tracerShutdown: tracerShutdown,
	}, nil
}

func (a *App) Run() {
	a.log.Info("Starting application components...")

	go func() {
		a.log.Infof("HTTP server listening on %s", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	a.log.Infof("Received shutdown signal: %v. Shutting down application...", receivedSignal)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.TimeoutGraceful+5*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.log.Errorf("Error during HTTP server graceful shutdown: %v", err)
	} else {
		a.log.Info("HTTP server stopped successfully")
	}

	a.publisher.Close()

	a.log.Info("Closing database connections...")

	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
			a.log.Errorf("Error disconnecting from MongoDB: %v", err)
		} else {
			a.log.Info("MongoDB connection closed successfully")
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Errorf("Error closing Redis client: %v", err)
		} else {
			a.log.Info("Redis client closed successfully")
		}
	}

	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.log.Errorf("Error shutting down tracer provider: %v", err)
	}

	a.log.Info("Application shut down successfully")
	_ = a.log.Sync()
}
