// @title                       Accounts API
// @version                     1.0
// @description                 Identity, registries and payment orders for the accounting backend.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/shivaccounts/accounts-api/internal/api"
	"github.com/shivaccounts/accounts-api/internal/core/ports"
	"github.com/shivaccounts/accounts-api/internal/core/service"
	"github.com/shivaccounts/accounts-api/internal/infrastructure/config"
	mongodb "github.com/shivaccounts/accounts-api/internal/infrastructure/db/mongo"
	"github.com/shivaccounts/accounts-api/internal/infrastructure/db/postgres"
	redisdb "github.com/shivaccounts/accounts-api/internal/infrastructure/db/redis"
	"github.com/shivaccounts/accounts-api/internal/infrastructure/http/handlers"
	"github.com/shivaccounts/accounts-api/internal/infrastructure/payment"
	"github.com/shivaccounts/accounts-api/internal/infrastructure/queue"
	"github.com/shivaccounts/accounts-api/internal/infrastructure/security"
	"github.com/shivaccounts/accounts-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log := logger.Init(logger.Options{Service: "accounts-api"})
		log.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "accounts-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server exited")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	pool, err := postgres.Connect(ctx, postgres.Config{
		URL:      cfg.Postgres.URL,
		MaxConns: cfg.Postgres.MaxConns,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		return err
	}
	log.Info().Msg("postgres ready")

	readiness := []handlers.Dependency{
		{Name: "postgres", Check: pool.Ping},
	}

	// Audit trail: optional, events are dropped when Mongo is not configured.
	var audit ports.AuditRecorder = ports.NopAuditRecorder{}
	var dispatcher *queue.AuditDispatcher
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	if cfg.Mongo.URI != "" {
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect")
			}
		}()

		auditRepo := mongodb.NewAuditRepository(db)
		if err := auditRepo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("audit index creation failed")
		}
		dispatcher = queue.NewAuditDispatcher(0, auditRepo, log)
		dispatcher.Start(workerCtx)
		audit = dispatcher

		readiness = append(readiness, handlers.Dependency{
			Name:     "mongo",
			Check:    func(ctx context.Context) error { return client.Ping(ctx, nil) },
			Optional: true,
		})
		log.Info().Str("database", cfg.Mongo.Database).Msg("audit trail enabled")
	} else {
		log.Warn().Msg("MONGO_URI not set, auth audit trail disabled")
	}

	authOpts := []service.AuthOption{
		service.WithLogger(log),
		service.WithAuditRecorder(audit),
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Warn().Err(err).Msg("redis close")
			}
		}()

		throttle := redisdb.NewLoginThrottle(rdb, cfg.Login.MaxAttempts, cfg.Login.LockoutWindow)
		authOpts = append(authOpts, service.WithLoginThrottle(throttle))
		readiness = append(readiness, handlers.Dependency{
			Name:     "redis",
			Check:    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
			Optional: true,
		})
		log.Info().Int("max_attempts", cfg.Login.MaxAttempts).Dur("window", cfg.Login.LockoutWindow).Msg("login throttling enabled")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, login throttling disabled")
	}

	tokens, err := security.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}
	hasher := security.NewBcryptHasher(cfg.BcryptCost)

	// Left as a nil interface when credentials are missing so the service
	// answers 503 instead of calling out.
	var gateway ports.PaymentGateway
	if cfg.Payment.KeyID != "" {
		client, err := payment.NewClient(payment.Config{
			BaseURL:   cfg.Payment.BaseURL,
			KeyID:     cfg.Payment.KeyID,
			KeySecret: cfg.Payment.KeySecret,
			Timeout:   cfg.Payment.Timeout,
		})
		if err != nil {
			return err
		}
		gateway = client
	} else {
		log.Warn().Msg("payment credentials not set, /create-order will answer 503")
	}

	e := api.NewRouter(api.Dependencies{
		Auth:     service.NewAuthService(postgres.NewUserRepository(pool), hasher, tokens, authOpts...),
		Tokens:   tokens,
		Products: service.NewProductService(postgres.NewProductRepository(pool), log),
		Taxes:    service.NewTaxService(postgres.NewTaxRepository(pool), log),
		Contacts: service.NewContactService(postgres.NewContactRepository(pool), log),
		Accounts: service.NewAccountService(postgres.NewAccountRepository(pool), log),
		Payments: service.NewPaymentService(gateway, cfg.Payment.Currency, log),

		Readiness:               readiness,
		RequireAuthForResources: cfg.RequireAuthForResources,
		CORSAllowOrigins:        cfg.CORSAllowOrigins,
		MetricsRegisterer:       prometheus.DefaultRegisterer,
		MetricsGatherer:         prometheus.DefaultGatherer,
		Log:                     log,
	})
	e.Server.ReadHeaderTimeout = 10 * time.Second

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}

	// In-flight requests are done; let the audit workers drain.
	cancelWorkers()
	if dispatcher != nil {
		dispatcher.Wait()
	}
	return nil
}
