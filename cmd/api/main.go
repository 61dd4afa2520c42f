// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

// Command api is the entry point for the Los Reyes del Usado HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis, or fall back to the in-process revocation store.
//  5. Run database migrations (idempotent).
//  6. Wire security, mail and media.
//  7. Wire domain handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/losreyesdelusado/backend/internal/api"
	"github.com/losreyesdelusado/backend/internal/catalog/banner"
	"github.com/losreyesdelusado/backend/internal/catalog/category"
	"github.com/losreyesdelusado/backend/internal/catalog/product"
	"github.com/losreyesdelusado/backend/internal/media"
	"github.com/losreyesdelusado/backend/internal/platform/config"
	"github.com/losreyesdelusado/backend/internal/platform/constants"
	"github.com/losreyesdelusado/backend/internal/platform/mail"
	"github.com/losreyesdelusado/backend/internal/platform/metrics"
	"github.com/losreyesdelusado/backend/internal/platform/middleware"
	"github.com/losreyesdelusado/backend/internal/platform/migration"
	pgstore "github.com/losreyesdelusado/backend/internal/platform/postgres"
	redisstore "github.com/losreyesdelusado/backend/internal/platform/redis"
	"github.com/losreyesdelusado/backend/internal/platform/revocation"
	"github.com/losreyesdelusado/backend/internal/platform/sec"
	"github.com/losreyesdelusado/backend/internal/users/account"
	"github.com/losreyesdelusado/backend/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("config", cfg.String()),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, cfg.Timezone, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis / revocation store ───────────────────────────────────────
	var (
		revoked revocation.Store = revocation.NewMemoryStore(time.Now)
		rdb     *goredis.Client
	)
	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
		revoked = revocation.NewRedisStore(rdb, time.Now)
	} else {
		log.Warn("redis_disabled", slog.String("revocation", "memory"))
	}

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Security, mail and media ───────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	must(log, err, "initialize token service")

	var sender mail.Sender = mail.NoopSender{Logger: log}
	if cfg.SMTPConfigured() {
		sender = mail.NewSMTPSender(mail.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			Secure:   cfg.SMTP.Secure,
			From:     cfg.SMTP.From,
			FromName: cfg.SMTP.FromName,
		})
	} else {
		log.Warn("smtp_disabled")
	}
	mailer := mail.NewMailer(sender)

	m := metrics.New()
	storage := media.NewStorage(cfg.MediaBaseDir, cfg.MediaBaseURL, cfg.Location())

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	authService := auth.NewService(userRepository, tokens, revoked, mailer, m, cfg.URLServer)
	guard := middleware.NewGuard(tokens, revoked, userRepository, m)

	accountService := account.NewService(account.NewAccountRepository(pool))

	categoryService := category.NewService(category.NewRepository(pool))
	productService := product.NewService(product.NewRepository(pool), categoryService, storage)
	bannerService := banner.NewService(banner.NewRepository(pool), storage)

	checks := []api.Check{}
	if rdb != nil {
		checks = append(checks, api.Check{
			Name: "redis",
			Ping: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
		})
	}
	health := api.NewHealthHandler(api.Check{
		Name: "postgres",
		Ping: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
	}, cfg.Location(), log, checks...)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	serverCtx, stopServer := context.WithCancel(context.Background())
	defer stopServer()

	server := api.NewServer(serverCtx, cfg, api.RouterOptions{
		Logger:   log,
		Metrics:  m,
		Guard:    guard,
		Origins:  cfg.AllowedOrigins(),
		MediaDir: cfg.MediaBaseDir,
	}, api.Handlers{
		Health: health,
		Domains: []api.Registrar{
			auth.NewHandler(authService),
			account.NewHandler(accountService),
			category.NewHandler(categoryService),
			product.NewHandler(productService),
			banner.NewHandler(bannerService),
			media.NewHandler(storage),
		},
	})

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
