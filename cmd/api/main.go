// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Director's Cut HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (and .env).
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire email dispatch, services and HTTP handlers.
//  7. Run the HTTP server and the session janitor until a signal arrives.
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

	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"
	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/directorscut/internal/api"
	"github.com/taibuivan/directorscut/internal/core/genre"
	"github.com/taibuivan/directorscut/internal/core/movie"
	"github.com/taibuivan/directorscut/internal/notify/email"
	"github.com/taibuivan/directorscut/internal/platform/config"
	"github.com/taibuivan/directorscut/internal/platform/constants"
	"github.com/taibuivan/directorscut/internal/platform/migration"
	pgstore "github.com/taibuivan/directorscut/internal/platform/postgres"
	redisstore "github.com/taibuivan/directorscut/internal/platform/redis"
	"github.com/taibuivan/directorscut/internal/platform/sec"
	"github.com/taibuivan/directorscut/internal/users/account"
	"github.com/taibuivan/directorscut/internal/users/auth"
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
		slog.Bool("email_delivery", cfg.Email.ResendAPIKey != ""),
		slog.Bool("email_hook", cfg.Email.HookSecret != ""),
	)

	// Startup deadline so misconfiguration fails fast.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Security & Email ───────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	var sender email.Sender = email.NewLogSender(log)
	if cfg.Email.ResendAPIKey != "" {
		sender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.From)
	}
	dispatcher := email.NewDispatcher(
		email.NewRenderer(cfg.Email.AuthBaseURL, cfg.Email.ResetRedirectURL),
		sender,
		log,
	)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	links := auth.Links{SiteURL: cfg.Email.SiteURL, ResetRedirectURL: cfg.Email.ResetRedirectURL}
	userRepository := auth.NewUserRepository(pool)
	authService := auth.NewService(
		userRepository,
		userRepository,
		auth.NewSessionRepository(pool),
		auth.NewResetTokenRepository(rdb),
		auth.NewVerificationTokenRepository(rdb),
		jwtSvc,
		dispatcher,
		links,
		log,
	)

	accountService := account.NewService(
		account.NewAccountRepository(pool),
		account.NewSessionRepository(pool),
		log,
	)

	movieService := movie.NewService(movie.NewPostgresRepository(pool), cfg.MoviesFetchCooldown, log)
	genreService := genre.NewService(genre.NewPostgresRepository(pool), cfg.GenresFetchCooldown, log)

	liveness, readiness := api.NewHealthHandlers(log,
		api.HealthCheck{Name: "postgres", Check: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }},
		api.HealthCheck{Name: "redis", Check: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }},
	)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, links),
		Account:   account.NewHandler(accountService),
		Movie:     movie.NewHandler(movieService),
		Genre:     genre.NewHandler(genreService),
	}
	if cfg.Email.HookSecret != "" {
		webhook, err := standardwebhooks.NewWebhook(cfg.Email.HookSecret)
		must(log, err, "email hook secret")
		handlers.EmailHook = email.NewHookHandler(dispatcher, webhook, log)
	}

	// ── 8. Run ────────────────────────────────────────────────────────────
	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	server := api.NewServer(runCtx, cfg, log, jwtSvc, authService, handlers)

	group, groupCtx := errgroup.WithContext(runCtx)

	group.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		return authService.PruneSessions(groupCtx, constants.SessionPruneInterval)
	})

	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

		err := server.Shutdown(constants.ShutdownTimeout)

		// View increments are detached from requests; let them land before the pool closes.
		movieService.WaitViews()
		return err
	})

	if err := group.Wait(); err != nil {
		log.Error("server_stopped_with_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String(constants.FieldApp, constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
