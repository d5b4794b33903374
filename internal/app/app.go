// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/YaganovValera/todo-auth/internal/config"
	"github.com/YaganovValera/todo-auth/internal/jwt"
	"github.com/YaganovValera/todo-auth/internal/linkedin"
	"github.com/YaganovValera/todo-auth/internal/storage/postgres"
	transport "github.com/YaganovValera/todo-auth/internal/transport/http"
	"github.com/YaganovValera/todo-auth/internal/usecase"
	"github.com/YaganovValera/todo-auth/pkg/httpserver"
	"github.com/YaganovValera/todo-auth/pkg/logger"
	"github.com/YaganovValera/todo-auth/pkg/telemetry"
)

func Run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	// === Telemetry ===
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Telemetry, log)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer shutdownSafe(ctx, "telemetry", shutdownTracer, log)

	// === PostgreSQL ===
	if err := postgres.ApplyMigrations(cfg.Postgres, log); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	db, err := postgres.Connect(cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("postgres connect: %w", err)
	}
	defer db.Close()

	// === JWT Signer ===
	signer, err := jwt.NewHS256(cfg.JWT)
	if err != nil {
		return fmt.Errorf("jwt signer: %w", err)
	}

	// === Repositories ===
	userRepo := postgres.NewUserRepo(db)
	tokenRepo := postgres.NewTokenRepo(db)

	if cfg.DevMode() {
		if err := postgres.Seed(ctx, userRepo, log); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}

	// === LinkedIn client ===
	liClient := linkedin.NewClient(cfg.LinkedIn, &http.Client{Timeout: 10 * time.Second}, log)

	// === Usecases ===
	accessTTL := cfg.JWT.AccessTTL()
	refreshTTL := cfg.Refresh.TTL()
	auth := usecase.NewHandler(
		usecase.NewLoginHandler(userRepo, tokenRepo, signer, accessTTL, refreshTTL, log),
		usecase.NewRefreshHandler(tokenRepo, signer, accessTTL, refreshTTL, log),
		usecase.NewLogoutHandler(tokenRepo, log),
		usecase.NewLinkedInHandler(userRepo, signer, liClient, cfg.LinkedIn, cfg.DevMode(), accessTTL, log),
	)

	// === HTTP server (auth API + healthz, readyz, metrics) ===
	routes := transport.Routes(transport.NewHandler(auth), transport.NewMiddleware(signer))
	readiness := func() error {
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return db.Ping(ctxPing)
	}
	httpSrv, err := httpserver.New(cfg.HTTP, readiness, log,
		map[string]http.Handler{"/api/auth/": routes},
		httpserver.RecoverMiddleware,
		httpserver.CORSMiddleware(),
		httpserver.RequestIDMiddleware(),
		httpserver.MetricsMiddleware(),
	)
	if err != nil {
		return fmt.Errorf("httpserver init: %w", err)
	}

	log.WithContext(ctx).Info("auth: starting server")
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return httpSrv.Run(ctx) })

	if err := g.Wait(); err != nil {
		if ctx.Err() == context.Canceled {
			log.WithContext(ctx).Info("auth shut down cleanly")
			return nil
		}
		log.WithContext(ctx).Error("auth exited with error", zap.Error(err))
		return err
	}

	log.WithContext(ctx).Info("auth shut down complete")
	return nil
}

func shutdownSafe(ctx context.Context, name string, fn func(context.Context) error, log *logger.Logger) {
	log.WithContext(ctx).Info(name + ": shutting down")
	if err := fn(ctx); err != nil {
		log.WithContext(ctx).Error(name+" shutdown failed", zap.Error(err))
	} else {
		log.WithContext(ctx).Info(name + ": shutdown complete")
	}
}
