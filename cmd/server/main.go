package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/refactor-group/coaching-platform/internal/api"
	"github.com/refactor-group/coaching-platform/internal/infrastructure/config"
	"github.com/refactor-group/coaching-platform/internal/infrastructure/db/postgres"
	"github.com/refactor-group/coaching-platform/internal/infrastructure/db/redis"
	"github.com/refactor-group/coaching-platform/pkg/logger"
)

// @title           Coaching Platform API
// @version         0.0.1
// @description     Session-authenticated API for coaching organizations, relationships, sessions, goals and session artifacts.
// @BasePath        /
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	pool, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() { _ = rdb.Close() }()

	e, sessions := api.NewRouter(cfg, pool, rdb, log)

	// Expired sessions are swept in the background for as long as the
	// process runs; redis TTLs remain as a safety net.
	go sessions.RunReaper(ctx, cfg.Session.ReapInterval)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("coaching platform started")

	<-ctx.Done() // wait for Ctrl+C

	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("graceful shutdown failed")
	}

	log.Info().Msg("coaching platform stopped cleanly")
}
