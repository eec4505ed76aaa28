// @title        User Records API
// @version      1.0
// @description  Educational user CRUD service comparing body and query-string credential submission.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edu-crud/user-records-api/internal/api"
	"github.com/edu-crud/user-records-api/internal/core/service"
	"github.com/edu-crud/user-records-api/internal/infrastructure/db/postgres"
	"github.com/edu-crud/user-records-api/internal/pkg/config"
	"github.com/edu-crud/user-records-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := run(ctx); err != nil {
		stop()
		l := logger.Init(logger.Options{})
		l.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
	stop()
}

// run wires the service and blocks until ctx is cancelled or the listener
// fails. Every exit path closes the pool.
func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "user-records-api",
	})

	db, err := postgres.Connect(ctx, postgres.Config{
		DSN:             cfg.Postgres.DSN(),
		Timeout:         5 * time.Second,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres at %s: %w", cfg.Postgres.Host, err)
	}
	defer db.Close()
	log.Info().Str("host", cfg.Postgres.Host).Str("database", cfg.Postgres.Name).Msg("connected to postgres")

	if err := postgres.Migrate(db); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	repo := postgres.NewUserRepository(db)
	users := service.NewUserService(repo, log.With().Str("component", "user_service").Logger())

	router := api.NewRouter(api.Deps{
		Users:  users,
		DB:     db,
		Logger: log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		log.Info().Msgf("health check: http://localhost:%s/api/health", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}
	log.Info().Msg("bye")
	return nil
}
