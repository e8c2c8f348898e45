package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/qna-service/internal/api"
	"github.com/dom/qna-service/internal/auth"
	"github.com/dom/qna-service/internal/metrics"
	"github.com/dom/qna-service/internal/repository"
	"github.com/dom/qna-service/internal/repository/memory"
	"github.com/dom/qna-service/internal/repository/postgres"
	"github.com/dom/qna-service/internal/service"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

type serveOptions struct {
	memory      bool
	skipMigrate bool
}

func NewServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.memory, "memory", false, "keep data in memory instead of PostgreSQL")
	cmd.Flags().BoolVar(&opts.skipMigrate, "skip-migrate", false, "do not migrate the schema on startup")

	return cmd
}

func runServe(cmd *cobra.Command, opts serveOptions) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	keys, err := cfg.Keyring()
	if err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}

	// Initialize repositories
	var repos *repository.Repositories
	if opts.memory {
		log.Warn("using in-memory storage, data is lost on exit")
		repos = memory.NewRepositories()
	} else {
		db, err := postgres.NewConnection(cfg.DatabaseURL, cfg.DBMaxConns, log)
		if err != nil {
			return oops.Code("DB_CONNECT_FAILED").Wrap(err)
		}
		if !opts.skipMigrate {
			if err := postgres.Migrate(db); err != nil {
				return oops.Code("MIGRATION_FAILED").Wrap(err)
			}
		}
		repos = postgres.NewRepositories(db, log)
	}

	m := metrics.New()
	services := service.NewServices(repos, auth.NewTokenCodec(keys), cfg, m, log)
	router := api.NewRouter(services, m, log, cfg)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return oops.Code("SERVER_FAILED").Wrap(err)
	case <-quit:
	}

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return oops.Code("SHUTDOWN_FAILED").Wrap(err)
	}

	log.Info("server stopped")
	return nil
}
