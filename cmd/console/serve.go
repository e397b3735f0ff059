package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/hospital-console/internal/backend"
	"github.com/jwalitptl/hospital-console/internal/config"
	"github.com/jwalitptl/hospital-console/internal/handler/health"
	"github.com/jwalitptl/hospital-console/internal/repository"
	"github.com/jwalitptl/hospital-console/internal/router"
	"github.com/jwalitptl/hospital-console/internal/screen"
	"github.com/jwalitptl/hospital-console/internal/session"
	"github.com/jwalitptl/hospital-console/internal/workspace"
	"github.com/jwalitptl/hospital-console/pkg/logger"
	"github.com/jwalitptl/hospital-console/pkg/metrics"
)

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the console web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	m := metrics.New("console", prometheus.DefaultRegisterer)

	client, err := backend.NewClient(cfg.Backend, m)
	if err != nil {
		return err
	}

	profiles, err := session.NewProfileStore(ctx, cfg.Session)
	if err != nil {
		return fmt.Errorf("failed to open profile store: %w", err)
	}
	if c, ok := profiles.(io.Closer); ok {
		defer c.Close()
	}

	checks := map[string]health.Check{"backend": client.Ping}
	if p, ok := profiles.(interface{ Ping(context.Context) error }); ok {
		checks["profiles"] = p.Ping
	}

	workspaces := workspace.New(workspace.Config{
		IdleTTL: cfg.Session.WorkspaceTTL,
		Max:     cfg.Session.MaxWorkspaces,
	}, func(token string) *screen.Set {
		return screen.NewSet(screen.Deps{
			Users:  client,
			Tokens: repository.StaticToken(token),
			Seed:   cfg.SeedDemoData,
		})
	}, m.ActiveWorkspaces)

	engine, err := router.New(router.Deps{
		Config:     cfg,
		Metrics:    m,
		Gatherer:   prometheus.DefaultGatherer,
		Sessions:   session.NewStore(cfg.Session, profiles),
		Workspaces: workspaces,
		Auth:       client,
		Backend:    client.BaseURL(),
		Checks:     checks,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	log.Info().Str("addr", srv.Addr).Str("backend", client.BaseURL().String()).Msg("console listening")
	return run(ctx, srv)
}

// run serves until ctx is done, then shuts down gracefully.
func run(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info().Msg("server exited properly")
	return nil
}
