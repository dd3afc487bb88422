package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rickgao/emoji-trader/internal/api"
	"github.com/rickgao/emoji-trader/internal/bootstrap"
	"github.com/rickgao/emoji-trader/internal/config"
	"github.com/rickgao/emoji-trader/internal/credentials"
	"github.com/rickgao/emoji-trader/internal/metrics"
	"github.com/rickgao/emoji-trader/internal/status"
	"github.com/rickgao/emoji-trader/internal/version"
)

func runTrader(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log, os.Stdout)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	logger.Info("starting trader", version.LogAttrs()...)
	logger.Info("configuration loaded",
		"config", configPath,
		"team_id", cfg.Team.ID,
		"api_url", cfg.API.BaseURL,
		"credentials_backend", cfg.Credentials.Backend,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = run(ctx, cfg, logger)
	switch {
	case err == nil:
		logger.Info("trader stopped")
	case exitCode(err) == exitInterrupted:
		logger.Info("interrupted before ready")
	}
	return err
}

// run bootstraps the team and, when enabled, serves status endpoints. It
// returns nil once ctx is cancelled after a successful bootstrap.
func run(ctx context.Context, cfg *config.TraderConfig, logger *slog.Logger) error {
	store, closeStore, err := credentials.Open(ctx, cfg.Credentials, logger)
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}
	defer closeStore()

	client := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(logger),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	seq := bootstrap.New(cfg.Team.ID, client, store,
		bootstrap.WithLogger(logger),
		bootstrap.WithMetrics(metrics.New(reg)),
	)

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Metrics.Enabled {
		router := status.NewRouter(status.NewHandler(seq), cfg.Metrics.Path, reg)
		srv := status.NewServer(cfg.Metrics.Port, router, logger)
		g.Go(func() error {
			return srv.Run(gctx)
		})
	}

	g.Go(func() error {
		if _, err := seq.Run(gctx); err != nil {
			return err
		}
		logger.Info("trader running, waiting for shutdown signal")
		<-gctx.Done()
		logger.Info("shutting down...")
		return nil
	})

	return g.Wait()
}
