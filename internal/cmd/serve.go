package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	httpadapter "github.com/jsamuelsen/pencil-api/internal/adapters/http"
	"github.com/jsamuelsen/pencil-api/internal/adapters/http/handlers"
	"github.com/jsamuelsen/pencil-api/internal/platform/logging"
	"github.com/jsamuelsen/pencil-api/internal/platform/telemetry"
)

func newServeCmd(opts *Options, build handlers.BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the data files and serve the HTTP API",
		Long: `Load quotes, users and collections from the data directory and
serve the HTTP API until SIGINT or SIGTERM.

A missing quotes file or any undecodable data file stops startup.
Run "pencil init" to create empty data files.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), opts, build)
		},
	}
}

func serve(ctx context.Context, opts *Options, build handlers.BuildInfo) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg)
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", build.Version),
		slog.String("commit", build.Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("data_dir", cfg.Storage.DataDir),
	)

	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	application, err := NewApplication(ctx, cfg, prometheus.DefaultRegisterer, logger)
	if err != nil {
		return err
	}

	if dangling := application.Store.DanglingReferences(ctx); len(dangling) > 0 {
		logger.Warn("data files hold dangling references; run pencil check",
			slog.Int("count", len(dangling)))
	}

	server := httpadapter.New(&cfg.Server, logger)
	application.Routes(server.Engine(), build)

	serverErr, err := server.Start()
	if err != nil {
		return err
	}

	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *httpadapter.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}

		return nil

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))

	case <-ctx.Done():
		logger.Info("context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// In-flight writes finish their saves before Shutdown returns.
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
