package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	server "accountsapi/internal/adapter/http"
	"accountsapi/internal/adapter/http/routes"
	"accountsapi/internal/adapter/logging"
	"accountsapi/internal/adapter/telemetry"
	"accountsapi/pkg/config"
)

const serviceVersion = "1.0.0"

func newServeCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the metrics server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configFile)
		},
	}
}

func runServe(ctx context.Context, configFile string) error {
	cfg, err := config.Load(configFile)

	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{
		ServiceName: cfg.ServiceName,
		Level:       cfg.Logging.Level,
		LokiURL:     cfg.Logging.LokiURL,
	})

	if err != nil {
		return err
	}

	defer logger.Sync()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.NewContainer(ctx, telemetry.Config{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: serviceVersion,
		Environment:    cfg.Environment,
		MetricsPort:    cfg.Telemetry.MetricsPort,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
	}, logger.Zap())

	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Error("Telemetry shutdown failed", zap.Error(err))
		}
	}()

	probe := tel.NewTelemetryProbe(logger.Zap())

	store, err := newStorage(cfg.Database, probe, tel.AppMetrics, logger.Zap())

	if err != nil {
		return err
	}

	defer store.Close()

	container := server.NewContainer(store.Users, store.Pinger, probe, tel.AppMetrics, logger.Zap())

	gin.SetMode(cfg.Server.GinMode)

	router := routes.SetupRouter(routes.HandlersConfig{
		RegistrationHandler: container.RegistrationHandler,
		HealthHandler:       container.HealthHandler,
	}, tel.AppMetrics, logger.Logger, cfg.ServiceName)

	logger.Info("Starting",
		zap.String("environment", cfg.Environment),
		zap.String("driver", cfg.Database.Driver),
		zap.String("port", cfg.Server.Port),
	)

	g, ctx := errgroup.WithContext(ctx)

	tel.AppMetrics.StartSystemMetrics(ctx)

	g.Go(func() error {
		return server.Serve(ctx, server.NewServer(cfg.Server.Port, router), logger.Zap())
	})

	g.Go(func() error {
		return server.Serve(ctx, tel.MetricsServer, logger.Zap())
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return err
	}

	logger.Info("Shut down gracefully")

	return nil
}
