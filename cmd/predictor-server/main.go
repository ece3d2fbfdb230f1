// cmd/predictor-server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"career-predictor/internal/api"
	"career-predictor/internal/artifacts"
	"career-predictor/internal/common/config"
	"career-predictor/internal/common/logger"
	"career-predictor/internal/common/observability"
	"career-predictor/internal/predictor"
	"career-predictor/pkg/registry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting predictor server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.Tracing.ServiceName, cfg.Tracing.JaegerEndpoint)
	defer obs.Shutdown()

	reg, err := registry.LoadRegistry(cfg.Model.SchemaRegistryPath)
	if err != nil {
		zapLog.Fatal("schema registry load failed", zap.Error(err))
	}

	bundle, err := loadBundle(cfg, log)
	if err != nil {
		zapLog.Fatal("model bundle load failed", zap.Error(err))
	}

	svc := predictor.NewService(reg, bundle, cfg.Model.ExpectedSklearnVersion, log, obs)
	if h := svc.Health(); !h.VersionMatch {
		zapLog.Warn("artifacts were produced by a different sklearn version",
			zap.String("recorded", h.SklearnVersion),
			zap.String("expected", h.ExpectedSklearnVersion),
		)
	}

	handler := api.NewHandler(svc, log, cfg.Server.TracebackEnabled(cfg.App.Environment))
	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      api.NewRouter(cfg.Server, handler, log),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error during HTTP server shutdown", zap.Error(err))
	}

	zapLog.Info("Predictor server stopped gracefully")
}

// loadBundle fetches the four artifacts once. The source's clients are only
// needed during the load.
func loadBundle(cfg *config.Config, log logger.Logger) (*artifacts.Bundle, error) {
	source, closeSource, err := artifacts.OpenSource(cfg)
	if err != nil {
		return nil, err
	}
	defer closeSource()

	ctx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Model.Artifacts.Timeout))
	defer cancel()

	return artifacts.NewLoader(source, cfg.Model.Artifacts.Names, log).Load(ctx)
}
