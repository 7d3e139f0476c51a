package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/weather-obs-pipeline/internal/adapter/http"
	"github.com/couchcryptid/weather-obs-pipeline/internal/config"
	"github.com/couchcryptid/weather-obs-pipeline/internal/observability"
	"github.com/couchcryptid/weather-obs-pipeline/internal/pipeline"
	"github.com/couchcryptid/weather-obs-pipeline/internal/sink"
	"github.com/couchcryptid/weather-obs-pipeline/internal/source"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err := run(cfg, logger); err != nil {
		logger.Error("pipeline error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	metrics := observability.NewMetrics()

	src, err := buildSource(cfg, logger)
	if err != nil {
		return err
	}

	// The processed table goes to OUTPUT_PATH when set, stdout otherwise.
	// The summary report always goes to stdout.
	var tableOut io.Writer = os.Stdout
	if cfg.OutputPath != "" {
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		tableOut = f
	}

	p := pipeline.New(src, sink.New(tableOut, os.Stdout), logger, metrics, cfg.RollingWindow, cfg.AnomalySigma)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Without an HTTP address this is a one-shot batch job.
	if cfg.HTTPAddr == "" {
		_, _, err := p.Run(ctx)
		return err
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if _, _, err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

func buildSource(cfg *config.Config, logger *slog.Logger) (pipeline.Source, error) {
	switch cfg.Source {
	case "file":
		return source.NewFile(cfg.InputPath, logger), nil
	case "openmeteo":
		live, err := source.NewOpenMeteo(cfg.MockCities, cfg.FetchTimeout, logger)
		if err != nil {
			return nil, err
		}
		mock := source.NewMock(cfg.MockCities, cfg.MockSeed, nil, logger)
		return source.WithFallback(live, mock, logger), nil
	default:
		return source.NewMock(cfg.MockCities, cfg.MockSeed, nil, logger), nil
	}
}
