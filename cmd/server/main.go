package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/moviedeck/boxoffice/internal/config"
	httpserver "github.com/moviedeck/boxoffice/internal/http"
	"github.com/moviedeck/boxoffice/internal/imdb"
	"github.com/moviedeck/boxoffice/internal/logging"
	"github.com/moviedeck/boxoffice/internal/metrics"
	"github.com/moviedeck/boxoffice/internal/views"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := logging.New(cfg.LogPath, cfg.Debug)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := imdb.NewHTTPClient(
		cfg.IMDBAPIURL,
		cfg.IMDBAPIHost,
		cfg.IMDBAPIKey,
		time.Duration(cfg.IMDBTimeoutSecs)*time.Second,
		logger,
	)
	if err != nil {
		logger.Fatal("init imdb client", zap.Error(err))
	}

	reg := metrics.NewRegistry()
	engine := views.New(client, reg, logger)
	server := httpserver.New(cfg, engine, reg, logger)

	logger.Info("server starting", zap.String("port", cfg.Port))

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
			logger.Error("server error", zap.Error(err))
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("graceful shutdown error", zap.Error(err))
	}
}
