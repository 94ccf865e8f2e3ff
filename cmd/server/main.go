// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andresuchdata/streamtape-gateway/internal/api"
	"github.com/andresuchdata/streamtape-gateway/internal/config"
	"github.com/andresuchdata/streamtape-gateway/internal/metrics"
	"github.com/andresuchdata/streamtape-gateway/internal/service"
	"github.com/andresuchdata/streamtape-gateway/internal/streamtape"
	"github.com/andresuchdata/streamtape-gateway/pkg/logger"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	logger.Configure(cfg.Log.Level, cfg.Log.Format)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	// The gateway owns the outbound connection pool for the whole process.
	gateway, err := streamtape.NewClient(cfg.Streamtape, m)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize Streamtape client")
	}

	router := api.NewRouter(service.New(gateway), m, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Log.Info().
			Str("port", cfg.Server.Port).
			Str("upstream", cfg.Streamtape.BaseURL).
			Dur("upstream_timeout", cfg.Streamtape.Timeout).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		// Wait for interrupt signal (or a failed listener) to gracefully shut down the server
		<-gctx.Done()
		logger.Log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()

		// In-flight requests drain before the gateway's pool is released.
		err := srv.Shutdown(shutdownCtx)
		gateway.Close()
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Log.Error().Err(err).Msg("Server stopped with error")
		os.Exit(1)
	}

	logger.Log.Info().Msg("Server exiting")
}
