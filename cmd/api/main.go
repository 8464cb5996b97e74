package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GoSim-25-26J-441/portfolio-backend/config"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/logging"
)

const serviceName = "portfolio-backend"

func main() {
	logger := logging.L()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config")
	}

	logging.Init(cfg.App.LogLevel, cfg.App.LogFormat)
	logger = logging.L()
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("driver", cfg.Database.Driver).Str("db", cfg.Database.Name).Msg("connecting to storage")
	store, err := bootstrap.OpenStore(ctx, cfg, bootstrap.StoreOptions{})
	if err != nil {
		logger.Fatal().Err(err).Msg("storage client")
	}
	bootstrap.VerifyStore(ctx, store, bootstrap.StoreOptions{})

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		Store:          store,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		EnableMessages: cfg.Server.EnableMessages,
		NotFoundStatus: cfg.Server.NotFoundStatus,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Msgf("server running on port http://localhost:%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("storage close")
	}
}
