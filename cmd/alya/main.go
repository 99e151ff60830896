package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alya-io/alya/internal/config"
	"github.com/alya-io/alya/internal/logger"
	"github.com/alya-io/alya/internal/observability"
	"github.com/alya-io/alya/internal/server"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Bootstrap logger for failures before the configured logger exists.
	boot := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// The .env file is optional; real environments set variables directly.
	envFileLoaded := godotenv.Load() == nil

	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("could not load settings")
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		boot.Fatal().Err(err).Msg("could not build logger")
	}

	if !envFileLoaded {
		log.Debug().Msg("no .env file found, using process environment")
	}

	apm, err := observability.NewApplication(cfg.Observability)
	if err != nil {
		log.Fatal().Err(err).Msg("could not start observability agent")
	}

	srv := server.New(cfg, log, server.Options{
		Telemetry: apm,
		Hooks: server.Hooks{
			OnStart: func(context.Context) {
				log.Info().
					Str("env", cfg.Env).
					Str("addr", cfg.Addr()).
					Int("workers", cfg.Workers).
					Bool("development", cfg.IsDevelopment()).
					Msg("starting " + cfg.ProjectName)
			},
			OnStop: func(context.Context) {
				log.Info().Msg("server stopped")
			},
		},
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
		os.Exit(1)
	}
}
