package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("component", "server").Logger()

	// Load .env variables
	if err := godotenv.Load(); err != nil {
		logger.Info().Msg(".env file not found, using system environment variables")
	}

	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := InitDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}

	tasks := NewTaskGroup()
	notifier := NewNotifier(cfg)
	h := NewHandler(db, cfg, notifier, tasks)

	gin.SetMode(gin.ReleaseMode)
	r := SetupRouter(h, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()
	logger.Info().Str("port", cfg.Server.Port).Msg("server started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}

	// A notification fired during a request must settle before the process
	// exits.
	if !tasks.Wait(30 * time.Second) {
		logger.Warn().Msg("background tasks did not drain before timeout")
	}
}
