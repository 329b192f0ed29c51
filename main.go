package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/exercise-tracker-be/internal/api"
	"github.com/isdelr/exercise-tracker-be/internal/config"
	"github.com/isdelr/exercise-tracker-be/internal/logger"
	"github.com/isdelr/exercise-tracker-be/internal/monitoring"
	"github.com/isdelr/exercise-tracker-be/internal/services"
	"github.com/isdelr/exercise-tracker-be/internal/store"
	"github.com/isdelr/exercise-tracker-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// Set up storage
	st, err := store.New(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StorageBackend).Msg("Failed to initialize store")
	}
	defer st.Close()

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	userService := services.NewUserService(st)
	exerciseService := services.NewExerciseService(st, hub)
	logService := services.NewLogService(st)

	// Set up and run the background maintenance job
	var maintenance *monitoring.Maintenance
	if target, ok := st.(store.Maintainer); ok && cfg.MaintenanceCron != "" {
		maintenance, err = monitoring.NewMaintenance(target, cfg.MaintenanceCron)
		if err != nil {
			log.Fatal().Err(err).Str("cron", cfg.MaintenanceCron).Msg("Invalid maintenance schedule")
		}
		go maintenance.Run()
	}

	// Set up router
	router := api.NewRouter(cfg, hub, st, userService, exerciseService, logService)

	// Set up server. No WriteTimeout: it would cut long-lived websocket streams.
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("backend", cfg.StorageBackend).Msg("Your app is listening")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	if maintenance != nil {
		maintenance.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	hub.Stop()

	log.Info().Msg("Server exiting")
}
