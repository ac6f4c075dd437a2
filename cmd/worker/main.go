package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-admin/internal/config"
	"github.com/jwalitptl/clinic-admin/pkg/logger"
	"github.com/jwalitptl/clinic-admin/pkg/messaging"
	"github.com/jwalitptl/clinic-admin/pkg/messaging/redis"
)

// The worker subscribes to the clinic event channel and logs every event the
// API's outbox publisher sends. It never touches the clinic store.

func setupHealthCheck(appLogger *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := http.ListenAndServe(":8081", mux); err != nil {
			appLogger.ZL.Error().Err(err).Msg("Health check server failed")
			os.Exit(1)
		}
	}()
}

func handleEvent(appLogger *logger.Logger) messaging.EventHandler {
	return func(_ context.Context, msg messaging.Message) error {
		appLogger.ZL.Info().
			Str("event_id", msg.ID).
			Str("event_type", msg.Type).
			Time("occurred_at", msg.OccurredAt).
			RawJSON("payload", msg.Payload).
			Msg("Clinic event received")
		return nil
	}
}

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	// Initialize logger
	appLogger := logger.NewLogger(&logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Output: os.Stdout,
		JSON:   cfg.Log.JSON,
	})
	log.Logger = appLogger.ZL

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize Redis broker
	broker, err := redis.NewRedisBroker(ctx, cfg.Events.Redis.ToBrokerConfig(), appLogger.ZL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Redis broker")
	}
	subscriber := messaging.NewEventSubscriber(broker)
	defer subscriber.Close()

	channel := cfg.Events.Channel
	if channel == "" {
		channel = messaging.EventsChannel
	}
	done, err := subscriber.Subscribe(ctx, channel, handleEvent(appLogger))
	if err != nil {
		log.Fatal().Err(err).Str("channel", channel).Msg("Failed to subscribe")
	}

	// Setup health check endpoints
	setupHealthCheck(appLogger)
	appLogger.ZL.Info().Str("channel", channel).Msg("Worker started")

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigChan:
		appLogger.ZL.Info().Msg("Shutting down...")
	case <-done:
		appLogger.ZL.Warn().Msg("Subscription closed, exiting")
	}
}
