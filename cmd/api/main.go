package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-admin/internal/config"
	accountHandler "github.com/jwalitptl/clinic-admin/internal/handler/account"
	appointmentHandler "github.com/jwalitptl/clinic-admin/internal/handler/appointment"
	authHandler "github.com/jwalitptl/clinic-admin/internal/handler/auth"
	doctorHandler "github.com/jwalitptl/clinic-admin/internal/handler/doctor"
	"github.com/jwalitptl/clinic-admin/internal/handler/health"
	invoiceHandler "github.com/jwalitptl/clinic-admin/internal/handler/invoice"
	itemHandler "github.com/jwalitptl/clinic-admin/internal/handler/item"
	patientHandler "github.com/jwalitptl/clinic-admin/internal/handler/patient"
	prescriptionHandler "github.com/jwalitptl/clinic-admin/internal/handler/prescription"
	promHandler "github.com/jwalitptl/clinic-admin/internal/handler/prometheus"
	"github.com/jwalitptl/clinic-admin/internal/middleware"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/internal/router"
	accountService "github.com/jwalitptl/clinic-admin/internal/service/account"
	appointmentService "github.com/jwalitptl/clinic-admin/internal/service/appointment"
	billingService "github.com/jwalitptl/clinic-admin/internal/service/billing"
	doctorService "github.com/jwalitptl/clinic-admin/internal/service/doctor"
	eventService "github.com/jwalitptl/clinic-admin/internal/service/event"
	invoiceService "github.com/jwalitptl/clinic-admin/internal/service/invoice"
	patientService "github.com/jwalitptl/clinic-admin/internal/service/patient"
	prescriptionService "github.com/jwalitptl/clinic-admin/internal/service/prescription"
	"github.com/jwalitptl/clinic-admin/internal/store"
	"github.com/jwalitptl/clinic-admin/pkg/logger"
	"github.com/jwalitptl/clinic-admin/pkg/messaging/redis"
	"github.com/jwalitptl/clinic-admin/pkg/metrics"
	outboxRepository "github.com/jwalitptl/clinic-admin/pkg/repository"
	"github.com/jwalitptl/clinic-admin/pkg/security"
	"github.com/jwalitptl/clinic-admin/pkg/worker"
)

const metricsNamespace = "clinic"

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize logger
	appLogger := logger.NewLogger(&logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Output: os.Stdout,
		JSON:   cfg.Log.JSON,
	})
	log.Logger = appLogger.ZL

	loc, err := cfg.Clinic.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid clinic timezone")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(metricsNamespace, registry)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize storage
	backend, closer, err := store.Open(ctx, cfg.Storage.ToStoreOptions())
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("failed to open store")
	}
	defer closer.Close()
	backend = store.Instrumented(backend, appMetrics)

	repos := repository.New(backend, cfg.Storage.ToRepositoryOptions())

	hasher, err := security.NewPasswordHasher(cfg.Auth.PasswordHashing, cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid password hashing configuration")
	}

	// Events land in the outbox only when a publisher will drain it
	events := eventService.Noop()
	if cfg.Events.Enabled {
		events = eventService.NewEventService(repos.Outbox)
	}

	// Initialize services
	accountSvc := accountService.NewService(repos.Accounts, hasher, events)
	patientSvc := patientService.NewService(repos.Patients, repos.Prescriptions, events)
	doctorSvc := doctorService.NewService(repos.Doctors, events, loc)
	appointmentSvc := appointmentService.NewService(repos.Appointments, events, loc)
	prescriptionSvc := prescriptionService.NewService(repos.Prescriptions, events)
	itemSvc := billingService.NewService(repos.Items, events)
	invoiceSvc := invoiceService.NewService(repos.Invoices, repos.Items, events, loc)

	// Initialize handlers
	prom := promHandler.New(metricsNamespace, registry)
	healthH := health.NewHandler(backend, prom.Handler())

	routerConfig := router.RouterConfig{
		RequestTimeout: cfg.Server.RequestTimeout,
		RequireAuth:    cfg.Server.RequireAuth,
		CORSConfig: middleware.CORSConfig{
			AllowOrigins: cfg.Server.CORS.AllowedOrigins,
			AllowMethods: cfg.Server.CORS.AllowedMethods,
			AllowHeaders: cfg.Server.CORS.AllowedHeaders,
		},
		SizeLimit: middleware.DefaultSizeLimitConfig(),
		Metrics:   prom.Middleware(),
	}
	if cfg.Server.RateLimit.Enabled {
		routerConfig.RateLimit = &middleware.RateLimiterConfig{
			RPS:   cfg.Server.RateLimit.RequestsPerSecond,
			Burst: cfg.Server.RateLimit.Burst,
		}
	}

	r := router.NewRouter(
		middleware.NewAuthMiddleware(accountSvc),
		healthH,
		authHandler.NewHandler(accountSvc),
		[]router.Handler{
			accountHandler.NewHandler(accountSvc),
			patientHandler.NewHandler(patientSvc),
			doctorHandler.NewHandler(doctorSvc, loc),
			appointmentHandler.NewHandler(appointmentSvc, loc),
			prescriptionHandler.NewHandler(prescriptionSvc),
			itemHandler.NewHandler(itemSvc),
			invoiceHandler.NewHandler(invoiceSvc, loc),
		},
		routerConfig,
	)

	// Start the outbox publisher
	if cfg.Events.Enabled {
		broker, err := redis.NewRedisBroker(ctx, cfg.Events.Redis.ToBrokerConfig(), log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer broker.Close()

		outboxRepo := outboxRepository.NewOutboxRepository(repos.Outbox)
		processor := worker.NewOutboxProcessor(outboxRepo, broker, cfg.Events.ToWorkerConfig(), appLogger, appMetrics)
		cleanup := worker.NewOutboxCleanupWorker(outboxRepo, cfg.Events.Outbox.Retention, cfg.Events.Outbox.CleanupInterval, appLogger, appMetrics)
		go processor.Start(ctx)
		go cleanup.Start(ctx)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("storage", cfg.Storage.Driver).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
