package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/smilecare/clinic-api/config"
	"github.com/smilecare/clinic-api/internal/email"
	"github.com/smilecare/clinic-api/internal/repository/postgres"
	internalworker "github.com/smilecare/clinic-api/internal/worker"
	"github.com/smilecare/clinic-api/pkg/logger"
	"github.com/smilecare/clinic-api/pkg/messaging/redis"
	"github.com/smilecare/clinic-api/pkg/metrics"
	"github.com/smilecare/clinic-api/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewRedisBroker(cfg.Redis.ToBrokerConfig(), appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Redis broker")
	}
	defer broker.Close()

	base := postgres.NewBaseRepository(db)
	outboxRepo := postgres.NewOutboxRepository(base)
	auditRepo := postgres.NewAuditRepository(base)
	queueRepo := postgres.NewQueueRepository(base)
	patientRepo := postgres.NewPatientRepository(base)

	workerMetrics := metrics.NewMetrics("clinic", "worker")

	processor := worker.NewOutboxProcessor(
		outboxRepo,
		broker,
		cfg.Outbox.ToWorkerConfig(),
		appLogger,
		workerMetrics,
	)

	emailSvc := email.NewSMTPService(cfg.Email, appLogger)
	reminders := internalworker.NewReminderWorker(
		queueRepo,
		patientRepo,
		emailSvc,
		cfg.Worker.ReminderInterval,
		cfg.Worker.ReminderWindow,
		appLogger,
		workerMetrics,
	)

	auditCleanup := internalworker.NewAuditCleanupWorker(
		auditRepo,
		cfg.Worker.AuditRetentionDays,
		cfg.Worker.AuditCleanupInterval,
		appLogger,
	)

	setupHealthCheck(appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		appLogger.Info("Shutting down...")
		cancel()
	}()

	go reminders.Start(ctx)
	go auditCleanup.Start(ctx)
	processor.Start(ctx)
}

func setupHealthCheck(logger *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := http.ListenAndServe(":8081", mux); err != nil {
			logger.Error(err, "health check server failed")
			os.Exit(1)
		}
	}()
}
