package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/dentalops/dental-admin-api/internal/repository/postgres"
	"github.com/dentalops/dental-admin-api/pkg/logger"
	"github.com/dentalops/dental-admin-api/pkg/messaging/redis"
	"github.com/dentalops/dental-admin-api/pkg/metrics"
	"github.com/dentalops/dental-admin-api/pkg/worker"
)

// workerConfig is read from the environment; the worker runs in
// containers where a config file is not mounted.
type workerConfig struct {
	DatabaseURL   string        `envconfig:"DATABASE_URL" required:"true"`
	RedisURL      string        `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	HealthAddr    string        `envconfig:"HEALTH_ADDR" default:":8081"`
	BatchSize     int           `envconfig:"OUTBOX_BATCH_SIZE" default:"100"`
	PollInterval  time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"5s"`
	RetryAttempts int           `envconfig:"OUTBOX_RETRY_ATTEMPTS" default:"3"`
	RetryDelay    time.Duration `envconfig:"OUTBOX_RETRY_DELAY" default:"1s"`
	CleanupAfter  time.Duration `envconfig:"OUTBOX_CLEANUP_AFTER" default:"168h"`
}

func main() {
	var cfg workerConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to load worker config")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:      logger.InfoLevel,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		appLogger.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewRedisBroker(redis.Config{URL: cfg.RedisURL}, appLogger.Zerolog())
	if err != nil {
		appLogger.Fatal(err, "Failed to create Redis broker")
	}
	defer broker.Close()

	baseRepo := postgres.NewBaseRepository(db)
	outboxRepo := postgres.NewOutboxRepository(baseRepo)

	processor := worker.NewOutboxProcessor(
		outboxRepo,
		broker,
		worker.OutboxProcessorConfig{
			BatchSize:     cfg.BatchSize,
			PollInterval:  cfg.PollInterval,
			RetryAttempts: cfg.RetryAttempts,
			RetryDelay:    cfg.RetryDelay,
		},
		appLogger,
		metrics.NewMetrics("dental_admin", "worker"),
	)

	setupHealthCheck(cfg.HealthAddr, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Info("Shutting down worker")
		cancel()
	}()

	go cleanupLoop(ctx, outboxRepo, cfg.CleanupAfter, appLogger)

	processor.Start(ctx)
}

func setupHealthCheck(addr string, appLogger *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			appLogger.Fatal(err, "Health check server failed")
		}
	}()
}

// cleanupLoop removes processed events past the retention window once
// an hour.
func cleanupLoop(ctx context.Context, repo interface {
	DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
}, retention time.Duration, appLogger *logger.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := repo.DeleteProcessedBefore(ctx, time.Now().Add(-retention))
			if err != nil {
				appLogger.Error(err, "Failed to clean up processed events")
				continue
			}
			if deleted > 0 {
				appLogger.Info("Cleaned up processed events", "deleted", deleted)
			}
		}
	}
}
