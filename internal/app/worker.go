package app

import (
	"context"
	"fmt"
	"log/slog"

	"contact-service/common/telemetry"
	"contact-service/internal/config"
	"contact-service/internal/notify"

	"github.com/redis/go-redis/v9"
)

// Worker consumes submission events and sends owner notifications.
type Worker struct {
	consumer  Consumer
	redis     *redis.Client
	telemetry *telemetry.Telemetry
	logger    *slog.Logger
}

func NewWorker(ctx context.Context) (*Worker, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := newLogger(cfg, NotifierName)
	log.Info("initializing notifier", "env", cfg.Env, "transport", cfg.Events.Transport)

	tel, appMetrics, err := initTelemetry(ctx, cfg, NotifierName, log)
	if err != nil {
		return nil, err
	}

	w := &Worker{telemetry: tel, logger: log}

	var limiter notify.Limiter
	if cfg.Notify.DailyLimit > 0 && cfg.Redis.Addr != "" {
		w.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := w.redis.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, daily limit checks will fail open", "addr", cfg.Redis.Addr, "error", err)
		}
		limiter = notify.NewRedisLimiter(w.redis, cfg.Notify.DailyLimit)
		log.Info("daily notification limit enabled", "limit", cfg.Notify.DailyLimit)
	}

	mailer := notify.NewSMTPMailer(notify.SMTPConfig{
		Host:       cfg.SMTP.Host,
		Port:       cfg.SMTP.Port,
		Username:   cfg.SMTP.Username,
		Password:   cfg.SMTP.Password,
		Timeout:    cfg.SMTP.Timeout(),
		RequireTLS: cfg.SMTP.RequireTLS,
	})

	notifier, err := notify.NewNotifier(mailer, limiter, notify.Config{
		Recipient: cfg.Notify.Recipient,
		Sender:    cfg.Notify.Sender,
	}, log, appMetrics)
	if err != nil {
		w.closeRedis()
		shutdownTelemetry(ctx, tel, log)
		return nil, err
	}

	consumer, err := NewConsumer(cfg.Events, notifier, log, tel.Metrics)
	if err != nil {
		w.closeRedis()
		shutdownTelemetry(ctx, tel, log)
		return nil, fmt.Errorf("failed to initialize consumer: %w", err)
	}
	w.consumer = consumer

	return w, nil
}

// Run blocks until ctx is cancelled or the consumer fails.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("notifier started")
	return w.consumer.Start(ctx)
}

func (w *Worker) Close(ctx context.Context) error {
	err := w.consumer.Close()
	w.closeRedis()
	if terr := w.telemetry.Shutdown(ctx, w.logger); terr != nil {
		w.logger.Warn("failed to shutdown telemetry", "error", terr)
	}
	return err
}

func (w *Worker) closeRedis() {
	if w.redis != nil {
		w.redis.Close()
	}
}
