package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"contact-service/common/logger"
	"contact-service/common/telemetry"
	"contact-service/internal/config"
	"contact-service/internal/contact"
	"contact-service/internal/db"
	"contact-service/internal/metrics"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
)

type App struct {
	config    *config.Config
	server    *http.Server
	database  *bun.DB
	publisher contact.Publisher
	telemetry *telemetry.Telemetry
	logger    *slog.Logger
}

func newLogger(cfg *config.Config, serviceName string) *slog.Logger {
	l := logger.WithServiceContext(logger.NewWithOptions(logger.Options{
		Format: cfg.Log.Format,
		Level:  cfg.Log.Level,
	}), serviceName, Version)

	// Set as default logger so slog.Info() uses the same handler
	slog.SetDefault(l)
	return l
}

func initTelemetry(ctx context.Context, cfg *config.Config, serviceName string, log *slog.Logger) (*telemetry.Telemetry, *metrics.Metrics, error) {
	tel, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:  cfg.Telemetry.Enabled,
		Endpoint: cfg.Telemetry.Endpoint,
		Interval: cfg.Telemetry.Interval(),
	}, serviceName, Version, cfg.Env, log)
	if err != nil {
		return nil, nil, err
	}

	appMetrics, err := metrics.New(otel.Meter(serviceName))
	if err != nil {
		shutdownTelemetry(ctx, tel, log)
		return nil, nil, fmt.Errorf("failed to initialize app metrics: %w", err)
	}
	return tel, appMetrics, nil
}

// shutdownTelemetry flushes and stops the meter provider when startup fails
// after telemetry is up. It runs even if ctx is already cancelled.
func shutdownTelemetry(ctx context.Context, tel *telemetry.Telemetry, log *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := tel.Shutdown(ctx, log); err != nil {
		log.Warn("failed to shutdown telemetry", "error", err)
	}
}

// New wires the HTTP server: storage, the event publisher and the router.
// A publisher that cannot connect degrades to no events rather than failing
// startup, since submissions are already durable in the database.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := newLogger(cfg, ServiceName)
	log.Info("initializing application", "env", cfg.Env, "commit", GitCommit, "built", BuildTime)

	tel, appMetrics, err := initTelemetry(ctx, cfg, ServiceName, log)
	if err != nil {
		return nil, err
	}

	database, err := db.New(ctx, cfg.Database)
	if err != nil {
		shutdownTelemetry(ctx, tel, log)
		return nil, err
	}

	if err := tel.Metrics.Database.RegisterDB(database.DB, otel.Meter(ServiceName)); err != nil {
		log.Warn("failed to register database metrics", "error", err)
	}

	if err := db.RunMigrations(ctx, database, (*contact.Submission)(nil)); err != nil {
		database.Close()
		shutdownTelemetry(ctx, tel, log)
		return nil, err
	}

	publisher, err := NewPublisher(cfg.Events, log, tel.Metrics)
	if err != nil {
		log.Warn("failed to initialize event publisher, notifications disabled", "transport", cfg.Events.Transport, "error", err)
		publisher = contact.NopPublisher{}
	}

	repo := contact.NewRepository(database, tel.Metrics)
	service := contact.NewService(repo, publisher, log, appMetrics)

	router := NewRouter(RouterConfig{
		BasePath:    cfg.Server.BasePath,
		CORSOrigins: cfg.Server.CORSOrigins,
		JWTSecret:   cfg.Auth.JWTSecret,
	}, service, database, log)

	app := &App{
		config: cfg,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
			IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		},
		database:  database,
		publisher: publisher,
		telemetry: tel,
		logger:    log,
	}

	log.Info("application initialized successfully")
	return app, nil
}

func (a *App) Run() error {
	a.logger.Info("server starting", "port", a.config.Server.Port, "base_path", a.config.Server.BasePath)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")
	err := a.server.Shutdown(ctx)

	if perr := a.publisher.Close(); perr != nil {
		a.logger.Warn("failed to close publisher", "error", perr)
	}
	db.Close(a.database)

	if terr := a.telemetry.Shutdown(ctx, a.logger); terr != nil {
		a.logger.Warn("failed to shutdown telemetry", "error", terr)
	}
	return err
}
