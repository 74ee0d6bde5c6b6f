// Package notify turns stored submissions into owner notification emails.
package notify

import (
	"context"
	"errors"
	"log/slog"

	"contact-service/internal/contact"
	"contact-service/internal/metrics"
)

var ErrNoRecipient = errors.New("notification recipient is not configured")

type Config struct {
	Recipient string
	Sender    string
}

type Notifier struct {
	mailer  Mailer
	limiter Limiter
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewNotifier builds a notifier. limiter may be nil for no daily cap; an
// empty sender falls back to the recipient.
func NewNotifier(mailer Mailer, limiter Limiter, cfg Config, logger *slog.Logger, m *metrics.Metrics) (*Notifier, error) {
	if cfg.Recipient == "" {
		return nil, ErrNoRecipient
	}
	if cfg.Sender == "" {
		cfg.Sender = cfg.Recipient
	}
	return &Notifier{
		mailer:  mailer,
		limiter: limiter,
		cfg:     cfg,
		logger:  logger,
		metrics: m,
	}, nil
}

// Handle sends one notification. Over the daily cap the event is dropped
// without error. Send failures are returned so the transport can retry.
func (n *Notifier) Handle(ctx context.Context, event contact.SubmissionEvent) error {
	logger := n.logger.With("submission_id", event.SubmissionID)

	if n.limiter != nil {
		allowed, err := n.limiter.Allow(ctx)
		if err != nil {
			logger.WarnContext(ctx, "daily limit check failed, sending anyway", "error", err)
		} else if !allowed {
			logger.WarnContext(ctx, "daily notification limit reached, skipping")
			n.metrics.RecordNotificationCapped(ctx)
			return nil
		}
	}

	email, err := BuildEmail(ctx, event, n.cfg.Sender, n.cfg.Recipient)
	if err != nil {
		n.metrics.RecordNotificationFailed(ctx)
		return err
	}

	if err := n.mailer.Send(ctx, email); err != nil {
		logger.ErrorContext(ctx, "failed to send notification", "error", err)
		n.metrics.RecordNotificationFailed(ctx)
		return err
	}

	if n.limiter != nil {
		if err := n.limiter.Record(ctx); err != nil {
			logger.WarnContext(ctx, "failed to record notification count", "error", err)
		}
	}

	n.metrics.RecordNotificationSent(ctx)
	logger.InfoContext(ctx, "notification sent", "recipient", n.cfg.Recipient)
	return nil
}
