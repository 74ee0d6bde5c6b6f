// Package messaging carries submission events over NATS.
package messaging

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"contact-service/common/metrics"
	"contact-service/internal/contact"

	"github.com/nats-io/nats.go"
)

const transport = "nats"

type Producer struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewProducer(url string, subject string, logger *slog.Logger, m *metrics.Metrics) (*Producer, error) {
	nc, err := nats.Connect(url, nats.Name("contact-service"))
	if err != nil {
		return nil, err
	}

	logger.Info("NATS producer initialized", "url", url, "subject", subject)

	return &Producer{
		conn:    nc,
		subject: subject,
		logger:  logger,
		metrics: m,
	}, nil
}

func (p *Producer) Publish(ctx context.Context, event contact.SubmissionEvent) error {
	start := time.Now()
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal event", "error", err)
		return err
	}

	err = p.conn.Publish(p.subject, data)
	if err == nil {
		err = p.conn.FlushWithContext(ctx)
	}
	p.metrics.Messaging.RecordPublish(ctx, transport, p.subject, time.Since(start), err)
	if err != nil {
		p.logger.Error("failed to send event to NATS", "error", err)
		return err
	}

	p.logger.Info("event sent to NATS", "subject", p.subject, "submission_id", event.SubmissionID)
	return nil
}

func (p *Producer) Close() error {
	return p.conn.Drain()
}
