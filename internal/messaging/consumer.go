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

// QueueGroup spreads events across notifier replicas.
const QueueGroup = "contact-notifier"

type Consumer struct {
	conn    *nats.Conn
	sub     *nats.Subscription
	subject string
	handler contact.EventHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewConsumer(url string, subject string, handler contact.EventHandler, logger *slog.Logger, m *metrics.Metrics) (*Consumer, error) {
	nc, err := nats.Connect(url, nats.Name("contact-notifier"))
	if err != nil {
		return nil, err
	}

	return &Consumer{
		conn:    nc,
		subject: subject,
		handler: handler,
		logger:  logger,
		metrics: m,
	}, nil
}

// Start subscribes and blocks until ctx is done.
func (c *Consumer) Start(ctx context.Context) error {
	sub, err := c.conn.QueueSubscribe(c.subject, QueueGroup, func(msg *nats.Msg) {
		start := time.Now()
		c.logger.Info("received event from NATS", "subject", msg.Subject)

		var event contact.SubmissionEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			c.logger.Error("failed to unmarshal event", "error", err)
			c.metrics.Messaging.RecordConsume(ctx, transport, c.subject, time.Since(start), err)
			return
		}

		err := c.handler.Handle(ctx, event)
		c.metrics.Messaging.RecordConsume(ctx, transport, c.subject, time.Since(start), err)
		if err != nil {
			c.logger.Error("failed to handle event", "submission_id", event.SubmissionID, "error", err)
		}
	})
	if err != nil {
		return err
	}

	c.sub = sub
	c.logger.Info("NATS consumer started", "subject", c.subject, "queue", QueueGroup)

	<-ctx.Done()
	return ctx.Err()
}

func (c *Consumer) Close() error {
	if c.sub != nil {
		c.sub.Unsubscribe()
	}
	c.conn.Close()
	return nil
}
