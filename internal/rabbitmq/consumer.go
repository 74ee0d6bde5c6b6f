package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"contact-service/common/metrics"
	"contact-service/internal/contact"

	amqp "github.com/rabbitmq/amqp091-go"
)

type retryPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Consumer struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	topology Topology
	handler  contact.EventHandler
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewConsumer(url string, topology Topology, handler contact.EventHandler, logger *slog.Logger, m *metrics.Metrics) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := topology.Declare(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	// One unacked delivery at a time.
	if err := ch.Qos(1, 0, false); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set qos: %w", err)
	}

	return &Consumer{
		conn:     conn,
		ch:       ch,
		topology: topology,
		handler:  handler,
		logger:   logger,
		metrics:  m,
	}, nil
}

// Start consumes with manual acks and blocks until ctx is done or the
// broker closes the channel.
func (c *Consumer) Start(ctx context.Context) error {
	deliveries, err := c.ch.ConsumeWithContext(ctx, c.topology.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("rabbitmq consumer started", "queue", c.topology.Queue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("rabbitmq delivery channel closed")
			}
			c.process(ctx, c.ch, d)
		}
	}
}

func (c *Consumer) process(ctx context.Context, pub retryPublisher, d amqp.Delivery) {
	start := time.Now()

	var event contact.SubmissionEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		c.logger.Error("failed to unmarshal event, dead-lettering", "error", err)
		c.metrics.Messaging.RecordConsume(ctx, transport, c.topology.Queue, time.Since(start), err)
		d.Nack(false, false)
		return
	}

	err := c.handler.Handle(ctx, event)
	c.metrics.Messaging.RecordConsume(ctx, transport, c.topology.Queue, time.Since(start), err)
	if err == nil {
		d.Ack(false)
		return
	}

	c.logger.Error("failed to handle event", "submission_id", event.SubmissionID, "error", err)
	c.retry(ctx, pub, d)
}

// retry republishes d to the retry queue with an incremented counter, or
// rejects it into the dead letter queue once retries are exhausted.
func (c *Consumer) retry(ctx context.Context, pub retryPublisher, d amqp.Delivery) {
	retryCount := RetryCount(d.Headers)
	if !ShouldRetry(retryCount, c.topology.MaxRetries) {
		c.logger.Warn("max retries reached, sending to dead letter queue", "queue", c.topology.DeadLetter, "retries", retryCount)
		d.Nack(false, false)
		return
	}

	c.logger.Info("scheduling retry", "attempt", retryCount+1, "delay", c.topology.RetryDelay)
	err := pub.PublishWithContext(ctx, "", c.topology.RetryQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    d.MessageId,
		Body:         d.Body,
		Headers: amqp.Table{
			retryCountHeader: int32(retryCount + 1),
		},
	})
	if err != nil {
		// Requeue rather than lose the event when the retry queue is unreachable.
		c.logger.Error("failed to publish retry message", "error", err)
		d.Nack(false, true)
		return
	}
	d.Ack(false)
}

func (c *Consumer) Close() error {
	c.ch.Close()
	return c.conn.Close()
}
