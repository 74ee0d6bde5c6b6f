package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"contact-service/common/metrics"
	"contact-service/internal/contact"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Producer struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	topology Topology
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewProducer(url string, topology Topology, logger *slog.Logger, m *metrics.Metrics) (*Producer, error) {
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

	logger.Info("rabbitmq producer initialized", "queue", topology.Queue)

	return &Producer{
		conn:     conn,
		ch:       ch,
		topology: topology,
		logger:   logger,
		metrics:  m,
	}, nil
}

func (p *Producer) Publish(ctx context.Context, event contact.SubmissionEvent) error {
	start := time.Now()
	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal event", "error", err)
		return err
	}

	err = p.ch.PublishWithContext(ctx, "", p.topology.Queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.SubmissionID,
		Timestamp:    time.Now(),
		Body:         body,
	})
	p.metrics.Messaging.RecordPublish(ctx, transport, p.topology.Queue, time.Since(start), err)
	if err != nil {
		p.logger.Error("failed to send event to rabbitmq", "error", err)
		return err
	}

	p.logger.Info("event sent to rabbitmq", "queue", p.topology.Queue, "submission_id", event.SubmissionID)
	return nil
}

func (p *Producer) Close() error {
	p.ch.Close()
	return p.conn.Close()
}
