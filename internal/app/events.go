package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	commonmetrics "contact-service/common/metrics"
	"contact-service/internal/config"
	"contact-service/internal/contact"
	"contact-service/internal/kafka"
	"contact-service/internal/messaging"
	"contact-service/internal/rabbitmq"
)

// Consumer is the notifier side of a transport.
type Consumer interface {
	Start(ctx context.Context) error
	Close() error
}

func rabbitTopology(cfg config.RabbitMQConfig) rabbitmq.Topology {
	return rabbitmq.Topology{
		Queue:      cfg.Queue,
		RetryQueue: cfg.RetryQueue,
		DeadLetter: cfg.DeadLetter,
		RetryDelay: time.Duration(cfg.RetryDelayMS) * time.Millisecond,
		MaxRetries: cfg.MaxRetries,
	}
}

// NewPublisher connects the configured transport's producer.
func NewPublisher(cfg config.EventsConfig, logger *slog.Logger, m *commonmetrics.Metrics) (contact.Publisher, error) {
	switch cfg.Transport {
	case config.TransportNATS:
		return messaging.NewProducer(cfg.NATS.URL, cfg.NATS.Subject, logger, m)
	case config.TransportKafka:
		return kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger, m)
	case config.TransportRabbitMQ:
		return rabbitmq.NewProducer(cfg.RabbitMQ.URL, rabbitTopology(cfg.RabbitMQ), logger, m)
	case config.TransportNone:
		return contact.NopPublisher{}, nil
	}
	return nil, fmt.Errorf("unknown events transport %q", cfg.Transport)
}

// NewConsumer connects the configured transport's consumer feeding handler.
func NewConsumer(cfg config.EventsConfig, handler contact.EventHandler, logger *slog.Logger, m *commonmetrics.Metrics) (Consumer, error) {
	switch cfg.Transport {
	case config.TransportNATS:
		return messaging.NewConsumer(cfg.NATS.URL, cfg.NATS.Subject, handler, logger, m)
	case config.TransportKafka:
		return kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID, handler, logger, m)
	case config.TransportRabbitMQ:
		return rabbitmq.NewConsumer(cfg.RabbitMQ.URL, rabbitTopology(cfg.RabbitMQ), handler, logger, m)
	case config.TransportNone:
		return nil, fmt.Errorf("events transport is %q, nothing to consume", cfg.Transport)
	}
	return nil, fmt.Errorf("unknown events transport %q", cfg.Transport)
}
