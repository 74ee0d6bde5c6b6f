package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"contact-service/common/metrics"
	"contact-service/internal/contact"

	"github.com/IBM/sarama"
)

const transport = "kafka"

type Producer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewProducer(brokers []string, topic string, logger *slog.Logger, m *metrics.Metrics) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	logger.Info("kafka producer initialized", "brokers", brokers, "topic", topic)

	return newProducer(producer, topic, logger, m), nil
}

func newProducer(producer sarama.SyncProducer, topic string, logger *slog.Logger, m *metrics.Metrics) *Producer {
	return &Producer{
		producer: producer,
		topic:    topic,
		logger:   logger,
		metrics:  m,
	}
}

// Publish keys the record by submission id so retries of one submission land
// on the same partition.
func (p *Producer) Publish(ctx context.Context, event contact.SubmissionEvent) error {
	start := time.Now()
	valueBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal event", "error", err)
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.SubmissionID),
		Value: sarama.ByteEncoder(valueBytes),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	p.metrics.Messaging.RecordPublish(ctx, transport, p.topic, time.Since(start), err)
	if err != nil {
		p.logger.Error("failed to send event to kafka", "error", err)
		return err
	}

	p.logger.Info("event sent to kafka", "topic", p.topic, "partition", partition, "offset", offset, "submission_id", event.SubmissionID)
	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
