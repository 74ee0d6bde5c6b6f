package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"contact-service/common/metrics"
	"contact-service/internal/contact"

	"github.com/IBM/sarama"
)

type Consumer struct {
	consumer sarama.ConsumerGroup
	topic    string
	handler  *ConsumerGroupHandler
	logger   *slog.Logger
}

func NewConsumer(brokers []string, topic, groupID string, handler contact.EventHandler, logger *slog.Logger, m *metrics.Metrics) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_8_0_0
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetNewest

	consumerGroup, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		consumer: consumerGroup,
		topic:    topic,
		handler: &ConsumerGroupHandler{
			Handler: handler,
			Logger:  logger,
			Metrics: m,
		},
		logger: logger,
	}, nil
}

// Start consumes until ctx is done. Consume returns on every rebalance, so it
// is called in a loop.
func (c *Consumer) Start(ctx context.Context) error {
	for {
		if err := c.consumer.Consume(ctx, []string{c.topic}, c.handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			c.logger.Error("error consuming messages", "error", err)
			return err
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (c *Consumer) Close() error {
	return c.consumer.Close()
}

// ConsumerGroupHandler implements sarama.ConsumerGroupHandler interface
type ConsumerGroupHandler struct {
	Handler contact.EventHandler
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

func (h *ConsumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *ConsumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim marks every record, including ones that fail, so a bad record
// cannot stall the partition.
func (h *ConsumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	ctx := session.Context()
	for msg := range claim.Messages() {
		start := time.Now()
		h.Logger.Info("received event from kafka",
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
		)

		var event contact.SubmissionEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			h.Logger.Error("failed to unmarshal event", "error", err)
			h.Metrics.Messaging.RecordConsume(ctx, transport, msg.Topic, time.Since(start), err)
			session.MarkMessage(msg, "")
			continue
		}

		err := h.Handler.Handle(ctx, event)
		h.Metrics.Messaging.RecordConsume(ctx, transport, msg.Topic, time.Since(start), err)
		if err != nil {
			h.Logger.Error("failed to handle event", "submission_id", event.SubmissionID, "error", err)
		}

		session.MarkMessage(msg, "")
	}

	return nil
}
