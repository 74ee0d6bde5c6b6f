// Package rabbitmq carries submission events over RabbitMQ with delayed
// retries and a dead letter queue.
package rabbitmq

import (
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	transport        = "rabbitmq"
	retryCountHeader = "retry_count"
)

// Topology names the queues. Failed deliveries wait RetryDelay in RetryQueue,
// which dead-letters back to Queue. After MaxRetries they are rejected from
// Queue into DeadLetter.
type Topology struct {
	Queue      string
	RetryQueue string
	DeadLetter string
	RetryDelay time.Duration
	MaxRetries int
}

// Declare creates all three queues. It is idempotent.
func (t Topology) Declare(ch *amqp.Channel) error {
	if _, err := ch.QueueDeclare(t.Queue, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": t.DeadLetter,
	}); err != nil {
		return fmt.Errorf("failed to declare %s: %w", t.Queue, err)
	}

	if _, err := ch.QueueDeclare(t.RetryQueue, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": t.Queue,
		"x-message-ttl":             int32(t.RetryDelay / time.Millisecond),
	}); err != nil {
		return fmt.Errorf("failed to declare %s: %w", t.RetryQueue, err)
	}

	if _, err := ch.QueueDeclare(t.DeadLetter, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare %s: %w", t.DeadLetter, err)
	}

	return nil
}

// RetryCount reads the retry header. Brokers and clients disagree on integer
// widths, so every signed type is accepted.
func RetryCount(headers amqp.Table) int {
	switch v := headers[retryCountHeader].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int16:
		return int(v)
	case int8:
		return int(v)
	case int:
		return v
	}
	return 0
}

// ShouldRetry reports whether a delivery that already failed retryCount times
// gets another attempt.
func ShouldRetry(retryCount, maxRetries int) bool {
	return retryCount < maxRetries
}
