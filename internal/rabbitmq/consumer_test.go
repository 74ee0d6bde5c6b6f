package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"contact-service/common/logger"
	"contact-service/common/metrics"
	"contact-service/internal/contact"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAcknowledger) Ack(uint64, bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(_ uint64, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

type fakePublisher struct {
	key string
	msg *amqp.Publishing
	err error
}

func (f *fakePublisher) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	f.key = key
	f.msg = &msg
	return f.err
}

type stubHandler struct {
	err   error
	calls int
}

func (h *stubHandler) Handle(context.Context, contact.SubmissionEvent) error {
	h.calls++
	return h.err
}

var testTopology = Topology{
	Queue:      "contact_notify_queue",
	RetryQueue: "contact_notify_retry_queue",
	DeadLetter: "contact_notify_dlq",
	RetryDelay: 5 * time.Second,
	MaxRetries: 3,
}

func newTestConsumer(h contact.EventHandler) *Consumer {
	return &Consumer{
		topology: testTopology,
		handler:  h,
		logger:   logger.New(),
		metrics:  metrics.NewMock(),
	}
}

func delivery(t *testing.T, ack amqp.Acknowledger, headers amqp.Table) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(contact.SubmissionEvent{SubmissionID: "a", Name: "Ana"})
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: ack, Headers: headers, Body: body, MessageId: "a"}
}

func TestRetryCount(t *testing.T) {
	assert.Equal(t, 0, RetryCount(nil))
	assert.Equal(t, 0, RetryCount(amqp.Table{"retry_count": "2"}))
	assert.Equal(t, 2, RetryCount(amqp.Table{"retry_count": int32(2)}))
	assert.Equal(t, 3, RetryCount(amqp.Table{"retry_count": int64(3)}))
}

func TestShouldRetry(t *testing.T) {
	assert.True(t, ShouldRetry(0, 3))
	assert.True(t, ShouldRetry(2, 3))
	assert.False(t, ShouldRetry(3, 3))
	assert.False(t, ShouldRetry(0, 0))
}

func TestConsumer_Process(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_Acks", func(t *testing.T) {
		ack := &fakeAcknowledger{}
		pub := &fakePublisher{}
		h := &stubHandler{}

		newTestConsumer(h).process(ctx, pub, delivery(t, ack, nil))

		assert.Equal(t, 1, h.calls)
		assert.True(t, ack.acked)
		assert.False(t, ack.nacked)
		assert.Nil(t, pub.msg)
	})

	t.Run("Failure_SchedulesRetry", func(t *testing.T) {
		ack := &fakeAcknowledger{}
		pub := &fakePublisher{}

		newTestConsumer(&stubHandler{err: errors.New("smtp down")}).process(ctx, pub, delivery(t, ack, amqp.Table{"retry_count": int32(1)}))

		require.NotNil(t, pub.msg)
		assert.Equal(t, "contact_notify_retry_queue", pub.key)
		assert.Equal(t, int32(2), pub.msg.Headers["retry_count"])
		assert.True(t, ack.acked)
	})

	t.Run("Failure_ExhaustedGoesToDLQ", func(t *testing.T) {
		ack := &fakeAcknowledger{}
		pub := &fakePublisher{}

		newTestConsumer(&stubHandler{err: errors.New("smtp down")}).process(ctx, pub, delivery(t, ack, amqp.Table{"retry_count": int32(3)}))

		assert.Nil(t, pub.msg)
		assert.True(t, ack.nacked)
		assert.False(t, ack.requeue)
	})

	t.Run("RetryPublishFails_Requeues", func(t *testing.T) {
		ack := &fakeAcknowledger{}
		pub := &fakePublisher{err: errors.New("channel closed")}

		newTestConsumer(&stubHandler{err: errors.New("smtp down")}).process(ctx, pub, delivery(t, ack, nil))

		assert.True(t, ack.nacked)
		assert.True(t, ack.requeue)
		assert.False(t, ack.acked)
	})

	t.Run("InvalidJSON_DeadLetters", func(t *testing.T) {
		ack := &fakeAcknowledger{}
		h := &stubHandler{}

		newTestConsumer(h).process(ctx, &fakePublisher{}, amqp.Delivery{Acknowledger: ack, Body: []byte("nope")})

		assert.Zero(t, h.calls)
		assert.True(t, ack.nacked)
		assert.False(t, ack.requeue)
	})
}
