package messaging_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"contact-service/common/logger"
	"contact-service/common/metrics"
	"contact-service/internal/contact"
	"contact-service/internal/messaging"
	"contact-service/testing/testnats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	mu     sync.Mutex
	events []contact.SubmissionEvent
}

func (h *recordingHandler) Handle(_ context.Context, event contact.SubmissionEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return nil
}

func (h *recordingHandler) received() []contact.SubmissionEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]contact.SubmissionEvent(nil), h.events...)
}

func TestNATSRoundTrip(t *testing.T) {
	natsContainer := testnats.SetupSharedNATS(t)
	defer natsContainer.Cleanup(t)

	log := logger.New()
	subject := "test.contact.submissions"
	handler := &recordingHandler{}

	consumer, err := messaging.NewConsumer(natsContainer.URL, subject, handler, log, metrics.NewMock())
	require.NoError(t, err)
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = consumer.Start(ctx) }()

	producer, err := messaging.NewProducer(natsContainer.URL, subject, log, metrics.NewMock())
	require.NoError(t, err)
	defer producer.Close()

	event := contact.SubmissionEvent{
		SubmissionID: "0b4c6f0e-7d1a-4a58-9a0e-1f2d3c4b5a69",
		Name:         "Ana",
		Email:        "ana@x.io",
		Message:      "Hello over NATS",
	}
	// The queue subscription starts asynchronously; republish until it is live.
	require.Eventually(t, func() bool {
		_ = producer.Publish(ctx, event)
		return len(handler.received()) > 0
	}, 5*time.Second, 200*time.Millisecond)
	got := handler.received()[0]
	assert.Equal(t, event.SubmissionID, got.SubmissionID)
	assert.Equal(t, "Hello over NATS", got.Message)
}
