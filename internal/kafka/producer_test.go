package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"contact-service/common/logger"
	"contact-service/common/metrics"
	"contact-service/internal/contact"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducer_Publish(t *testing.T) {
	event := contact.SubmissionEvent{SubmissionID: "0b4c6f0e-7d1a-4a58-9a0e-1f2d3c4b5a69", Name: "Ana", Message: "Hello"}

	t.Run("Publish_Success", func(t *testing.T) {
		config := sarama.NewConfig()
		config.Producer.Return.Successes = true
		mock := mocks.NewSyncProducer(t, config)
		mock.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
			key, err := msg.Key.Encode()
			require.NoError(t, err)
			assert.Equal(t, event.SubmissionID, string(key))
			assert.Equal(t, "contact-submissions", msg.Topic)

			value, err := msg.Value.Encode()
			require.NoError(t, err)
			var got contact.SubmissionEvent
			require.NoError(t, json.Unmarshal(value, &got))
			assert.Equal(t, event.Message, got.Message)
			return nil
		})

		p := newProducer(mock, "contact-submissions", logger.New(), metrics.NewMock())
		require.NoError(t, p.Publish(context.Background(), event))
		require.NoError(t, p.Close())
	})

	t.Run("Publish_BrokerError", func(t *testing.T) {
		mock := mocks.NewSyncProducer(t, nil)
		brokerErr := errors.New("leader not available")
		mock.ExpectSendMessageAndFail(brokerErr)

		p := newProducer(mock, "contact-submissions", logger.New(), metrics.NewMock())
		assert.ErrorIs(t, p.Publish(context.Background(), event), brokerErr)
		require.NoError(t, p.Close())
	})
}
