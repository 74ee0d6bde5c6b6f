package app

import (
	"context"
	"testing"

	"contact-service/common/logger"
	"contact-service/common/telemetry"

	"github.com/stretchr/testify/assert"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestShutdownTelemetry(t *testing.T) {
	t.Run("StopsMeterProvider", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		tel := &telemetry.Telemetry{MeterProvider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))}

		shutdownTelemetry(context.Background(), tel, logger.New())

		var rm metricdata.ResourceMetrics
		assert.ErrorIs(t, reader.Collect(context.Background(), &rm), sdkmetric.ErrReaderShutdown)
	})

	t.Run("CancelledStartupContext", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		tel := &telemetry.Telemetry{MeterProvider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		shutdownTelemetry(ctx, tel, logger.New())

		var rm metricdata.ResourceMetrics
		assert.ErrorIs(t, reader.Collect(context.Background(), &rm), sdkmetric.ErrReaderShutdown)
	})

	t.Run("DisabledTelemetry", func(t *testing.T) {
		assert.NotPanics(t, func() {
			shutdownTelemetry(context.Background(), &telemetry.Telemetry{}, logger.New())
		})
	})
}
