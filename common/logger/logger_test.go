package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"contact-service/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG", slog.LevelInfo))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("warning", slog.LevelInfo))
	assert.Equal(t, slog.LevelError, logger.ParseLevel(" error ", slog.LevelInfo))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("loud", slog.LevelInfo))
}

func TestJSONLoggerAddsTraceContext(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithOptions(logger.Options{Format: "json", Output: &buf})

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	l.InfoContext(ctx, "submission stored", "submission_id", "abc")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "submission stored", record["msg"])
	assert.Equal(t, "abc", record["submission_id"])
	assert.Equal(t, traceID.String(), record["trace_id"])
	assert.Equal(t, spanID.String(), record["span_id"])
}

func TestTextLoggerColorsErrors(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithOptions(logger.Options{Format: "text", Level: "info", Output: &buf})

	l.Debug("hidden")
	l.Error("boom")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	// TextHandler quotes the control characters
	assert.Contains(t, out, `\x1b[31mboom\x1b[0m`)
}
