package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestContextHandler_AddsTraceAndRequestIDs(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info")

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))
	ctx = context.WithValue(ctx, middleware.RequestIDKey, "host/abc-000001")

	l.InfoContext(ctx, "order created", "order_id", 7)

	entry := decode(t, &buf)
	assert.Equal(t, "order created", entry["msg"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", entry["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", entry["span_id"])
	assert.Equal(t, "host/abc-000001", entry["request_id"])
	assert.EqualValues(t, 7, entry["order_id"])
}

func TestContextHandler_KeepsDecorationWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info").With("component", "publisher")

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
	l.InfoContext(ctx, "tick")

	entry := decode(t, &buf)
	assert.Equal(t, "publisher", entry["component"])
	assert.Equal(t, "req-1", entry["request_id"])
}

func TestContextHandler_NoIDsWithoutContext(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "info").Info("plain")

	entry := decode(t, &buf)
	assert.NotContains(t, entry, "trace_id")
	assert.NotContains(t, entry, "request_id")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" WARN "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "error").Warn("ignored")
	assert.Zero(t, buf.Len())
}
