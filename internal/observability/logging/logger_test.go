package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"

	"catalog-selection/internal/handler/http/requestid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ───────── Logger construction ───────── */

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "", slog.LevelWarn)

	logger.Info("dropped")
	logger.Warn("kept", slog.Int("selected_count", 3))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, float64(3), entry["selected_count"])
	assert.NotContains(t, entry, "source", "source is only added at debug level")
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "TEXT", slog.LevelDebug)

	logger.Debug("navigating", slog.Int("page", 2))

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "msg=navigating")
	assert.Contains(t, out, "page=2")
	assert.Contains(t, out, "source=")
}

func TestNewLogger_FromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "text")

	logger := NewLogger()
	require.NotNil(t, logger)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelError))

	t.Setenv("LOG_LEVEL", "debug")
	assert.True(t, NewTextLogger().Enabled(context.Background(), slog.LevelDebug))
}

/* ───────── Context helpers ───────── */

func newBufferLogger() (*bytes.Buffer, *slog.Logger) {
	var buf bytes.Buffer
	return &buf, slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "output should be valid JSON")
	return entry
}

func TestWithRequestID(t *testing.T) {
	tests := []struct {
		name      string
		requestID string
	}{
		{name: "plain request ID", requestID: "test-request-123"},
		{name: "UUID request ID", requestID: "550e8400-e29b-41d4-a716-446655440000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, base := newBufferLogger()
			ctx := requestid.WithRequestID(context.Background(), tt.requestID)

			WithRequestID(ctx, base).Info("test message")

			assert.Equal(t, tt.requestID, decodeEntry(t, buf)["request_id"])
		})
	}
}

func TestWithRequestID_EmptyRequestID(t *testing.T) {
	buf, base := newBufferLogger()

	logger := WithRequestID(context.Background(), base)
	assert.Same(t, base, logger)

	logger.Info("test message")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestWithTraceContext(t *testing.T) {
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	buf, base := newBufferLogger()
	WithTraceContext(ctx, base).Info("traced")

	entry := decodeEntry(t, buf)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", entry["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", entry["span_id"])
}

func TestWithTraceContext_NoSpan(t *testing.T) {
	_, base := newBufferLogger()
	assert.Same(t, base, WithTraceContext(context.Background(), base))
}

func TestForRequest(t *testing.T) {
	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})

	ctx := requestid.WithRequestID(context.Background(), "req-1")
	ctx = trace.ContextWithSpanContext(ctx, sc)

	buf, base := newBufferLogger()
	ForRequest(ctx, base).Info("handled")

	entry := decodeEntry(t, buf)
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "0102030405060708090a0b0c0d0e0f10", entry["trace_id"])
}

func TestWithFields(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]interface{}
	}{
		{name: "single string field", fields: map[string]interface{}{"store": "file"}},
		{name: "mixed fields", fields: map[string]interface{}{"page": 2, "performed": true, "source": "api"}},
		{name: "empty", fields: map[string]interface{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, base := newBufferLogger()

			WithFields(base, tt.fields).Info("test message")

			entry := decodeEntry(t, buf)
			assert.Equal(t, "test message", entry["msg"])
			for key, expected := range tt.fields {
				if v, ok := expected.(int); ok {
					assert.Equal(t, float64(v), entry[key], "field %s should match", key)
					continue
				}
				assert.Equal(t, expected, entry[key], "field %s should match", key)
			}
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Run("with logger in context", func(t *testing.T) {
		buf, logger := newBufferLogger()
		ctx := WithLogger(context.Background(), logger)

		FromContext(ctx).Info("from context")
		assert.Contains(t, buf.String(), "from context")
	})

	t.Run("without logger in context", func(t *testing.T) {
		assert.Equal(t, slog.Default(), FromContext(context.Background()))
	})

	t.Run("with invalid value in context", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), loggerContextKey, "not a logger")
		assert.Equal(t, slog.Default(), FromContext(ctx))
	})
}

func TestContextKey_Type(t *testing.T) {
	assert.IsType(t, contextKey(""), loggerContextKey)
}

func BenchmarkLogger_ForRequest(b *testing.B) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx := requestid.WithRequestID(context.Background(), "benchmark-req-id")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ForRequest(ctx, base).Info("benchmark message")
	}
}
