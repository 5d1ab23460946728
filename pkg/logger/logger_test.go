package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickwinfinance/duesflow/pkg/logger"
)

type requestIDKey struct{}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestFromContextValue(t *testing.T) {
	t.Parallel()

	t.Run("adds attribute when present", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.NewWithWriter(&buf, slog.LevelInfo, logger.FromContextValue(requestIDKey{}, "request_id"))

		ctx := context.WithValue(context.Background(), requestIDKey{}, "req-1")
		log.InfoContext(ctx, "email sent")

		line := decodeLine(t, &buf)
		assert.Equal(t, "req-1", line["request_id"])
		assert.Equal(t, "email sent", line["msg"])
	})

	t.Run("skips missing value", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.NewWithWriter(&buf, slog.LevelInfo, logger.FromContextValue(requestIDKey{}, "request_id"))

		log.InfoContext(context.Background(), "no id")

		line := decodeLine(t, &buf)
		_, ok := line["request_id"]
		assert.False(t, ok)
	})
}

func TestNewWithWriter_Level(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, slog.LevelWarn)
	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.Equal(t, "kept", decodeLine(t, &buf)["msg"])
}

func TestNewWithSentry_NoDSN(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, flush := logger.NewWithSentry(logger.Config{Level: slog.LevelInfo, Output: &buf},
		logger.FromContextValue(requestIDKey{}, "request_id"))

	ctx := context.WithValue(context.Background(), requestIDKey{}, "req-2")
	log.With("component", "test").ErrorContext(ctx, "provider failed")

	line := decodeLine(t, &buf)
	assert.Equal(t, "req-2", line["request_id"])
	assert.Equal(t, "test", line["component"])
	assert.NoError(t, flush(context.Background()))
}

func TestLogHandlerDecorator_NilExtractors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := logger.NewLogHandlerDecorator(slog.NewJSONHandler(&buf, nil), nil, nil)
	slog.New(h).WithGroup("g").Info("ok", slog.Int("n", 1))

	line := decodeLine(t, &buf)
	assert.Equal(t, map[string]any{"n": float64(1)}, line["g"])
}

func TestNewNope(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() { logger.NewNope().Error("discarded") })
}
