package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/logger"
)

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json format with static attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithService("tenantkit"),
			logger.WithAttr(slog.String("env", "test")),
		)

		log.Info("hello")

		record := decodeRecord(t, &buf)
		assert.Equal(t, "hello", record["msg"])
		assert.Equal(t, "tenantkit", record["service"])
		assert.Equal(t, "test", record["env"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithFormat(logger.FormatText),
		)

		log.Info("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("unknown format falls back to json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithFormat(logger.Format("xml")),
		)

		log.Info("hello")

		record := decodeRecord(t, &buf)
		assert.Equal(t, "hello", record["msg"])
	})

	t.Run("level filtering", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithLevel(slog.LevelWarn),
		)

		log.Info("dropped")
		assert.Zero(t, buf.Len())

		log.Warn("kept")
		assert.NotZero(t, buf.Len())
	})

	t.Run("context extractor annotates records", func(t *testing.T) {
		t.Parallel()

		type requestIDKey struct{}
		extractor := func(ctx context.Context) (slog.Attr, bool) {
			if id, ok := ctx.Value(requestIDKey{}).(string); ok {
				return slog.String("request_id", id), true
			}
			return slog.Attr{}, false
		}

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithContextExtractors(extractor),
		)

		ctx := context.WithValue(context.Background(), requestIDKey{}, "req-123")
		log.InfoContext(ctx, "handled")

		record := decodeRecord(t, &buf)
		assert.Equal(t, "req-123", record["request_id"])

		// Without a value in context the attribute is omitted.
		buf.Reset()
		log.InfoContext(context.Background(), "handled")
		record = decodeRecord(t, &buf)
		assert.NotContains(t, record, "request_id")
	})
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, "error", logger.Error(assert.AnError).Key)

	assert.Equal(t, slog.Attr{}, logger.UserID(nil))
	assert.Equal(t, "user_id", logger.UserID("u1").Key)

	assert.Equal(t, slog.Attr{}, logger.TenantID(nil))
	assert.Equal(t, "tenant_id", logger.TenantID("t1").Key)
}
