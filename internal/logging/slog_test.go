package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_TextFormatRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", "text")
	ctx := context.Background()

	log.Debug(ctx, "dbg")
	log.Info(ctx, "inf")
	log.Warn(ctx, "wrn", "k", "v")
	log.Error(ctx, "err", "code", 500)

	out := buf.String()
	assert.NotContains(t, out, "msg=dbg")
	assert.NotContains(t, out, "msg=inf")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "k=v")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "code=500")
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug", "JSON")

	log.With("request_id", "abc").Debug(context.Background(), "hello", "path", "/notes")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "abc", entry["request_id"])
	assert.Equal(t, "/notes", entry["path"])
}

func TestSlogLogger_With_DoesNotLeakToParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	parent.With("child", "yes").Info(context.Background(), "first")
	parent.Info(context.Background(), "second")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "child=yes")
	assert.NotContains(t, string(lines[1]), "child=yes")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNop_DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().With("a", 1).Error(context.Background(), "boom")
	})
}
