package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("server")
	l.Logger = l.Output(&buf)

	l.Info().Msg("listening")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "server", entry["role"])
	assert.Equal(t, "listening", entry["message"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "func")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	tests := []struct {
		name    string
		level   string
		want    zerolog.Level
		wantErr bool
	}{
		{name: "warn", level: "warn", want: zerolog.WarnLevel},
		{name: "empty keeps previous", level: "", want: zerolog.WarnLevel},
		{name: "error", level: "error", want: zerolog.ErrorLevel},
		{name: "unknown keeps previous", level: "loud", want: zerolog.ErrorLevel, wantErr: true},
	}

	// cases run in order, each starting from the level the previous one left
	for _, tt := range tests {
		err := SetLevel(tt.level)
		if tt.wantErr {
			assert.Error(t, err, tt.name)
		} else {
			assert.NoError(t, err, tt.name)
		}
		assert.Equal(t, tt.want, zerolog.GlobalLevel(), tt.name)
	}
}

func TestNewClientLogger_Console(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	var buf bytes.Buffer

	NewClientLogger("client", &buf).Info().Str("variant", "release").Msg("resolved")

	assert.Contains(t, buf.String(), "resolved")
	assert.Contains(t, buf.String(), "variant=release")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Error().Msg("dropped")

	assert.Empty(t, buf.String())
}

func TestWithTraceID(t *testing.T) {
	var buf bytes.Buffer
	parent := &Logger{zerolog.New(&buf).With().Str("role", "server").Logger()}

	parent.WithTraceID("t-1").Info().Msg("child")
	child := decodeEntry(t, &buf)
	assert.Equal(t, "t-1", child[TraceIDField])
	assert.Equal(t, "server", child["role"])

	buf.Reset()
	parent.Info().Msg("parent")
	assert.NotContains(t, decodeEntry(t, &buf), TraceIDField)
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	attached := zerolog.New(&buf).With().Str("plan_id", "p-1").Logger()

	tests := []struct {
		name string
		ctx  context.Context
	}{
		{name: "attached", ctx: attached.WithContext(context.Background())},
		{name: "empty context", ctx: context.Background()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, FromContext(tt.ctx))
		})
	}

	FromContext(tests[0].ctx).Info().Msg("from context")
	assert.Equal(t, "p-1", decodeEntry(t, &buf)["plan_id"])
}

func TestFromRequest(t *testing.T) {
	var buf bytes.Buffer
	attached := (&Logger{zerolog.New(&buf)}).WithTraceID("req-7")
	req := httptest.NewRequest(http.MethodGet, "/api/variants", nil)
	req = req.WithContext(attached.WithContext(req.Context()))

	FromRequest(req).Info().Msg("from request")

	assert.Equal(t, "req-7", decodeEntry(t, &buf)[TraceIDField])
}
