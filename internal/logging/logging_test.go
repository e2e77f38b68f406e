package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"backoffice/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	l := logging.NewWithWriter(&buf, "WARN")

	l.Info("hidden")
	l.Warn("shown", "order_id", "o-1")

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "shown", got["msg"])
	assert.Equal(t, "o-1", got["order_id"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestFromContext(t *testing.T) {
	assert.Same(t, slog.Default(), logging.FromContext(context.Background()))

	l := logging.NewWithWriter(&bytes.Buffer{}, "debug")
	ctx := logging.IntoContext(context.Background(), l)
	assert.Same(t, l, logging.FromContext(ctx))
}
