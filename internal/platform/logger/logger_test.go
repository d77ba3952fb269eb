package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "bogus", ""} {
		logger, err := Setup(level)
		require.NoError(t, err, "level %q", level)
		assert.NotNil(t, logger, "level %q", level)
	}
}

func TestFromContext(t *testing.T) {
	scoped := slog.Default().With("component", "test")

	ctx := WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, FromContext(ctx))

	// Without a stored logger the process default is returned.
	assert.NotNil(t, FromContext(context.Background()))
}

func TestFromContextOrDefault(t *testing.T) {
	def := slog.Default().With("component", "fallback")

	assert.Same(t, def, FromContextOrDefault(context.Background(), def))

	scoped := slog.Default().With("component", "scoped")
	ctx := WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, FromContextOrDefault(ctx, def))
}
