package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLevelsByEnv(t *testing.T) {
	prod := New("prod")
	assert.False(t, prod.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, prod.Enabled(context.Background(), slog.LevelInfo))

	dev := New("dev")
	assert.True(t, dev.Enabled(context.Background(), slog.LevelDebug))
}
