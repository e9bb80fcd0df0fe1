package logger

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithLevel(t *testing.T) {
	l := NewWithLevel(slog.LevelWarn)
	ctx := context.Background()
	assert.False(t, l.GetSlogLogger().Enabled(ctx, slog.LevelInfo))
	assert.True(t, l.GetSlogLogger().Enabled(ctx, slog.LevelWarn))
}

func TestNewDiscard(t *testing.T) {
	var l Interface = NewDiscard()
	l.Debug("dropped")
	l.Error("dropped", Error(errors.New("boom")))
}

func TestAttrs(t *testing.T) {
	assert.Equal(t, "error", Error(errors.New("boom")).Key)
	assert.Equal(t, "SELECT", Statement("SELECT").Value.String())
	assert.Equal(t, int64(7), Offset(7).Value.Int64())
}
