package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/brainbuzz/internal/config"
)

func TestNew(t *testing.T) {
	lg, err := New(&config.Config{Env: "production"})
	require.NoError(t, err)
	assert.False(t, lg.Core().Enabled(zap.DebugLevel))

	lg, err = New(&config.Config{Env: "local"})
	require.NoError(t, err)
	assert.True(t, lg.Core().Enabled(zap.DebugLevel))

	lg, err = New(&config.Config{Env: "local", LogLevel: "warn"})
	require.NoError(t, err)
	assert.False(t, lg.Core().Enabled(zap.InfoLevel))

	_, err = New(&config.Config{LogLevel: "loud"})
	assert.Error(t, err)
}
