package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	quiet, err := New(false)
	require.NoError(t, err)
	assert.False(t, quiet.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, quiet.Core().Enabled(zapcore.WarnLevel))

	loud, err := New(true)
	require.NoError(t, err)
	assert.True(t, loud.Core().Enabled(zapcore.DebugLevel))
}

func TestDebugFromEnv(t *testing.T) {
	t.Setenv(EnvDebug, "1")
	assert.True(t, DebugFromEnv())
	t.Setenv(EnvDebug, "no")
	assert.False(t, DebugFromEnv())
	t.Setenv(EnvDebug, "")
	assert.False(t, DebugFromEnv())
}
