package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitLoggerWritesRotatedFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := InitLogger(dir, false)
	require.NoError(t, err)
	logger.Info("queue reordered")
	_ = logger.Sync()

	raw, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"msg":"queue reordered"`)
	assert.Contains(t, string(raw), `"timestamp"`)
}

func TestInitLoggerDebugLevel(t *testing.T) {
	logger, err := InitLogger("", true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = InitLogger("", false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
