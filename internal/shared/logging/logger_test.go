package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jyhens/Layer2-Application/internal/shared/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesToRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")

	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", File: path})
	require.NoError(t, err)

	logger.Info("leave approved")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"leave approved"`)
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	logger, err := logging.New(logging.Options{Level: "chatty"})
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}
