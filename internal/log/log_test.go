package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	t.Run("valid level", func(t *testing.T) {
		logger, err := Initialize("debug")

		require.NoError(t, err)
		assert.Same(t, logger, Logger)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := Initialize("loud")

		assert.Error(t, err)
	})
}
