package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"vibekstra/internal/config"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		for _, format := range []string{"console", "json"} {
			t.Run(tt.level+"/"+format, func(t *testing.T) {
				logger, err := New(config.LoggingConfig{Level: tt.level, Format: format})
				require.NoError(t, err)
				assert.True(t, logger.Core().Enabled(tt.want))
				if tt.want > zapcore.DebugLevel {
					assert.False(t, logger.Core().Enabled(tt.want-1))
				}
			})
		}
	}
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "loud", Format: "console"})
	assert.Error(t, err)

	_, err = New(config.LoggingConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
}

func TestFor_NamesLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	For(zap.New(core), CategorySolver).Debug("solving")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "solver", entries[0].LoggerName)
}

func TestFor_Nil(t *testing.T) {
	assert.NotPanics(t, func() { For(nil, CategoryCLI).Info("discarded") })
}
