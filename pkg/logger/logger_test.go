package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
		env   string
		want  zapcore.Level
	}{
		{"production debug", "debug", "production", zapcore.DebugLevel},
		{"development warn", "warn", "development", zapcore.WarnLevel},
		{"unknown level falls back to info", "loud", "development", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, err := New(tt.level, tt.env)
			require.NoError(t, err)
			assert.True(t, lg.Core().Enabled(tt.want))
			assert.False(t, lg.Core().Enabled(tt.want-1))
		})
	}
}
