package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		cfg    *Config
		expect zapcore.Level
	}{
		{"debug console", &Config{Level: "debug", Format: "console", Output: "stdout"}, zapcore.DebugLevel},
		{"info json", &Config{Level: "info", Format: "json", Output: "stderr"}, zapcore.InfoLevel},
		{"unknown level defaults to info", &Config{Level: "verbose", Format: "json", Output: "stdout"}, zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.expect))
			if tt.expect > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
			}
		})
	}
}

func TestContextHelpers(t *testing.T) {
	base := zap.NewNop()
	ctx := context.Background()

	ctx, enriched := WithRequestID(ctx, base, "req-123")
	require.NotNil(t, enriched)
	assert.Equal(t, "req-123", GetRequestID(ctx))

	ctx, _ = WithUserID(ctx, enriched, "user-7")
	assert.Equal(t, "user-7", GetUserID(ctx))

	assert.NotNil(t, FromContext(ctx))
	assert.Equal(t, "", GetRequestID(context.Background()))
}
