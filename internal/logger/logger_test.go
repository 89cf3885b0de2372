//nolint:testpackage // Testing unexported parseLevel requires same package access
package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	log, err := New(Config{Level: "debug", Format: "json"})
	require.NoError(t, err)
	require.NotNil(t, log)

	// With must return an independent logger.
	child := log.With(String("service", "listening"))
	assert.NotNil(t, child)
}

func TestNew_DefaultsLevel(t *testing.T) {
	log, err := New(Config{})
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"ERROR", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.input), "level %q", tt.input)
	}
}

func TestFieldHelpers(t *testing.T) {
	assert.Equal(t, "topic_id", Int("topic_id", 7).Key)
	assert.Equal(t, "error", Error(errors.New("boom")).Key)
	assert.Equal(t, "sources", Strings("sources", []string{"Facebook"}).Key)
}

func TestNopLogger(t *testing.T) {
	log := NewNop()

	// None of these may panic or emit.
	log.Debug("d")
	log.Info("i")
	log.Warn("w")
	log.Error("e")
	assert.Same(t, log, log.With(String("k", "v")))
	assert.NoError(t, log.Sync())
}
