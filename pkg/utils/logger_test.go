package utils

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	t.Run("debug mode enables debug level", func(t *testing.T) {
		logger, err := NewLogger(true)
		if err != nil {
			t.Fatalf("NewLogger(true) error: %v", err)
		}
		if !logger.Core().Enabled(zapcore.DebugLevel) {
			t.Error("development logger should log at debug level")
		}
		_ = logger.Sync()
	})

	t.Run("production mode suppresses debug level", func(t *testing.T) {
		logger, err := NewLogger(false)
		if err != nil {
			t.Fatalf("NewLogger(false) error: %v", err)
		}
		if logger.Core().Enabled(zapcore.DebugLevel) {
			t.Error("production logger should not log at debug level")
		}
		_ = logger.Sync()
	})
}
