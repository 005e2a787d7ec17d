package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	l := New(zapcore.WarnLevel, false)
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("Info should be disabled at warn level")
	}
	if !l.Core().Enabled(zapcore.WarnLevel) {
		t.Error("Warn should be enabled at warn level")
	}

	v := New(zapcore.WarnLevel, true)
	if !v.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Verbose logger should enable debug")
	}
}
