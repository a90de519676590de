package wklog

import (
	"testing"

	"go.uber.org/zap"
)

func TestLogger(t *testing.T) {
	opts := NewOptions()
	opts.Level = zap.DebugLevel
	opts.LineNum = true
	opts.LogDir = t.TempDir()
	Configure(opts)

	Info("this is info")
	Debug("this is debug")
	Warn("this is warn")
	Error("this is error", zap.String("key", "value"))
}
