package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Fatal("loggerFromContext should fall back to the default logger")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	if loggerFromContext(ctx) != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
}
