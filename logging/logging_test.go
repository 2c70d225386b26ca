package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/ByLCY/bingo/config"
)

func TestNewLevels(t *testing.T) {
	cases := []struct {
		name    string
		cfg     config.Logging
		verbose bool
		want    zapcore.Level
	}{
		{"default", config.Logging{}, false, zapcore.InfoLevel},
		{"warn", config.Logging{Level: "warn"}, false, zapcore.WarnLevel},
		{"verbose wins", config.Logging{Level: "error"}, true, zapcore.DebugLevel},
		{"development", config.Logging{Development: true}, false, zapcore.DebugLevel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logger, err := New(tc.cfg, tc.verbose)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if !logger.Core().Enabled(tc.want) {
				t.Fatalf("level %s should be enabled", tc.want)
			}
			if tc.want > zapcore.DebugLevel && logger.Core().Enabled(tc.want-1) {
				t.Fatalf("level %s should be disabled", tc.want-1)
			}
		})
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(config.Logging{Level: "loud"}, false); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
