package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestBuild_Levels(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		level string
		want  zapcore.Level
	}{
		{"development defaults to debug", "development", "", zapcore.DebugLevel},
		{"production defaults to info", "production", "", zapcore.InfoLevel},
		{"override raises level", "development", "warn", zapcore.WarnLevel},
		{"override is case insensitive", "production", "ERROR", zapcore.ErrorLevel},
		{"unknown override is ignored", "production", "loud", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := build(tt.env, tt.level)
			if !l.Core().Enabled(tt.want) {
				t.Errorf("expected %s to be enabled", tt.want)
			}
			if tt.want > zapcore.DebugLevel && l.Core().Enabled(tt.want-1) {
				t.Errorf("expected %s to be disabled", tt.want-1)
			}
		})
	}
}

func TestNamed(t *testing.T) {
	if Named("quotes") == nil {
		t.Fatal("expected a logger")
	}
}
