package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/billing-calc/internal/config"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.LoggingConfig
		override string
		enabled  zapcore.Level
		disabled zapcore.Level
		wantErr  bool
	}{
		{name: "default info", enabled: zapcore.InfoLevel, disabled: zapcore.DebugLevel},
		{name: "config debug", cfg: config.LoggingConfig{Level: "debug"}, enabled: zapcore.DebugLevel},
		{name: "override wins", cfg: config.LoggingConfig{Level: "debug"}, override: "error", enabled: zapcore.ErrorLevel, disabled: zapcore.WarnLevel},
		{name: "warning alias", override: "WARNING", enabled: zapcore.WarnLevel, disabled: zapcore.InfoLevel},
		{name: "console format", cfg: config.LoggingConfig{Format: "console"}, enabled: zapcore.InfoLevel, disabled: zapcore.DebugLevel},
		{name: "bad level", override: "verbose", wantErr: true},
		{name: "bad format", cfg: config.LoggingConfig{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg, tt.override)
			if tt.wantErr {
				if err == nil {
					t.Fatal("New() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if !logger.Core().Enabled(tt.enabled) {
				t.Errorf("expected %s to be enabled", tt.enabled)
			}
			if tt.disabled != tt.enabled && tt.disabled < tt.enabled && logger.Core().Enabled(tt.disabled) {
				t.Errorf("expected %s to be disabled", tt.disabled)
			}
		})
	}
}

func TestNewWritesToOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "billing.log")

	logger, err := New(config.LoggingConfig{OutputFile: path}, "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("calculation served")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "calculation served") {
		t.Errorf("expected log entry in file, got %q", string(data))
	}
}
