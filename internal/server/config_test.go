package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iwvelando/billing-calc/pkg/constants"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != constants.DefaultServerAddress {
		t.Fatalf("expected default address, got %q", cfg.Address)
	}
	if cfg.CatalogFile != constants.DefaultConfigFile {
		t.Fatalf("expected default catalog file, got %q", cfg.CatalogFile)
	}
	if cfg.RequestSizeBytes() != constants.DefaultMaxRequestSizeBytes {
		t.Fatalf("expected default max request size, got %d", cfg.RequestSizeBytes())
	}
	if cfg.Timeouts().Shutdown != constants.DefaultShutdownTimeoutSeconds*time.Second {
		t.Fatalf("expected default shutdown timeout, got %v", cfg.Timeouts().Shutdown)
	}
	if cfg.Logging.Level != "" || cfg.Logging.Format != "" || cfg.Logging.OutputFile != "" {
		t.Fatalf("expected empty logging defaults, got %+v", cfg.Logging)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server-config.yaml")

	contents := []byte(`address: 127.0.0.1:9000
catalogFile: /etc/billing-calc/catalog.yaml
maxRequestSize: 128K
readTimeout: 5s
shutdownTimeout: 30s
logging:
  level: debug
  format: console
  outputFile: /tmp/server.log
`)
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != "127.0.0.1:9000" {
		t.Fatalf("expected address override, got %s", cfg.Address)
	}
	if cfg.CatalogFile != "/etc/billing-calc/catalog.yaml" {
		t.Fatalf("expected catalog override, got %s", cfg.CatalogFile)
	}
	if cfg.RequestSizeBytes() != 128*1024 {
		t.Fatalf("expected max request override, got %d", cfg.RequestSizeBytes())
	}
	timeouts := cfg.Timeouts()
	if timeouts.Read != 5*time.Second || timeouts.Shutdown != 30*time.Second {
		t.Fatalf("unexpected timeouts %+v", timeouts)
	}
	if timeouts.Write != constants.DefaultWriteTimeoutSeconds*time.Second {
		t.Fatalf("expected default write timeout, got %v", timeouts.Write)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" || cfg.Logging.OutputFile != "/tmp/server.log" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	tests := map[string]string{
		"size":    "maxRequestSize: invalid",
		"timeout": "readTimeout: soon",
		"yaml":    "address: [unterminated",
	}

	for name, contents := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
				t.Fatalf("failed to write temp config: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Fatal("expected error but got nil")
			}
		})
	}
}

func TestSetRequestSizeBytes(t *testing.T) {
	cfg, _ := LoadConfig("")
	cfg.SetRequestSizeBytes(2048)
	if cfg.RequestSizeBytes() != 2048 || cfg.MaxRequestSize != "2048" {
		t.Fatalf("expected override to 2048, got %d / %s", cfg.RequestSizeBytes(), cfg.MaxRequestSize)
	}
	cfg.SetRequestSizeBytes(0)
	if cfg.RequestSizeBytes() != 2048 {
		t.Fatalf("expected non-positive override to be ignored, got %d", cfg.RequestSizeBytes())
	}
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{
		"":          constants.DefaultMaxRequestSizeBytes,
		"1024":      1024,
		"512b":      512,
		"256K":      256 * 1024,
		"1m":        1024 * 1024,
		"3MB":       3 * 1024 * 1024,
		"  4096   ": 4096,
	}

	for input, expected := range tests {
		got, err := ParseSize(input)
		if err != nil {
			t.Fatalf("ParseSize(%q) returned error: %v", input, err)
		}
		if got != expected {
			t.Fatalf("ParseSize(%q) = %d, expected %d", input, got, expected)
		}
	}

	if _, err := ParseSize("1GB"); err == nil {
		t.Fatal("expected error for unsupported unit")
	}
	if _, err := ParseSize("abc"); err == nil {
		t.Fatal("expected error for invalid number")
	}
	if _, err := ParseSize("-5K"); err == nil {
		t.Fatal("expected error for negative size")
	}
}

func TestParseSizeOverflow(t *testing.T) {
	// 2^53 M wraps a signed 64-bit product back to zero; 2^44+1 M wraps to a
	// positive value.
	for _, input := range []string{"9007199254740992M", "17592186044417M", "9007199254740992K"} {
		if got, err := ParseSize(input); err == nil {
			t.Errorf("ParseSize(%q) = %d, expected overflow error", input, got)
		}
	}

	got, err := ParseSize("8796093022207M")
	if err != nil {
		t.Fatalf("ParseSize() error = %v", err)
	}
	if got != 8796093022207*1024*1024 {
		t.Errorf("ParseSize() = %d, expected largest representable M value", got)
	}
}
