package server

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/iwvelando/billing-calc/internal/config"
	"github.com/iwvelando/billing-calc/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address          string               `yaml:"address"`
	CatalogFile      string               `yaml:"catalogFile"`
	MaxRequestSize   string               `yaml:"maxRequestSize"`
	ReadTimeout      string               `yaml:"readTimeout"`
	WriteTimeout     string               `yaml:"writeTimeout"`
	IdleTimeout      string               `yaml:"idleTimeout"`
	ShutdownTimeout  string               `yaml:"shutdownTimeout"`
	Logging          config.LoggingConfig `yaml:"logging"`
	requestSizeBytes int64
	timeouts         Timeouts
}

// Timeouts are the parsed http.Server and shutdown durations.
type Timeouts struct {
	Read     time.Duration
	Write    time.Duration
	Idle     time.Duration
	Shutdown time.Duration
}

func defaultTimeouts() Timeouts {
	return Timeouts{
		Read:     constants.DefaultReadTimeoutSeconds * time.Second,
		Write:    constants.DefaultWriteTimeoutSeconds * time.Second,
		Idle:     constants.DefaultIdleTimeoutSeconds * time.Second,
		Shutdown: constants.DefaultShutdownTimeoutSeconds * time.Second,
	}
}

// LoadConfig loads the server configuration from YAML. If the file does not exist,
// defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Address:          constants.DefaultServerAddress,
		CatalogFile:      constants.DefaultConfigFile,
		MaxRequestSize:   fmt.Sprintf("%d", constants.DefaultMaxRequestSizeBytes),
		Logging:          config.LoggingConfig{},
		requestSizeBytes: constants.DefaultMaxRequestSizeBytes,
		timeouts:         defaultTimeouts(),
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RequestSizeBytes returns the configured request body limit in bytes.
func (c *Config) RequestSizeBytes() int64 {
	return c.requestSizeBytes
}

// SetRequestSizeBytes overrides the configured request body limit.
func (c *Config) SetRequestSizeBytes(size int64) {
	if size > 0 {
		c.requestSizeBytes = size
		c.MaxRequestSize = fmt.Sprintf("%d", size)
	}
}

// Timeouts returns the parsed durations.
func (c *Config) Timeouts() Timeouts {
	return c.timeouts
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}
	if c.CatalogFile == "" {
		c.CatalogFile = constants.DefaultConfigFile
	}

	timeouts := defaultTimeouts()
	for _, field := range []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"readTimeout", c.ReadTimeout, &timeouts.Read},
		{"writeTimeout", c.WriteTimeout, &timeouts.Write},
		{"idleTimeout", c.IdleTimeout, &timeouts.Idle},
		{"shutdownTimeout", c.ShutdownTimeout, &timeouts.Shutdown},
	} {
		trimmed := strings.TrimSpace(field.value)
		if trimmed == "" {
			continue
		}
		d, err := time.ParseDuration(trimmed)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", field.name, field.value, err)
		}
		if d > 0 {
			*field.dst = d
		}
	}
	c.timeouts = timeouts

	sizeStr := strings.TrimSpace(c.MaxRequestSize)
	if sizeStr == "" {
		c.requestSizeBytes = constants.DefaultMaxRequestSizeBytes
		c.MaxRequestSize = fmt.Sprintf("%d", constants.DefaultMaxRequestSizeBytes)
		return nil
	}

	bytes, err := ParseSize(sizeStr)
	if err != nil {
		return err
	}
	if bytes <= 0 {
		bytes = constants.DefaultMaxRequestSizeBytes
	}
	c.requestSizeBytes = bytes
	return nil
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxRequestSizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	if n < 0 {
		return 0, fmt.Errorf("invalid size value %q: negative", value)
	}
	if n > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return n * multiplier, nil
}
