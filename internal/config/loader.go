package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default values for Config.
const (
	DefaultServerURL     = "http://localhost:5000"
	DefaultServerTimeout = 10 * time.Second
	DefaultPollInterval  = 100 * time.Millisecond
	DefaultMaxPolls      = 200
	DefaultLogCapacity   = 50
	DefaultOutputDir     = "output"
	DefaultLogLevel      = "warn"
)

// DirName is the per-project configuration directory.
const DirName = ".crosswatch"

// DefaultConfig returns a Config with the values the browser client used.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			URL:     DefaultServerURL,
			Timeout: DefaultServerTimeout,
		},
		Polling: PollingConfig{
			Interval: DefaultPollInterval,
			MaxPolls: DefaultMaxPolls,
		},
		Display: DisplayConfig{
			LogCapacity: DefaultLogCapacity,
			Color:       true,
		},
		Output: OutputConfig{
			Dir: DefaultOutputDir,
		},
		LogLevel: DefaultLogLevel,
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// Load reads the config file and then the environment for basePath.
func Load(basePath string) (*Config, error) {
	cfg, err := LoadConfig(basePath)
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg, basePath); err != nil {
		return nil, err
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads and parses .crosswatch/config.yaml from basePath.
// A missing file yields the default config. Missing fields keep defaults.
func LoadConfig(basePath string) (*Config, error) {
	configPath := filepath.Join(basePath, DirName, "config.yaml")

	cfg := DefaultConfig()
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyEnv overrides cfg from the process environment and from an optional
// .env file in basePath. Process environment wins over the file.
func ApplyEnv(cfg *Config, basePath string) error {
	fileEnv, err := godotenv.Read(filepath.Join(basePath, ".env"))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read .env file: %w", err)
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	}

	if v, ok := lookup(EnvServerURL); ok && v != "" {
		cfg.Server.URL = v
	}
	if v, ok := lookup(EnvMaxPolls); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return ValidationError{Field: EnvMaxPolls, Message: "must be an integer"}
		}
		cfg.Polling.MaxPolls = n
	}
	if v, ok := lookup(EnvPollInterval); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return ValidationError{Field: EnvPollInterval, Message: "must be a duration"}
		}
		cfg.Polling.Interval = d
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	return nil
}

// ValidateConfig checks that all config values are valid.
func ValidateConfig(cfg *Config) error {
	u, err := url.Parse(cfg.Server.URL)
	if cfg.Server.URL == "" || err != nil || u.Scheme == "" || u.Host == "" {
		return ValidationError{Field: "server.url", Message: "must be an absolute URL"}
	}
	if cfg.Server.Timeout < 0 {
		return ValidationError{Field: "server.timeout", Message: "must not be negative"}
	}
	if cfg.Polling.Interval <= 0 {
		return ValidationError{Field: "polling.interval", Message: "must be positive"}
	}
	if cfg.Polling.MaxPolls <= 0 {
		return ValidationError{Field: "polling.max_polls", Message: "must be positive"}
	}
	if cfg.Polling.Deadline < 0 {
		return ValidationError{Field: "polling.deadline", Message: "must not be negative"}
	}
	if cfg.Polling.StepDelay < 0 {
		return ValidationError{Field: "polling.step_delay", Message: "must not be negative"}
	}
	if cfg.Polling.FinalDelay < 0 {
		return ValidationError{Field: "polling.final_delay", Message: "must not be negative"}
	}
	if cfg.Display.LogCapacity <= 0 {
		return ValidationError{Field: "display.log_capacity", Message: "must be positive"}
	}
	return nil
}
