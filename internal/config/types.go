// Package config loads crosswatch settings from .crosswatch/config.yaml and
// the environment.
package config

import "time"

// ServerConfig describes the crossword service.
type ServerConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// PollingConfig bounds the progress poll loop.
type PollingConfig struct {
	Interval time.Duration `yaml:"interval"`
	// MaxPolls is the tick budget of a session.
	MaxPolls int `yaml:"max_polls"`
	// Deadline is an optional wall-clock limit; zero disables it.
	Deadline   time.Duration `yaml:"deadline"`
	StepDelay  time.Duration `yaml:"step_delay"`
	FinalDelay time.Duration `yaml:"final_delay"`
}

// DisplayConfig controls terminal output.
type DisplayConfig struct {
	LogCapacity int  `yaml:"log_capacity"`
	Color       bool `yaml:"color"`
}

// OutputConfig controls where results are written.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// Config represents the .crosswatch/config.yaml file.
type Config struct {
	Server   ServerConfig  `yaml:"server"`
	Polling  PollingConfig `yaml:"polling"`
	Display  DisplayConfig `yaml:"display"`
	Output   OutputConfig  `yaml:"output"`
	LogLevel string        `yaml:"log_level"`
}

// Environment variables that override file settings.
const (
	EnvServerURL    = "CROSSWATCH_SERVER_URL"
	EnvMaxPolls     = "CROSSWATCH_MAX_POLLS"
	EnvPollInterval = "CROSSWATCH_POLL_INTERVAL"
	EnvLogLevel     = "CROSSWATCH_LOG_LEVEL"
)
