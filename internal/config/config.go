// Package config resolves the configuration directory, the target
// environment and the settings that vary per environment.
package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// AppName is the application directory name.
	AppName = "tasksync"

	// ConfigFile is the configuration filename inside the config directory.
	ConfigFile = "config.yaml"

	// DotEnvFile is the optional environment file.
	DotEnvFile = ".env"

	// EnvPrefix prefixes every environment variable read by the loader.
	EnvPrefix = "TASKSYNC"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `yaml:"-"`

	// Env is the selected environment profile.
	Env string `yaml:"env" mapstructure:"env"`

	// BaseURL is the backend origin; the task collection lives at BaseURL/tasks.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// RequestTimeout bounds a single backend call.
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`

	// ResponseTimeout bounds how long the web UI waits to write a response.
	ResponseTimeout time.Duration `yaml:"response_timeout" mapstructure:"response_timeout"`

	// CommandTimeout bounds a whole command, mutation plus reload.
	CommandTimeout time.Duration `yaml:"command_timeout" mapstructure:"command_timeout"`

	// ErrorPolicy is "log" or "surface".
	ErrorPolicy string `yaml:"error_policy" mapstructure:"error_policy"`

	// Color enables the ANSI line-through for completed tasks.
	Color bool `yaml:"color" mapstructure:"color"`

	// Listen is the address of the web UI.
	Listen string `yaml:"listen" mapstructure:"listen"`

	// MockListen is the address of the mock API.
	MockListen string `yaml:"mock_listen" mapstructure:"mock_listen"`

	// Debug enables debug logging.
	Debug bool `yaml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `yaml:"-"`
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to the configuration file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// DotEnvPath returns the path to the .env file in the config directory.
func (c *Config) DotEnvPath() string {
	return filepath.Join(c.Dir, DotEnvFile)
}

// HasConfigFile checks if the configuration file exists.
func (c *Config) HasConfigFile() bool {
	_, err := os.Stat(c.ConfigPath())
	return err == nil
}
