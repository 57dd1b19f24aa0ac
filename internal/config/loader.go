package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Keys are the settings read from file, .env and environment.
var Keys = []string{
	"env",
	"base_url",
	"request_timeout",
	"response_timeout",
	"command_timeout",
	"error_policy",
	"color",
	"listen",
	"mock_listen",
}

// Options carries command-line overrides.
type Options struct {
	// Dir overrides the config directory.
	Dir string

	// Env selects the environment profile.
	Env string

	// BaseURL overrides the backend origin.
	BaseURL string

	// WorkDir is searched for a second .env file. Empty means the
	// current directory.
	WorkDir string
}

// New resolves the configuration.
//
// Lowest to highest precedence: built-in profile, top-level keys of
// config.yaml, its environments.<env> section, .env files (config dir then
// work dir), TASKSYNC_* variables, Options.
func New(opts Options) (*Config, error) {
	dir := opts.Dir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfg.HasConfigFile() {
		v.SetConfigFile(cfg.ConfigPath())
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
		}
	}

	// Keys fixed by the process environment or .env outrank the file.
	locked := make(map[string]bool)
	for _, key := range Keys {
		if _, ok := os.LookupEnv(EnvVar(key)); ok {
			locked[key] = true
		}
	}

	workDir := opts.WorkDir
	if workDir == "" {
		workDir = "."
	}
	dotenv, err := readDotEnv(cfg.DotEnvPath(), filepath.Join(workDir, DotEnvFile))
	if err != nil {
		return nil, err
	}
	for key, val := range dotenv {
		if locked[key] {
			continue
		}
		v.Set(key, val)
		locked[key] = true
	}

	name := opts.Env
	if name == "" {
		name = v.GetString("env")
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultEnv
	}

	profile, builtin := Profiles[name]
	section := v.Sub("environments." + name)
	if !builtin && section == nil {
		return nil, fmt.Errorf("unknown environment: %s", name)
	}

	v.SetDefault("base_url", profile.BaseURL)
	v.SetDefault("request_timeout", profile.RequestTimeout)
	v.SetDefault("response_timeout", profile.ResponseTimeout)
	v.SetDefault("command_timeout", profile.CommandTimeout)
	v.SetDefault("error_policy", "log")
	v.SetDefault("color", true)
	v.SetDefault("listen", "127.0.0.1:3000")
	v.SetDefault("mock_listen", "127.0.0.1:8080")

	if section != nil {
		for _, key := range section.AllKeys() {
			if locked[key] {
				continue
			}
			v.Set(key, section.Get(key))
		}
	}

	if opts.BaseURL != "" {
		v.Set("base_url", opts.BaseURL)
	}

	cfg.Env = name
	cfg.BaseURL = strings.TrimSpace(v.GetString("base_url"))
	cfg.ErrorPolicy = strings.ToLower(strings.TrimSpace(v.GetString("error_policy")))
	cfg.Color = v.GetBool("color")
	cfg.Listen = v.GetString("listen")
	cfg.MockListen = v.GetString("mock_listen")

	if cfg.RequestTimeout, err = durationKey(v, "request_timeout"); err != nil {
		return nil, err
	}
	if cfg.ResponseTimeout, err = durationKey(v, "response_timeout"); err != nil {
		return nil, err
	}
	if cfg.CommandTimeout, err = durationKey(v, "command_timeout"); err != nil {
		return nil, err
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.Color = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that have a closed set of values.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url is empty")
	}
	switch c.ErrorPolicy {
	case "log", "surface":
	default:
		return fmt.Errorf("invalid error_policy: %s", c.ErrorPolicy)
	}
	for key, d := range map[string]time.Duration{
		"request_timeout":  c.RequestTimeout,
		"response_timeout": c.ResponseTimeout,
		"command_timeout":  c.CommandTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative", key)
		}
	}
	return nil
}

// YAML renders the effective settings.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// EnvVar returns the environment variable name for a key.
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(key)
}

// readDotEnv reads the TASKSYNC_* entries of the given .env files. Missing
// files are skipped; later files win.
func readDotEnv(paths ...string) (map[string]string, error) {
	out := make(map[string]string)
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		vars, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		for name, val := range vars {
			if !strings.HasPrefix(name, EnvPrefix+"_") {
				continue
			}
			key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix+"_"))
			out[key] = val
		}
	}
	return out, nil
}

// maxMillis is the largest millisecond count a time.Duration can hold.
const maxMillis = math.MaxInt64 / int64(time.Millisecond)

// millis converts a bare millisecond count, rejecting values that overflow.
func millis(key string, n int64) (time.Duration, error) {
	if n > maxMillis || n < -maxMillis {
		return 0, fmt.Errorf("invalid %s: %d", key, n)
	}
	return time.Duration(n) * time.Millisecond, nil
}

// durationKey reads a timeout. Bare numbers are milliseconds, anything else
// must parse with time.ParseDuration.
func durationKey(v *viper.Viper, key string) (time.Duration, error) {
	switch raw := v.Get(key).(type) {
	case nil:
		return 0, nil
	case time.Duration:
		return raw, nil
	case int:
		return millis(key, int64(raw))
	case int64:
		return millis(key, raw)
	case float64:
		if raw > float64(maxMillis) || raw < -float64(maxMillis) {
			return 0, fmt.Errorf("invalid %s: %v", key, raw)
		}
		return time.Duration(raw * float64(time.Millisecond)), nil
	case string:
		s := strings.TrimSpace(raw)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return millis(key, n)
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, raw)
		}
		return d, nil
	default:
		return 0, fmt.Errorf("invalid %s: %v", key, raw)
	}
}
