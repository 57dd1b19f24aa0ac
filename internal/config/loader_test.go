package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasksync/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

func load(t *testing.T, opts config.Options) *config.Config {
	t.Helper()
	if opts.Dir == "" {
		opts.Dir = t.TempDir()
	}
	if opts.WorkDir == "" {
		opts.WorkDir = t.TempDir()
	}
	cfg, err := config.New(opts)
	require.NoError(t, err)
	return cfg
}

func TestNew_DefaultsToProduction(t *testing.T) {
	cfg := load(t, config.Options{})

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "https://d128yqhncqex8w.cloudfront.net", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 15*time.Second, cfg.ResponseTimeout)
	assert.Equal(t, 15*time.Second, cfg.CommandTimeout)
	assert.Equal(t, "log", cfg.ErrorPolicy)
	assert.Equal(t, "127.0.0.1:3000", cfg.Listen)
}

func TestNew_BuiltinProfiles(t *testing.T) {
	for _, name := range config.ProfileNames() {
		cfg := load(t, config.Options{Env: name})
		p := config.Profiles[name]

		assert.Equal(t, name, cfg.Env)
		assert.Equal(t, p.BaseURL, cfg.BaseURL)
		assert.Equal(t, p.RequestTimeout, cfg.RequestTimeout)
		assert.GreaterOrEqual(t, cfg.RequestTimeout, 10*time.Second)
		assert.LessOrEqual(t, cfg.RequestTimeout, 30*time.Second)
	}
}

func TestNew_UnknownEnvironment(t *testing.T) {
	_, err := config.New(config.Options{Dir: t.TempDir(), WorkDir: t.TempDir(), Env: "qa"})
	require.Error(t, err)
	assert.Equal(t, "unknown environment: qa", err.Error())
}

func TestNew_ConfigFileAndSections(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.ConfigFile, `
env: qa
error_policy: surface
request_timeout: 12s
environments:
  qa:
    base_url: http://qa.internal:9000
    command_timeout: 20000
  staging:
    base_url: http://never.used
`)

	cfg := load(t, config.Options{Dir: dir})

	assert.Equal(t, "qa", cfg.Env)
	assert.Equal(t, "http://qa.internal:9000", cfg.BaseURL)
	assert.Equal(t, "surface", cfg.ErrorPolicy)
	assert.Equal(t, 12*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 20*time.Second, cfg.CommandTimeout)
}

func TestNew_SectionOverridesTopLevel(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.ConfigFile, `
base_url: http://top.level
environments:
  staging:
    base_url: http://staging.section
`)

	assert.Equal(t, "http://staging.section", load(t, config.Options{Dir: dir, Env: "staging"}).BaseURL)
	assert.Equal(t, "http://top.level", load(t, config.Options{Dir: dir, Env: "local"}).BaseURL)
}

func TestNew_DotEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	work := t.TempDir()
	writeFile(t, dir, config.ConfigFile, "environments:\n  local:\n    base_url: http://from.file\n")
	writeFile(t, dir, config.DotEnvFile, "TASKSYNC_BASE_URL=http://from.configdir.env\nOTHER=ignored\n")
	writeFile(t, work, config.DotEnvFile, "TASKSYNC_REQUEST_TIMEOUT=25s\n")

	cfg := load(t, config.Options{Dir: dir, WorkDir: work, Env: "local"})

	assert.Equal(t, "http://from.configdir.env", cfg.BaseURL)
	assert.Equal(t, 25*time.Second, cfg.RequestTimeout)
	_, leaked := os.LookupEnv("TASKSYNC_REQUEST_TIMEOUT")
	assert.False(t, leaked, ".env must not modify the process environment")
}

func TestNew_EnvironmentBeatsDotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.DotEnvFile, "TASKSYNC_BASE_URL=http://from.env.file\n")
	t.Setenv("TASKSYNC_BASE_URL", "http://from.process")
	t.Setenv("TASKSYNC_ENV", "staging")

	cfg := load(t, config.Options{Dir: dir})

	assert.Equal(t, "staging", cfg.Env)
	assert.Equal(t, "http://from.process", cfg.BaseURL)
}

func TestNew_OptionsWin(t *testing.T) {
	t.Setenv("TASKSYNC_BASE_URL", "http://from.process")

	cfg := load(t, config.Options{Env: "local", BaseURL: "http://from.flag"})

	assert.Equal(t, "http://from.flag", cfg.BaseURL)
}

func TestNew_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, load(t, config.Options{}).Color)
}

func TestNew_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.ConfigFile, "error_policy: shout\n")
	_, err := config.New(config.Options{Dir: dir, WorkDir: t.TempDir()})
	assert.EqualError(t, err, "invalid error_policy: shout")

	dir = t.TempDir()
	writeFile(t, dir, config.ConfigFile, "request_timeout: soon\n")
	_, err = config.New(config.Options{Dir: dir, WorkDir: t.TempDir()})
	assert.EqualError(t, err, "invalid request_timeout: soon")
}

func TestNew_DurationOverflow(t *testing.T) {
	for _, v := range []string{"10000000000000", "20000000000000", "-10000000000000"} {
		t.Setenv("TASKSYNC_REQUEST_TIMEOUT", v)
		_, err := config.New(config.Options{Dir: t.TempDir(), WorkDir: t.TempDir()})
		assert.EqualError(t, err, "invalid request_timeout: "+v)
	}

	dir := t.TempDir()
	writeFile(t, dir, config.ConfigFile, "response_timeout: 99999999999999\n")
	_, err := config.New(config.Options{Dir: dir, WorkDir: t.TempDir()})
	assert.EqualError(t, err, "invalid response_timeout: 99999999999999")
}

func TestNew_LargestMillisecondTimeout(t *testing.T) {
	t.Setenv("TASKSYNC_REQUEST_TIMEOUT", "9223372036854")
	cfg := load(t, config.Options{})
	assert.Equal(t, 9223372036854*time.Millisecond, cfg.RequestTimeout)
}

func TestConfig_YAML(t *testing.T) {
	cfg := load(t, config.Options{Env: "local"})

	data, err := cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "env: local\n")
	assert.Contains(t, string(data), "base_url: http://localhost:8080\n")
	assert.Contains(t, string(data), "request_timeout: 10s\n")
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "tasksync"), config.DefaultConfigDir())
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "TASKSYNC_BASE_URL", config.EnvVar("base_url"))
}
