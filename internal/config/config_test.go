package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listsync/internal/config"
)

func writeSettings(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte(body), 0600))
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, config.DefaultSettings(), cfg.Settings)
	assert.False(t, cfg.HasCredentials())
}

func TestLoad_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, `
backend: github
github:
  repo: someone/todo
  token: secret
  branch: main
paths:
  tasks: lists.txt
probe:
  timeout: 500ms
autosave: false
lists:
  count: 4
`)

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "someone/todo", cfg.GitHub.Repo)
	assert.Equal(t, "main", cfg.GitHub.Branch)
	assert.Equal(t, "lists.txt", cfg.Paths.Tasks)
	assert.Equal(t, "ToDoListNames.txt", cfg.Paths.Names, "unset keys keep defaults")
	assert.Equal(t, 500*time.Millisecond, cfg.Probe.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Probe.Interval)
	assert.False(t, cfg.Autosave)
	assert.Equal(t, 4, cfg.Lists.Count)
	assert.True(t, cfg.HasCredentials())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "github:\n  repo: someone/todo\n  token: from-file\n")
	t.Setenv("LISTSYNC_GITHUB_TOKEN", "from-env")

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.GitHub.Token)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown backend", "backend: dropbox\n"},
		{"zero lists", "lists:\n  count: 0\n"},
		{"same paths", "paths:\n  tasks: a.txt\n  names: a.txt\n"},
		{"bad yaml", "backend: [\n"},
		{"zero check interval", "probe:\n  interval: 0s\n"},
		{"negative check interval", "probe:\n  interval: -5s\n"},
		{"negative check timeout", "probe:\n  timeout: -1s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeSettings(t, dir, tt.body)

			_, err := config.Load(dir)
			assert.Error(t, err)
		})
	}
}

func TestLoad_EnvIntervalValidated(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LISTSYNC_PROBE_INTERVAL", "0s")

	_, err := config.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "probe.interval must be positive")
}

func TestHasCredentials_Drive(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.New(dir)
	require.NoError(t, err)
	cfg.Backend = config.BackendDrive

	assert.False(t, cfg.HasCredentials())

	require.NoError(t, os.WriteFile(cfg.OAuthClientPath(), []byte("{}"), 0600))
	require.NoError(t, os.WriteFile(cfg.TokenPath(), []byte("{}"), 0600))
	assert.True(t, cfg.HasCredentials())

	require.NoError(t, cfg.RemoveToken())
	assert.False(t, cfg.HasToken())
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	assert.Equal(t, filepath.Join("/tmp/xdg", config.AppName), config.DefaultConfigDir())
}
