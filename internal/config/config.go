// Package config handles the XDG configuration directory, file paths and
// settings loaded from config.yaml and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// AppName is the application directory name.
	AppName = "listsync"

	// SettingsFile is the settings filename inside the config directory.
	SettingsFile = "config.yaml"

	// OAuthClientFile is the OAuth client credentials filename (Drive backend).
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename (Drive backend).
	TokenFile = "token.json"

	// EnvPrefix prefixes environment overrides, e.g. LISTSYNC_GITHUB_TOKEN.
	EnvPrefix = "LISTSYNC"
)

// Backend names accepted by the backend setting.
const (
	BackendGitHub = "github"
	BackendDrive  = "gdrive"
)

// GitHub holds the settings of the GitHub contents backend.
type GitHub struct {
	Repo   string `mapstructure:"repo"`
	Token  string `mapstructure:"token"`
	Branch string `mapstructure:"branch"`
	APIURL string `mapstructure:"api_url"`
}

// Paths names the two remote payloads.
type Paths struct {
	Tasks string `mapstructure:"tasks"`
	Names string `mapstructure:"names"`
}

// Probe configures the connectivity check.
type Probe struct {
	URL      string        `mapstructure:"url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Interval time.Duration `mapstructure:"interval"`
}

// Lists configures the fixed list set.
type Lists struct {
	Count int `mapstructure:"count"`
}

// Log configures the optional rotating log file.
type Log struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// Settings is the content of config.yaml.
type Settings struct {
	Backend  string `mapstructure:"backend"`
	GitHub   GitHub `mapstructure:"github"`
	Paths    Paths  `mapstructure:"paths"`
	Probe    Probe  `mapstructure:"probe"`
	Autosave bool   `mapstructure:"autosave"`
	Lists    Lists  `mapstructure:"lists"`
	Log      Log    `mapstructure:"log"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	Settings
}

// DefaultSettings returns the settings used when config.yaml is absent.
func DefaultSettings() Settings {
	return Settings{
		Backend: BackendGitHub,
		GitHub:  GitHub{APIURL: "https://api.github.com"},
		Paths: Paths{
			Tasks: "ToDoList.txt",
			Names: "ToDoListNames.txt",
		},
		Probe: Probe{
			URL:      "https://api.github.com",
			Timeout:  2 * time.Second,
			Interval: 30 * time.Second,
		},
		Autosave: true,
		Lists:    Lists{Count: 10},
		Log:      Log{MaxSizeMB: 5, MaxBackups: 3},
	}
}

// New creates a new Config with the default or specified config directory
// and default settings. If configDir is empty, uses XDG_CONFIG_HOME/listsync
// or $HOME/.config/listsync.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir, Settings: DefaultSettings()}, nil
}

// Load is New followed by reading config.yaml (if present) and LISTSYNC_*
// environment overrides.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}
	if err := loadFile(cfg.SettingsPath(), &cfg.Settings); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, s *Settings) error {
	v := viper.New()
	setDefaults(v, *s)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return v.Unmarshal(s)
}

// setDefaults registers every key so AutomaticEnv can override keys that
// the file does not mention.
func setDefaults(v *viper.Viper, s Settings) {
	v.SetDefault("backend", s.Backend)
	v.SetDefault("github.repo", s.GitHub.Repo)
	v.SetDefault("github.token", s.GitHub.Token)
	v.SetDefault("github.branch", s.GitHub.Branch)
	v.SetDefault("github.api_url", s.GitHub.APIURL)
	v.SetDefault("paths.tasks", s.Paths.Tasks)
	v.SetDefault("paths.names", s.Paths.Names)
	v.SetDefault("probe.url", s.Probe.URL)
	v.SetDefault("probe.timeout", s.Probe.Timeout)
	v.SetDefault("probe.interval", s.Probe.Interval)
	v.SetDefault("autosave", s.Autosave)
	v.SetDefault("lists.count", s.Lists.Count)
	v.SetDefault("log.file", s.Log.File)
	v.SetDefault("log.max_size_mb", s.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", s.Log.MaxBackups)
}

// Validate checks settings that would otherwise fail deep inside a command.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendGitHub, BackendDrive:
	default:
		return fmt.Errorf("unknown backend: %q (want %s or %s)", c.Backend, BackendGitHub, BackendDrive)
	}
	if c.Lists.Count < 1 {
		return fmt.Errorf("lists.count must be at least 1, got %d", c.Lists.Count)
	}
	if c.Paths.Tasks == "" || c.Paths.Names == "" {
		return errors.New("paths.tasks and paths.names must be set")
	}
	if c.Paths.Tasks == c.Paths.Names {
		return errors.New("paths.tasks and paths.names must differ")
	}
	if c.Probe.Interval <= 0 {
		return fmt.Errorf("probe.interval must be positive, got %s", c.Probe.Interval)
	}
	// Zero timeout falls back to the monitor's default.
	if c.Probe.Timeout < 0 {
		return fmt.Errorf("probe.timeout must not be negative, got %s", c.Probe.Timeout)
	}
	return nil
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

// SettingsPath returns the path to config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}

// HasCredentials reports whether the selected backend can authenticate.
func (c *Config) HasCredentials() bool {
	switch c.Backend {
	case BackendDrive:
		return c.HasOAuthClient() && c.HasToken()
	default:
		return c.GitHub.Repo != "" && c.GitHub.Token != ""
	}
}
