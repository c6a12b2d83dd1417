// Package config handles TOML-based configuration loading and validation.
// The file is parsed as data only; nothing in it is executed.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"reel/internal/extract"
	"reel/internal/httputil"
	"reel/internal/media"
	"reel/internal/mediaflow"
)

// Players lists the supported external players.
var Players = []string{"mpv", "vlc", "iina", "celluloid"}

// Config holds all application configuration.
type Config struct {
	Locale            string   `toml:"locale"`
	Player            string   `toml:"player"`
	TimeoutSeconds    int      `toml:"timeout_seconds"`
	RequestsPerSecond float64  `toml:"requests_per_second"`
	UserAgent         string   `toml:"user_agent"`
	MediaFlowURL      string   `toml:"mediaflow_proxy_url"`
	MediaFlowPassword string   `toml:"mediaflow_proxy_password"`
	VidSrcServers     []string `toml:"vidsrc_servers"`
	DownloadDir       string   `toml:"download_dir"`
	LogLevel          string   `toml:"log_level"`
	Debug             bool     `toml:"debug"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Locale:            string(media.EN),
		Player:            "mpv",
		TimeoutSeconds:    int(httputil.DefaultTimeout / time.Second),
		RequestsPerSecond: 5,
		UserAgent:         httputil.DefaultUserAgent,
		VidSrcServers:     append([]string(nil), extract.DefaultVidSrcServers...),
		DownloadDir:       "~/Videos/reel",
		LogLevel:          "warning",
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "reel"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "reel"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := lo.Map(undecoded, func(k toml.Key, _ int) string { return k.String() })
		return nil, fmt.Errorf("parsing config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	if _, err := media.ParseCountryCode(c.Locale); err != nil {
		return err
	}

	if !lo.Contains(Players, strings.ToLower(c.Player)) {
		return fmt.Errorf("unsupported player %q (valid: %s)", c.Player, strings.Join(Players, ", "))
	}

	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second cannot be negative, got %g", c.RequestsPerSecond)
	}

	if (c.MediaFlowURL == "") != (c.MediaFlowPassword == "") {
		return fmt.Errorf("mediaflow_proxy_url and mediaflow_proxy_password must be set together")
	}
	if c.MediaFlowURL != "" {
		if _, err := httputil.ValidateEndpoint(c.MediaFlowURL); err != nil {
			return fmt.Errorf("mediaflow_proxy_url: %w", err)
		}
	}

	servers := lo.Map(c.VidSrcServers, func(s string, _ int) string { return strings.TrimSpace(s) })
	if len(lo.Compact(servers)) == 0 {
		return fmt.Errorf("vidsrc_servers cannot be empty")
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	return nil
}

// CountryCode returns the validated locale.
func (c *Config) CountryCode() media.CountryCode {
	cc, err := media.ParseCountryCode(c.Locale)
	if err != nil {
		return media.EN
	}
	return cc
}

// Timeout returns the per-request HTTP timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// MediaFlow returns the proxy settings for the request context.
func (c *Config) MediaFlow() mediaflow.Config {
	return mediaflow.Config{URL: c.MediaFlowURL, Password: c.MediaFlowPassword}
}

// Servers returns the trimmed, de-duplicated VidSrc allow-list.
func (c *Config) Servers() []string {
	trimmed := lo.Map(c.VidSrcServers, func(s string, _ int) string { return strings.TrimSpace(s) })
	return lo.Uniq(lo.Compact(trimmed))
}

// Level returns the logrus level, forcing debug when Debug is set.
func (c *Config) Level() logrus.Level {
	if c.Debug {
		return logrus.DebugLevel
	}
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.WarnLevel
	}
	return lvl
}

// ExpandDownloadDir resolves ~ in the download directory path.
func (c *Config) ExpandDownloadDir() (string, error) {
	dir := c.DownloadDir
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding home dir: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}
	return filepath.Abs(dir)
}
