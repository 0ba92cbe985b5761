// Package config holds the service configuration, loaded once at startup
// and passed down explicitly.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all plycat configuration.
type Config struct {
	// Source locates the published sheet export.
	Source SourceConfig `yaml:"source"`

	// Server configures the catalog front end.
	Server ServerConfig `yaml:"server"`

	// Admin configures write-back to the remote script endpoint.
	Admin AdminConfig `yaml:"admin"`

	// Debug enables development logging.
	Debug bool `yaml:"debug"`
}

// SourceConfig locates the catalog data.
type SourceConfig struct {
	// URL of the published CSV/XLSX export. Takes precedence over Path.
	URL string `yaml:"url"`
	// Path to a local export file, mainly for development.
	Path string `yaml:"path"`
	// Format is csv, xlsx, or auto.
	Format string `yaml:"format"`
	// FetchTimeout bounds a single fetch, e.g. "15s".
	FetchTimeout string `yaml:"fetch_timeout"`
	// Watch reloads a Path source when the file changes.
	Watch bool `yaml:"watch"`
}

// ServerConfig configures the HTTP front end.
type ServerConfig struct {
	// Listen is the bind address, e.g. ":8080".
	Listen string `yaml:"listen"`
	// Title is shown on the catalog page.
	Title string `yaml:"title"`
	// RefreshSchedule is a cron spec for background refresh, e.g.
	// "@every 5m". Empty disables scheduled refresh.
	RefreshSchedule string `yaml:"refresh_schedule"`
}

// AdminConfig configures the remote write-back endpoint.
type AdminConfig struct {
	// ScriptURL is the remote script endpoint receiving edits.
	ScriptURL string `yaml:"script_url"`
	// ProxyURL, when set, receives edits instead of ScriptURL.
	ProxyURL string `yaml:"proxy_url"`
	// DirectPost forces posting to ScriptURL even when ProxyURL is set.
	DirectPost bool `yaml:"direct_post"`
	// Token authenticates edits.
	Token string `yaml:"token"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Source: SourceConfig{
			Format:       "auto",
			FetchTimeout: "15s",
		},
		Server: ServerConfig{
			Listen:          ":8080",
			Title:           "Plywood catalog",
			RefreshSchedule: "@every 5m",
		},
	}
}

// Load reads the configuration file at path, falling back to defaults when
// path is empty or the file does not exist, then applies environment
// overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides file values from PLYCAT_* environment variables.
func (c *Config) applyEnv() {
	setEnv := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setEnv(&c.Source.URL, "PLYCAT_SOURCE_URL")
	setEnv(&c.Source.Path, "PLYCAT_SOURCE_PATH")
	setEnv(&c.Source.Format, "PLYCAT_SOURCE_FORMAT")
	setEnv(&c.Server.Listen, "PLYCAT_LISTEN")
	setEnv(&c.Admin.ScriptURL, "PLYCAT_ADMIN_SCRIPT_URL")
	setEnv(&c.Admin.ProxyURL, "PLYCAT_ADMIN_PROXY_URL")
	setEnv(&c.Admin.Token, "PLYCAT_ADMIN_TOKEN")
	if v := os.Getenv("PLYCAT_DEBUG"); v == "1" || v == "true" {
		c.Debug = true
	}
}

// Validate checks the configuration for inconsistencies.
func (c Config) Validate() error {
	if c.Source.URL == "" && c.Source.Path == "" {
		return fmt.Errorf("config: source.url or source.path is required")
	}
	switch c.Source.Format {
	case "", "auto", "csv", "xlsx":
	default:
		return fmt.Errorf("config: invalid source.format %q (must be auto, csv, or xlsx)", c.Source.Format)
	}
	if _, err := c.FetchTimeout(); err != nil {
		return fmt.Errorf("config: invalid source.fetch_timeout: %w", err)
	}
	if c.Source.Watch && c.Source.Path == "" {
		return fmt.Errorf("config: source.watch requires source.path")
	}
	return nil
}

// FetchTimeout returns the parsed fetch timeout.
func (c Config) FetchTimeout() (time.Duration, error) {
	if c.Source.FetchTimeout == "" {
		return 15 * time.Second, nil
	}
	return time.ParseDuration(c.Source.FetchTimeout)
}
