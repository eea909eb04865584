// Package config loads folio settings from an optional YAML file overlaid
// with FOLIO_* environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/Zachkp/folio/internal/sheet"
)

// DefaultPath is where the CLI looks for the config file.
const DefaultPath = "folio.yml"

const envPrefix = "FOLIO_"

// Config is the top-level configuration, corresponding to folio.yml.
type Config struct {
	Port           int         `yaml:"port" koanf:"port"`
	Mode           string      `yaml:"mode" koanf:"mode"`
	SiteURL        string      `yaml:"site_url" koanf:"site_url"`
	DataPath       string      `yaml:"data_path" koanf:"data_path"`
	DBPath         string      `yaml:"db_path" koanf:"db_path"`
	ImagesDir      string      `yaml:"images_dir" koanf:"images_dir"`
	TwitterHandle  string      `yaml:"twitter_handle" koanf:"twitter_handle"`
	SessionTTLDays int         `yaml:"session_ttl_days" koanf:"session_ttl_days"`
	Sheet          SheetConfig `yaml:"sheet" koanf:"sheet"`
	TUI            TUIConfig   `yaml:"tui" koanf:"tui"`
}

// SheetConfig tunes the desktop detail panel of the web page.
type SheetConfig struct {
	CloseThresholdPx    float64   `yaml:"close_threshold_px" koanf:"close_threshold_px"`
	SnapPoints          []float64 `yaml:"snap_points" koanf:"snap_points"`
	DefaultWidthPercent float64   `yaml:"default_width_percent" koanf:"default_width_percent"`
}

// Panel converts the settings into a sheet.Config.
func (s SheetConfig) Panel() sheet.Config {
	return sheet.Config{
		CloseThreshold:      s.CloseThresholdPx,
		SnapPoints:          s.SnapPoints,
		DefaultWidthPercent: s.DefaultWidthPercent,
	}
}

// TUIConfig tunes the terminal edition.
type TUIConfig struct {
	CloseThresholdCells float64 `yaml:"close_threshold_cells" koanf:"close_threshold_cells"`
}

// DefaultConfig returns a Config with the stock settings.
func DefaultConfig() *Config {
	panel := sheet.DefaultConfig()
	return &Config{
		Port:           8080,
		Mode:           "debug",
		SiteURL:        "http://localhost:8080",
		DBPath:         "data/folio.db",
		ImagesDir:      "images",
		SessionTTLDays: 365,
		Sheet: SheetConfig{
			CloseThresholdPx:    panel.CloseThreshold,
			SnapPoints:          panel.SnapPoints,
			DefaultWidthPercent: panel.DefaultWidthPercent,
		},
		TUI: TUIConfig{CloseThresholdCells: 20},
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variables (FOLIO_SITE_URL -> site_url, FOLIO_SHEET__SNAP_POINTS
// -> sheet.snap_points). A bare PORT is honored when FOLIO_PORT is unset.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if port := os.Getenv("PORT"); port != "" && os.Getenv(envPrefix+"PORT") == "" {
		if err := k.Set("port", port); err != nil {
			return nil, fmt.Errorf("applying PORT: %w", err)
		}
	}

	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	// Decoding into a populated slice only overwrites its prefix.
	if k.Exists("sheet.snap_points") {
		cfg.Sheet.SnapPoints = nil
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// envValue maps FOLIO_SHEET__SNAP_POINTS=40,50,70 to sheet.snap_points and
// splits comma lists.
func envValue(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	key = strings.ReplaceAll(key, "__", ".")
	if strings.Contains(value, ",") {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return key, parts
	}
	return key, value
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validModes = map[string]bool{"debug": true, "release": true, "test": true}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if !validModes[c.Mode] {
		return fmt.Errorf("invalid mode %q: must be one of debug, release, test", c.Mode)
	}
	u, err := url.Parse(c.SiteURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("site_url %q must be an absolute URL", c.SiteURL)
	}
	if c.SessionTTLDays < 0 {
		return fmt.Errorf("session_ttl_days must be non-negative")
	}
	if err := c.Sheet.Panel().Validate(); err != nil {
		return fmt.Errorf("sheet: %w", err)
	}
	if c.TUI.CloseThresholdCells < 0 {
		return fmt.Errorf("tui.close_threshold_cells must be non-negative")
	}
	return nil
}

// BaseURL is SiteURL without a trailing slash.
func (c *Config) BaseURL() string {
	return strings.TrimRight(c.SiteURL, "/")
}
