// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/schedwidget/internal/dateutil"
	"github.com/javiermolinar/schedwidget/internal/render"
	"github.com/javiermolinar/schedwidget/internal/viewmodel"
)

// Config holds the application configuration.
type Config struct {
	Widget  WidgetConfig  `toml:"widget"`
	Options OptionsConfig `toml:"options"`
	Data    DataConfig    `toml:"data"`
	Storage StorageConfig `toml:"storage"`
	Export  ExportConfig  `toml:"export"`
	UI      UIConfig      `toml:"ui"`
}

// WidgetConfig holds the widget mount settings.
type WidgetConfig struct {
	ContainerID string `toml:"container_id"`
	Theme       string `toml:"theme"`        // e.g. "mountain-retreat"
	DisplayMode string `toml:"display_mode"` // "tabs", "accordion", "full-scroll", "timeline"
}

// OptionsConfig mirrors the widget display options.
type OptionsConfig struct {
	ShowSearch       bool   `toml:"show_search"`
	EnableExport     bool   `toml:"enable_export"`
	ShowIcons        bool   `toml:"show_icons"`
	Language         string `toml:"language"`    // "ro" or "en"
	TimeFormat       string `toml:"time_format"` // "24h" or "12h"
	HighlightCurrent bool   `toml:"highlight_current"`
	ShowEndTimes     bool   `toml:"show_end_times"`
	ShowSpeakers     bool   `toml:"show_speakers"`
	ShowLocations    bool   `toml:"show_locations"`
	ShowThemeToggle  bool   `toml:"show_theme_toggle"`
}

// DataConfig points at the schedule document.
type DataConfig struct {
	Path  string `toml:"path"`
	Watch bool   `toml:"watch"` // reload the widget when the file changes
}

// StorageConfig holds preference storage settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"` // empty keeps preferences in memory
}

// ExportConfig holds calendar export settings.
type ExportConfig struct {
	Dir        string `toml:"dir"`
	ListenAddr string `toml:"listen_addr"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Palette string `toml:"palette"` // terminal palette; empty follows the widget theme
}

// Default returns the default configuration.
func Default() *Config {
	opts := render.DefaultOptions()
	return &Config{
		Widget: WidgetConfig{
			ContainerID: "schedule-widget",
			Theme:       "mountain-retreat",
			DisplayMode: string(viewmodel.ModeTabs),
		},
		Options: OptionsConfig{
			ShowSearch:       opts.ShowSearch,
			EnableExport:     opts.EnableExport,
			ShowIcons:        opts.ShowIcons,
			Language:         opts.Language,
			TimeFormat:       opts.TimeFormat,
			HighlightCurrent: opts.HighlightCurrent,
			ShowEndTimes:     opts.ShowEndTimes,
			ShowSpeakers:     opts.ShowSpeakers,
			ShowLocations:    opts.ShowLocations,
			ShowThemeToggle:  opts.ShowThemeToggle,
		},
		Data: DataConfig{
			Path: "schedule.json",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Export: ExportConfig{
			Dir:        ".",
			ListenAddr: "127.0.0.1:8080",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "schedwidget.db"
	}
	return filepath.Join(home, ".local", "share", "schedwidget", "schedwidget.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "schedwidget", "config.toml")
}

// LoadDotEnv loads a .env file into the environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	// Apply environment variable overrides
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	// Expand paths
	cfg.Data.Path = expandPath(cfg.Data.Path)
	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Export.Dir = expandPath(cfg.Export.Dir)

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	// Widget overrides
	if v := os.Getenv("SCHEDWIDGET_CONTAINER_ID"); v != "" {
		cfg.Widget.ContainerID = v
	}
	if v := os.Getenv("SCHEDWIDGET_THEME"); v != "" {
		cfg.Widget.Theme = v
	}
	if v := os.Getenv("SCHEDWIDGET_DISPLAY_MODE"); v != "" {
		cfg.Widget.DisplayMode = v
	}

	// Option overrides
	if v := os.Getenv("SCHEDWIDGET_LANGUAGE"); v != "" {
		cfg.Options.Language = v
	}
	if v := os.Getenv("SCHEDWIDGET_TIME_FORMAT"); v != "" {
		cfg.Options.TimeFormat = v
	}
	bools := []struct {
		env string
		dst *bool
	}{
		{"SCHEDWIDGET_SHOW_SEARCH", &cfg.Options.ShowSearch},
		{"SCHEDWIDGET_ENABLE_EXPORT", &cfg.Options.EnableExport},
		{"SCHEDWIDGET_SHOW_ICONS", &cfg.Options.ShowIcons},
		{"SCHEDWIDGET_HIGHLIGHT_CURRENT", &cfg.Options.HighlightCurrent},
		{"SCHEDWIDGET_SHOW_END_TIMES", &cfg.Options.ShowEndTimes},
		{"SCHEDWIDGET_SHOW_SPEAKERS", &cfg.Options.ShowSpeakers},
		{"SCHEDWIDGET_SHOW_LOCATIONS", &cfg.Options.ShowLocations},
		{"SCHEDWIDGET_SHOW_THEME_TOGGLE", &cfg.Options.ShowThemeToggle},
		{"SCHEDWIDGET_WATCH", &cfg.Data.Watch},
	}
	for _, b := range bools {
		v := os.Getenv(b.env)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", b.env, err)
		}
		*b.dst = parsed
	}

	// Data and storage overrides
	if v := os.Getenv("SCHEDWIDGET_DATA"); v != "" {
		cfg.Data.Path = v
	}
	if v, ok := os.LookupEnv("SCHEDWIDGET_DB_PATH"); ok {
		cfg.Storage.DBPath = v
	}

	// Export overrides
	if v := os.Getenv("SCHEDWIDGET_EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}
	if v := os.Getenv("SCHEDWIDGET_LISTEN_ADDR"); v != "" {
		cfg.Export.ListenAddr = v
	}

	// UI overrides
	if v := os.Getenv("SCHEDWIDGET_UI_PALETTE"); v != "" {
		cfg.UI.Palette = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Widget.ContainerID == "" {
		return errors.New("container_id must be set")
	}
	if c.Widget.Theme == "" {
		return errors.New("theme must be set")
	}
	if _, err := viewmodel.ParseDisplayMode(c.Widget.DisplayMode); err != nil {
		return fmt.Errorf("display_mode: %w", err)
	}
	switch c.Options.Language {
	case render.LangRO, render.LangEN:
	default:
		return fmt.Errorf("invalid language: %s", c.Options.Language)
	}
	switch c.Options.TimeFormat {
	case dateutil.Format24h, dateutil.Format12h:
	default:
		return fmt.Errorf("time_format must be %q or %q, got %q", dateutil.Format24h, dateutil.Format12h, c.Options.TimeFormat)
	}
	if c.Data.Path == "" {
		return errors.New("data path must be set")
	}
	return nil
}

// RenderOptions converts the options section for the renderer.
func (c *Config) RenderOptions() render.Options {
	return render.Options{
		ShowSearch:       c.Options.ShowSearch,
		EnableExport:     c.Options.EnableExport,
		ShowIcons:        c.Options.ShowIcons,
		Language:         c.Options.Language,
		TimeFormat:       c.Options.TimeFormat,
		HighlightCurrent: c.Options.HighlightCurrent,
		ShowEndTimes:     c.Options.ShowEndTimes,
		ShowSpeakers:     c.Options.ShowSpeakers,
		ShowLocations:    c.Options.ShowLocations,
		ShowThemeToggle:  c.Options.ShowThemeToggle,
	}
}

// DisplayMode returns the configured display mode. Validate guarantees it
// parses.
func (c *Config) DisplayMode() viewmodel.DisplayMode {
	return viewmodel.DisplayMode(c.Widget.DisplayMode)
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
