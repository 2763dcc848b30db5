// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Storage    StorageConfig    `toml:"storage"`
	UI         UIConfig         `toml:"ui"`
	Engagement EngagementConfig `toml:"engagement"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath      string `toml:"db_path"`
	SaveTimeout string `toml:"save_timeout"` // Go duration, e.g. "5s"
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme         string `toml:"theme"`           // "mocha", "macchiato", "frappe", "latte", "light"
	WeekWidth     int    `toml:"week_width"`      // cells per week column
	DoubleClickMS int    `toml:"double_click_ms"` // max gap between presses of a double-click
	ShowAmount    bool   `toml:"show_amount"`     // append the amount to row labels
}

// EngagementConfig selects which engagement the TUI opens.
type EngagementConfig struct {
	Default string `toml:"default"` // engagement id; empty means most recent
}

// Limits for UI settings.
const (
	MinWeekWidth = 3
	MaxWeekWidth = 12
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			DBPath:      defaultDBPath(),
			SaveTimeout: "5s",
		},
		UI: UIConfig{
			Theme:         "frappe",
			WeekWidth:     5,
			DoubleClickMS: 400,
			ShowAmount:    true,
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "weekline.db"
	}
	return filepath.Join(home, ".local", "share", "weekline", "weekline.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "weekline", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

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
	// Storage overrides
	if v := os.Getenv("WEEKLINE_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("WEEKLINE_SAVE_TIMEOUT"); v != "" {
		cfg.Storage.SaveTimeout = v
	}

	// UI overrides
	if v := os.Getenv("WEEKLINE_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("WEEKLINE_WEEK_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WEEKLINE_WEEK_WIDTH: %w", err)
		}
		cfg.UI.WeekWidth = n
	}
	if v := os.Getenv("WEEKLINE_DOUBLE_CLICK_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WEEKLINE_DOUBLE_CLICK_MS: %w", err)
		}
		cfg.UI.DoubleClickMS = n
	}

	if v := os.Getenv("WEEKLINE_ENGAGEMENT"); v != "" {
		cfg.Engagement.Default = v
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
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	d, err := time.ParseDuration(c.Storage.SaveTimeout)
	if err != nil {
		return fmt.Errorf("save_timeout must be a duration like \"5s\", got %q", c.Storage.SaveTimeout)
	}
	if d <= 0 {
		return errors.New("save_timeout must be positive")
	}
	if c.UI.WeekWidth < MinWeekWidth || c.UI.WeekWidth > MaxWeekWidth {
		return fmt.Errorf("week_width must be between %d and %d, got %d", MinWeekWidth, MaxWeekWidth, c.UI.WeekWidth)
	}
	if c.UI.DoubleClickMS < 50 || c.UI.DoubleClickMS > 2000 {
		return fmt.Errorf("double_click_ms must be between 50 and 2000, got %d", c.UI.DoubleClickMS)
	}
	return nil
}

// SaveTimeoutDuration returns the per-save deadline. Invalid values fall back
// to five seconds; Validate rejects them on load.
func (c *Config) SaveTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Storage.SaveTimeout)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

// DoubleClickWindow returns the double-click window as a duration.
func (c *Config) DoubleClickWindow() time.Duration {
	return time.Duration(c.UI.DoubleClickMS) * time.Millisecond
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
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
