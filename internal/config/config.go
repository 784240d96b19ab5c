// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Grid      GridConfig       `toml:"grid"`
	Storage   StorageConfig    `toml:"storage"`
	UI        UIConfig         `toml:"ui"`
	Refresh   RefreshConfig    `toml:"refresh"`
	Feeds     []FeedConfig     `toml:"feeds"`
	Calendars []CalendarConfig `toml:"calendars"`
}

// GridConfig holds the visible day-grid range.
type GridConfig struct {
	DayStart string `toml:"day_start"` // e.g., "07:00"
	DayEnd   string `toml:"day_end"`   // e.g., "22:00"
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// RefreshConfig holds the feed refresh schedule.
type RefreshConfig struct {
	Schedule string `toml:"schedule"` // cron expression, e.g. "*/15 * * * *"
}

// FeedConfig describes one subscribed ICS feed.
type FeedConfig struct {
	AccountID  string `toml:"account"`
	CalendarID string `toml:"calendar"`
	URL        string `toml:"url"`
}

// CalendarConfig describes a calendar blocks can be shown on and, when
// writable, created on.
type CalendarConfig struct {
	AccountID  string `toml:"account"`
	CalendarID string `toml:"calendar"`
	Summary    string `toml:"summary"`
	Writable   bool   `toml:"writable"`
	Default    bool   `toml:"default"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			DayStart: "07:00",
			DayEnd:   "22:00",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "frappe",
		},
		Refresh: RefreshConfig{
			Schedule: "*/15 * * * *",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tempo.db"
	}
	return filepath.Join(home, ".local", "share", "tempo", "tempo.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "tempo", "config.toml")
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

	applyEnvOverrides(cfg)

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
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TEMPO_DAY_START"); v != "" {
		cfg.Grid.DayStart = v
	}
	if v := os.Getenv("TEMPO_DAY_END"); v != "" {
		cfg.Grid.DayEnd = v
	}
	if v := os.Getenv("TEMPO_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("TEMPO_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("TEMPO_REFRESH_SCHEDULE"); v != "" {
		cfg.Refresh.Schedule = v
	}
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
	if err := validateTime(c.Grid.DayStart, "day_start"); err != nil {
		return err
	}
	if err := validateTime(c.Grid.DayEnd, "day_end"); err != nil {
		return err
	}
	if c.Grid.DayStart >= c.Grid.DayEnd {
		return errors.New("day_start must be before day_end")
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if c.Refresh.Schedule == "" {
		return errors.New("refresh schedule must be set")
	}

	for i, f := range c.Feeds {
		if f.URL == "" {
			return fmt.Errorf("feed %d: url must be set", i)
		}
		if f.CalendarID == "" {
			return fmt.Errorf("feed %d: calendar must be set", i)
		}
	}

	defaults := 0
	for i, cal := range c.Calendars {
		if cal.CalendarID == "" {
			return fmt.Errorf("calendar %d: calendar id must be set", i)
		}
		if cal.Default {
			defaults++
		}
	}
	if defaults > 1 {
		return errors.New("at most one calendar may be marked default")
	}

	return nil
}

// validateTime checks if a time string is in HH:MM format.
func validateTime(t, field string) error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	hour := t[0:2]
	min := t[3:5]
	if !isDigits(hour) || !isDigits(min) {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	return nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
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
