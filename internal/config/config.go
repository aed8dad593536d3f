// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Calendar CalendarConfig `toml:"calendar"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
}

// CalendarConfig holds the settings snapshot handed to the calendar renderer.
type CalendarConfig struct {
	StartOfWeek    string       `toml:"start_of_week"`   // "0" (Sunday) .. "6" (Saturday)
	MonthFormat    string       `toml:"month_format"`    // e.g., "YYYY-MM" or "MMMM YYYY"
	DatePattern    string       `toml:"date_pattern"`    // pattern of note file names, e.g., "YYYY-MM-DD"
	DisplayHead    bool         `toml:"display_head"`    // show the month label row
	EnableHTML     bool         `toml:"enable_html"`     // allow html-formatted entry content
	EnableMarkdown bool         `toml:"enable_markdown"` // allow markdown-formatted entry content
	SanitizeHTML   bool         `toml:"sanitize_html"`   // run html content through a sanitizer
	Labels         WeekdayNames `toml:"labels"`
}

// WeekdayNames holds the column label for each day of the week.
type WeekdayNames struct {
	Sunday    string `toml:"sunday"`
	Monday    string `toml:"monday"`
	Tuesday   string `toml:"tuesday"`
	Wednesday string `toml:"wednesday"`
	Thursday  string `toml:"thursday"`
	Friday    string `toml:"friday"`
	Saturday  string `toml:"saturday"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Calendar: CalendarConfig{
			StartOfWeek:    "0",
			MonthFormat:    "YYYY-MM",
			DatePattern:    "YYYY-MM-DD",
			DisplayHead:    true,
			EnableHTML:     false,
			EnableMarkdown: false,
			SanitizeHTML:   true,
			Labels: WeekdayNames{
				Sunday:    "Sun",
				Monday:    "Mon",
				Tuesday:   "Tue",
				Wednesday: "Wed",
				Thursday:  "Thu",
				Friday:    "Fri",
				Saturday:  "Sat",
			},
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "habitcal.db"
	}
	return filepath.Join(home, ".local", "share", "habitcal", "habitcal.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "habitcal", "config.toml")
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
	if v := os.Getenv("HABITCAL_START_OF_WEEK"); v != "" {
		cfg.Calendar.StartOfWeek = v
	}
	if v := os.Getenv("HABITCAL_MONTH_FORMAT"); v != "" {
		cfg.Calendar.MonthFormat = v
	}
	if v := os.Getenv("HABITCAL_DATE_PATTERN"); v != "" {
		cfg.Calendar.DatePattern = v
	}
	if v := os.Getenv("HABITCAL_ENABLE_HTML"); v != "" {
		cfg.Calendar.EnableHTML = parseBool(v, cfg.Calendar.EnableHTML)
	}
	if v := os.Getenv("HABITCAL_ENABLE_MARKDOWN"); v != "" {
		cfg.Calendar.EnableMarkdown = parseBool(v, cfg.Calendar.EnableMarkdown)
	}

	if v := os.Getenv("HABITCAL_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("HABITCAL_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

func parseBool(s string, fallback bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return b
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
	if _, err := parseStartOfWeek(c.Calendar.StartOfWeek); err != nil {
		return err
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

func parseStartOfWeek(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 6 {
		return 0, fmt.Errorf("start_of_week must be a number from 0 (Sunday) to 6 (Saturday), got %q", s)
	}
	return n, nil
}

// StartOfWeekIndex returns the configured first column of the grid,
// falling back to Sunday when the value cannot be parsed.
func (c *Config) StartOfWeekIndex() int {
	n, err := parseStartOfWeek(c.Calendar.StartOfWeek)
	if err != nil {
		return 0
	}
	return n
}

// WeekdayLabels returns the seven column labels, Sunday first.
func (c *Config) WeekdayLabels() [7]string {
	l := c.Calendar.Labels
	return [7]string{l.Sunday, l.Monday, l.Tuesday, l.Wednesday, l.Thursday, l.Friday, l.Saturday}
}

// SetWeekdayLabel sets the label of the weekday (0=Sunday).
func (c *Config) SetWeekdayLabel(weekday int, label string) {
	l := &c.Calendar.Labels
	fields := [7]*string{&l.Sunday, &l.Monday, &l.Tuesday, &l.Wednesday, &l.Thursday, &l.Friday, &l.Saturday}
	if weekday < 0 || weekday > 6 {
		return
	}
	*fields[weekday] = label
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
