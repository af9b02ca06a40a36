package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for rowsift
type Config struct {
	Dataset DatasetConfig `mapstructure:"dataset"`
	Filter  FilterConfig  `mapstructure:"filter"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DatasetConfig controls where the dataset comes from and which columns
// become filters
type DatasetConfig struct {
	// Source is the default dataset path or http(s) URL, used when no
	// argument is given on the command line
	Source string `mapstructure:"source"`
	// ExcludeColumns lists glob patterns (e.g. "internal_*") for columns that
	// are dropped from both the filters and the table
	ExcludeColumns []string `mapstructure:"exclude_columns"`
	// LoadTimeout bounds reading the dataset, mostly relevant for URLs.
	// Zero disables the timeout (default: 30s)
	LoadTimeout time.Duration `mapstructure:"load_timeout"`
	// Watch reloads a local dataset when the file changes (default: false)
	Watch bool `mapstructure:"watch"`
}

// FilterConfig controls the filter engine
type FilterConfig struct {
	// MaxRemainderOptions caps the remainder picker list (default: 100)
	MaxRemainderOptions int `mapstructure:"max_remainder_options"`
	// ModuloNarrowsOptions makes the remainder filter also narrow the option
	// lists of the column pickers (default: false)
	ModuloNarrowsOptions bool `mapstructure:"modulo_narrows_options"`
}

// TUIConfig controls the interactive dashboard
type TUIConfig struct {
	// PageSize is the number of rows per table page (default: 100)
	PageSize int `mapstructure:"page_size"`
	// PickerHeight is the number of options visible in an open picker (default: 8)
	PickerHeight int `mapstructure:"picker_height"`
	// Theme is the color theme name (default: "default")
	Theme string `mapstructure:"theme"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether the dashboard writes a log file (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 5)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated log files to keep (default: 2)
	MaxBackups int `mapstructure:"max_backups"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			ExcludeColumns: []string{},
			LoadTimeout:    30 * time.Second,
		},
		Filter: FilterConfig{
			MaxRemainderOptions: 100,
		},
		TUI: TUIConfig{
			PageSize:     100,
			PickerHeight: 8,
			Theme:        "default",
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 2,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Dataset defaults
	viper.SetDefault("dataset.source", defaults.Dataset.Source)
	viper.SetDefault("dataset.exclude_columns", defaults.Dataset.ExcludeColumns)
	viper.SetDefault("dataset.load_timeout", defaults.Dataset.LoadTimeout)
	viper.SetDefault("dataset.watch", defaults.Dataset.Watch)

	// Filter defaults
	viper.SetDefault("filter.max_remainder_options", defaults.Filter.MaxRemainderOptions)
	viper.SetDefault("filter.modulo_narrows_options", defaults.Filter.ModuloNarrowsOptions)

	// TUI defaults
	viper.SetDefault("tui.page_size", defaults.TUI.PageSize)
	viper.SetDefault("tui.picker_height", defaults.TUI.PickerHeight)
	viper.SetDefault("tui.theme", defaults.TUI.Theme)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rowsift")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rowsift"
	}
	return filepath.Join(home, ".config", "rowsift")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ThemesDir returns the directory searched for custom theme files
func ThemesDir() string {
	return filepath.Join(ConfigDir(), "themes")
}

// StateDir returns the directory holding the dashboard log file
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "rowsift")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rowsift"
	}
	return filepath.Join(home, ".local", "state", "rowsift")
}
