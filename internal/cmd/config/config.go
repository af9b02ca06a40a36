// Package config provides CLI commands for inspecting rowsift configuration
// and managing color themes.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	appconfig "github.com/Iron-Ham/rowsift/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect rowsift configuration",
	Long: `Inspect rowsift configuration.

Use 'config show' to print the effective configuration, 'config validate'
to check a config file, and 'config init' to create one with defaults.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration as YAML",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	Long: `Validate the configuration file and environment overrides.

Every invalid value is reported, not just the first one. The command exits
with an error when any value is invalid.`,
	RunE: runConfigValidate,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/rowsift/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configInitCmd)
}

// Register adds all config-related commands to the given parent command.
func Register(parent *cobra.Command) {
	parent.AddCommand(configCmd)
}

// yamlConfig mirrors appconfig.Config with yaml tags for display.
type yamlConfig struct {
	Dataset struct {
		Source         string   `yaml:"source"`
		ExcludeColumns []string `yaml:"exclude_columns"`
		LoadTimeout    string   `yaml:"load_timeout"`
		Watch          bool     `yaml:"watch"`
	} `yaml:"dataset"`
	Filter struct {
		MaxRemainderOptions  int  `yaml:"max_remainder_options"`
		ModuloNarrowsOptions bool `yaml:"modulo_narrows_options"`
	} `yaml:"filter"`
	TUI struct {
		PageSize     int    `yaml:"page_size"`
		PickerHeight int    `yaml:"picker_height"`
		Theme        string `yaml:"theme"`
	} `yaml:"tui"`
	Logging struct {
		Enabled    bool   `yaml:"enabled"`
		Level      string `yaml:"level"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
	} `yaml:"logging"`
}

func toYAMLConfig(cfg *appconfig.Config) yamlConfig {
	var y yamlConfig
	y.Dataset.Source = cfg.Dataset.Source
	y.Dataset.ExcludeColumns = cfg.Dataset.ExcludeColumns
	y.Dataset.LoadTimeout = cfg.Dataset.LoadTimeout.String()
	y.Dataset.Watch = cfg.Dataset.Watch
	y.Filter.MaxRemainderOptions = cfg.Filter.MaxRemainderOptions
	y.Filter.ModuloNarrowsOptions = cfg.Filter.ModuloNarrowsOptions
	y.TUI.PageSize = cfg.TUI.PageSize
	y.TUI.PickerHeight = cfg.TUI.PickerHeight
	y.TUI.Theme = cfg.TUI.Theme
	y.Logging.Enabled = cfg.Logging.Enabled
	y.Logging.Level = cfg.Logging.Level
	y.Logging.MaxSizeMB = cfg.Logging.MaxSizeMB
	y.Logging.MaxBackups = cfg.Logging.MaxBackups
	return y
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := appconfig.Get()
	out := cmd.OutOrStdout()

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(toYAMLConfig(cfg)); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return enc.Close()
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if _, err := appconfig.Load(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return fmt.Errorf("configuration is invalid")
	}

	source := viper.ConfigFileUsed()
	if source == "" {
		source = "defaults"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Configuration is valid (%s)\n", source)
	return nil
}

const defaultConfigFile = `# rowsift configuration

dataset:
  # Dataset used when none is given on the command line (path or http(s) URL)
  source: ""
  # Glob patterns of columns that are neither filters nor table columns
  exclude_columns: []
  # Bound on reading the dataset; 0 disables the timeout
  load_timeout: 30s
  # Reload the dataset when the file changes
  watch: false

filter:
  # Maximum number of remainder options listed at once
  max_remainder_options: 100
  # Let the remainder filter narrow the column pickers' options too
  modulo_narrows_options: false

tui:
  # Rows per table page
  page_size: 100
  # Options visible in an open picker
  picker_height: 8
  # Color theme: a built-in name or a file in the themes directory
  theme: default

logging:
  # Write a log file in the state directory
  enabled: true
  # debug, info, warn or error
  level: info
  # Rotate the log file at this size; 0 disables rotation
  max_size_mb: 5
  # Rotated files to keep
  max_backups: 2
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s", configFile)
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(configFile, []byte(defaultConfigFile), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", appconfig.ConfigFile())
	}

	// Also show config search paths
	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", appconfig.ConfigFile())
	fmt.Fprintf(out, "  2. $HOME/.config/rowsift/config.yaml\n")
	fmt.Fprintf(out, "  3. ./config.yaml (current directory)\n")
	fmt.Fprintln(out, "\nEnvironment variables: ROWSIFT_* (e.g., ROWSIFT_TUI_PAGE_SIZE)")
	return nil
}
