package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	appconfig "github.com/Iron-Ham/rowsift/internal/config"
	"github.com/Iron-Ham/rowsift/internal/tui/styles"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage color themes",
	Long: `Manage color themes for the rowsift dashboard.

rowsift supports both built-in themes and custom user-defined themes.
Custom themes are stored in ~/.config/rowsift/themes/ as YAML files and
are named after the file.`,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available themes",
	RunE:  runThemeList,
}

var themeExportCmd = &cobra.Command{
	Use:   "export <theme-name> [output-file]",
	Short: "Export a theme to YAML",
	Long: `Export a theme to YAML format for customization or sharing.

If no output file is specified, the YAML is printed to stdout.

Examples:
  rowsift config theme export default
  rowsift config theme export nord my-theme.yaml`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runThemeExport,
}

var themeInfoCmd = &cobra.Command{
	Use:   "info <theme-name>",
	Short: "Show information about a theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemeInfo,
}

var themeCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new custom theme from the default palette",
	Long: `Create a new custom theme file in your themes directory.

Example:
  rowsift config theme create solarized
  # Creates ~/.config/rowsift/themes/solarized.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runThemeCreate,
}

// themesDir is replaced in tests.
var themesDir = appconfig.ThemesDir

func init() {
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeExportCmd)
	themeCmd.AddCommand(themeInfoCmd)
	themeCmd.AddCommand(themeCreateCmd)
	configCmd.AddCommand(themeCmd)
}

// discoverThemes registers custom themes and reports load errors on w.
func discoverThemes(w io.Writer) []error {
	_, errs := styles.DiscoverCustomThemes(themesDir())
	if len(errs) > 0 {
		fmt.Fprintln(w, "Warning: Some themes failed to load:")
		for _, err := range errs {
			fmt.Fprintf(w, "  - %v\n", err)
		}
	}
	return errs
}

// unknownThemeError explains why name is not available, pointing at a
// broken theme file when there is one.
func unknownThemeError(name string, loadErrs []error) error {
	for _, err := range loadErrs {
		msg := err.Error()
		if strings.HasPrefix(msg, name+".yaml:") || strings.HasPrefix(msg, name+".yml:") {
			return fmt.Errorf("theme '%s' exists but failed to load: %v", name, err)
		}
	}
	return fmt.Errorf("unknown theme: %s\nRun 'rowsift config theme list' to see available themes", name)
}

func runThemeList(cmd *cobra.Command, args []string) error {
	discoverThemes(cmd.ErrOrStderr())
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Built-in themes:")
	for _, name := range styles.BuiltinThemes() {
		fmt.Fprintf(out, "  - %s\n", name)
	}

	if custom := styles.CustomThemeNames(); len(custom) > 0 {
		fmt.Fprintln(out, "\nCustom themes:")
		for _, name := range custom {
			line := "  - " + name
			if theme := styles.GetCustomTheme(styles.ThemeName(name)); theme != nil && theme.Description != "" {
				line += ": " + theme.Description
			}
			fmt.Fprintln(out, line)
		}
	}

	fmt.Fprintf(out, "\nCustom themes directory: %s\n", themesDir())
	return nil
}

func runThemeExport(cmd *cobra.Command, args []string) error {
	name := args[0]
	if errs := discoverThemes(cmd.ErrOrStderr()); !styles.IsValidTheme(name) {
		return unknownThemeError(name, errs)
	}

	data, err := styles.ExportTheme(styles.ThemeName(name))
	if err != nil {
		return fmt.Errorf("exporting theme: %w", err)
	}

	if len(args) > 1 {
		if err := os.WriteFile(args[1], data, 0o644); err != nil {
			return fmt.Errorf("writing to %s: %w", args[1], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Theme exported to: %s\n", args[1])
		return nil
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runThemeInfo(cmd *cobra.Command, args []string) error {
	name := args[0]
	if errs := discoverThemes(cmd.ErrOrStderr()); !styles.IsValidTheme(name) {
		return unknownThemeError(name, errs)
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Theme: %s\n", name)
	if styles.IsBuiltinTheme(name) {
		fmt.Fprintln(out, "Type: Built-in")
	} else {
		fmt.Fprintln(out, "Type: Custom")
		if theme := styles.GetCustomTheme(styles.ThemeName(name)); theme != nil && theme.Description != "" {
			fmt.Fprintf(out, "Description: %s\n", theme.Description)
		}
	}

	p := styles.GetPalette(styles.ThemeName(name))
	fmt.Fprintln(out, "\nColors:")
	fmt.Fprintf(out, "  Primary:   %s\n", p.Primary)
	fmt.Fprintf(out, "  Secondary: %s\n", p.Secondary)
	fmt.Fprintf(out, "  Warning:   %s\n", p.Warning)
	fmt.Fprintf(out, "  Error:     %s\n", p.Error)
	fmt.Fprintf(out, "  Muted:     %s\n", p.Muted)
	fmt.Fprintf(out, "  Surface:   %s\n", p.Surface)
	fmt.Fprintf(out, "  Text:      %s\n", p.Text)
	fmt.Fprintf(out, "  Border:    %s\n", p.Border)
	return nil
}

func runThemeCreate(cmd *cobra.Command, args []string) error {
	name := args[0]

	if name == "" {
		return fmt.Errorf("theme name cannot be empty")
	}
	if strings.ContainsAny(name, "/\\:*?\"<>|") {
		return fmt.Errorf("theme name contains invalid characters")
	}
	if styles.IsBuiltinTheme(name) {
		return fmt.Errorf("cannot create custom theme with built-in name '%s'", name)
	}

	dir := themesDir()
	path := filepath.Join(dir, name+".yaml")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("theme '%s' already exists at %s", name, path)
	}

	data, err := styles.ExportTheme(styles.ThemeDefault)
	if err != nil {
		return fmt.Errorf("creating theme: %w", err)
	}
	var theme styles.ThemeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return fmt.Errorf("creating theme: %w", err)
	}
	theme.Name = capitalizeFirst(name)
	theme.Description = "A custom rowsift theme"
	if data, err = yaml.Marshal(&theme); err != nil {
		return fmt.Errorf("creating theme: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating themes directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing theme: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created new theme: %s\n", path)
	fmt.Fprintf(out, "To use it, set tui.theme: %s in your config file.\n", name)
	return nil
}

// capitalizeFirst capitalizes the first character of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
