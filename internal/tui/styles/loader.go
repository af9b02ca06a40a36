package styles

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ThemeFile is a custom theme definition loaded from YAML.
type ThemeFile struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Version     string      `yaml:"version"`
	Colors      ThemeColors `yaml:"colors"`
}

// ThemeColors holds hex colors (#RGB or #RRGGBB). The base colors are
// required; highlight colors fall back to the default palette.
type ThemeColors struct {
	Primary     string `yaml:"primary"`
	Secondary   string `yaml:"secondary"`
	Warning     string `yaml:"warning"`
	Error       string `yaml:"error"`
	Muted       string `yaml:"muted"`
	Surface     string `yaml:"surface"`
	Text        string `yaml:"text"`
	Border      string `yaml:"border"`
	HighlightBg string `yaml:"highlight_bg,omitempty"`
	HighlightFg string `yaml:"highlight_fg,omitempty"`
}

var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// LoadThemeFile loads and validates a theme from a YAML file.
func LoadThemeFile(path string) (*ThemeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}

	var theme ThemeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}
	if err := theme.Validate(); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}
	return &theme, nil
}

// Validate checks that the theme file is well-formed.
func (t *ThemeFile) Validate() error {
	if t.Name == "" {
		return errors.New("theme name is required")
	}
	if t.Version != "1" {
		return fmt.Errorf("unsupported theme version: %q (supported: 1)", t.Version)
	}

	required := []struct{ name, value string }{
		{"primary", t.Colors.Primary},
		{"secondary", t.Colors.Secondary},
		{"warning", t.Colors.Warning},
		{"error", t.Colors.Error},
		{"muted", t.Colors.Muted},
		{"surface", t.Colors.Surface},
		{"text", t.Colors.Text},
		{"border", t.Colors.Border},
	}
	for _, c := range required {
		if c.value == "" {
			return fmt.Errorf("color '%s' is required", c.name)
		}
		if !hexColorRegex.MatchString(c.value) {
			return fmt.Errorf("color '%s' has invalid format: %s (expected #RGB or #RRGGBB)", c.name, c.value)
		}
	}

	for _, c := range []struct{ name, value string }{
		{"highlight_bg", t.Colors.HighlightBg},
		{"highlight_fg", t.Colors.HighlightFg},
	} {
		if c.value != "" && !hexColorRegex.MatchString(c.value) {
			return fmt.Errorf("color '%s' has invalid format: %s (expected #RGB or #RRGGBB)", c.name, c.value)
		}
	}
	return nil
}

// ToPalette converts the theme file to a ColorPalette.
func (t *ThemeFile) ToPalette() *ColorPalette {
	def := DefaultPalette()
	return &ColorPalette{
		Primary:     lipgloss.Color(t.Colors.Primary),
		Secondary:   lipgloss.Color(t.Colors.Secondary),
		Warning:     lipgloss.Color(t.Colors.Warning),
		Error:       lipgloss.Color(t.Colors.Error),
		Muted:       lipgloss.Color(t.Colors.Muted),
		Surface:     lipgloss.Color(t.Colors.Surface),
		Text:        lipgloss.Color(t.Colors.Text),
		Border:      lipgloss.Color(t.Colors.Border),
		HighlightBg: colorOr(t.Colors.HighlightBg, def.HighlightBg),
		HighlightFg: colorOr(t.Colors.HighlightFg, def.HighlightFg),
	}
}

func colorOr(color string, fallback lipgloss.Color) lipgloss.Color {
	if color == "" {
		return fallback
	}
	return lipgloss.Color(color)
}

var (
	customMu     sync.RWMutex
	customThemes = make(map[ThemeName]*ThemeFile)
)

// RegisterCustomTheme registers a custom theme by name.
func RegisterCustomTheme(name ThemeName, theme *ThemeFile) {
	customMu.Lock()
	defer customMu.Unlock()
	customThemes[name] = theme
}

// GetCustomTheme returns a custom theme by name, or nil if not found.
func GetCustomTheme(name ThemeName) *ThemeFile {
	customMu.RLock()
	defer customMu.RUnlock()
	return customThemes[name]
}

// IsCustomTheme checks if a theme name is a registered custom theme.
func IsCustomTheme(name string) bool {
	return GetCustomTheme(ThemeName(name)) != nil
}

// CustomThemeNames returns the sorted names of registered custom themes.
func CustomThemeNames() []string {
	customMu.RLock()
	defer customMu.RUnlock()
	names := make([]string, 0, len(customThemes))
	for name := range customThemes {
		names = append(names, string(name))
	}
	slices.Sort(names)
	return names
}

// ClearCustomThemes removes all registered custom themes.
func ClearCustomThemes() {
	customMu.Lock()
	defer customMu.Unlock()
	customThemes = make(map[ThemeName]*ThemeFile)
}

// DiscoverCustomThemes loads every *.yaml / *.yml file in dir as a custom
// theme named after the file. A missing dir is not an error. Files that
// fail to load or that shadow a built-in theme are reported in errs and
// skipped.
func DiscoverCustomThemes(dir string) (loaded []string, errs []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, []error{fmt.Errorf("reading themes directory: %w", err)}
	}

	for _, entry := range entries {
		file := entry.Name()
		ext := filepath.Ext(file)
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}

		name := strings.TrimSuffix(file, ext)
		if IsBuiltinTheme(name) {
			errs = append(errs, fmt.Errorf("%s: cannot override built-in theme '%s'", file, name))
			continue
		}

		theme, err := LoadThemeFile(filepath.Join(dir, file))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", file, err))
			continue
		}
		RegisterCustomTheme(ThemeName(name), theme)
		loaded = append(loaded, name)
	}
	return loaded, errs
}

// ExportTheme renders a theme as YAML, suitable as a starting point for a
// custom theme file.
func ExportTheme(name ThemeName) ([]byte, error) {
	if custom := GetCustomTheme(name); custom != nil {
		return yaml.Marshal(custom)
	}

	p := GetPalette(name)
	return yaml.Marshal(&ThemeFile{
		Name:        string(name),
		Description: fmt.Sprintf("Exported from built-in theme '%s'", name),
		Version:     "1",
		Colors: ThemeColors{
			Primary:     string(p.Primary),
			Secondary:   string(p.Secondary),
			Warning:     string(p.Warning),
			Error:       string(p.Error),
			Muted:       string(p.Muted),
			Surface:     string(p.Surface),
			Text:        string(p.Text),
			Border:      string(p.Border),
			HighlightBg: string(p.HighlightBg),
			HighlightFg: string(p.HighlightFg),
		},
	})
}
