package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// ThemeName represents a named color theme.
type ThemeName string

// Available theme names.
const (
	ThemeDefault        ThemeName = "default"
	ThemeMonokai        ThemeName = "monokai"
	ThemeDracula        ThemeName = "dracula"
	ThemeNord           ThemeName = "nord"
	ThemeSolarizedLight ThemeName = "solarized-light"
	ThemeGruvbox        ThemeName = "gruvbox"
)

// BuiltinThemes returns all built-in theme names.
func BuiltinThemes() []string {
	return []string{
		string(ThemeDefault),
		string(ThemeMonokai),
		string(ThemeDracula),
		string(ThemeNord),
		string(ThemeSolarizedLight),
		string(ThemeGruvbox),
	}
}

// ValidThemes returns all valid theme names (built-in + custom).
func ValidThemes() []string {
	return append(BuiltinThemes(), CustomThemeNames()...)
}

// IsValidTheme checks if a theme name is valid (built-in or custom).
func IsValidTheme(name string) bool {
	return IsBuiltinTheme(name) || IsCustomTheme(name)
}

// IsBuiltinTheme checks if a theme name is a built-in theme.
func IsBuiltinTheme(name string) bool {
	return slices.Contains(BuiltinThemes(), name)
}

// ColorPalette defines the colors of a theme.
type ColorPalette struct {
	// Primary accent (titles, focused borders, active filters)
	Primary lipgloss.Color
	// Secondary accent (key hints, selected options)
	Secondary lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	// Muted is used for de-emphasized text such as empty states
	Muted   lipgloss.Color
	Surface lipgloss.Color
	Text    lipgloss.Color
	Border  lipgloss.Color
	// Highlight colors fuzzy-match characters in picker options
	HighlightBg lipgloss.Color
	HighlightFg lipgloss.Color
}

// DefaultPalette returns the purple/green dark palette.
func DefaultPalette() *ColorPalette {
	return &ColorPalette{
		Primary:     lipgloss.Color("#A78BFA"), // violet-400
		Secondary:   lipgloss.Color("#10B981"),
		Warning:     lipgloss.Color("#F59E0B"),
		Error:       lipgloss.Color("#F87171"), // red-400
		Muted:       lipgloss.Color("#9CA3AF"),
		Surface:     lipgloss.Color("#1F2937"),
		Text:        lipgloss.Color("#F9FAFB"),
		Border:      lipgloss.Color("#6B7280"), // gray-500
		HighlightBg: lipgloss.Color("#854D0E"),
		HighlightFg: lipgloss.Color("#FEF3C7"),
	}
}

// MonokaiPalette returns the Monokai editor palette.
func MonokaiPalette() *ColorPalette {
	return &ColorPalette{
		Primary:     lipgloss.Color("#F92672"),
		Secondary:   lipgloss.Color("#A6E22E"),
		Warning:     lipgloss.Color("#E6DB74"),
		Error:       lipgloss.Color("#F92672"),
		Muted:       lipgloss.Color("#75715E"),
		Surface:     lipgloss.Color("#272822"),
		Text:        lipgloss.Color("#F8F8F2"),
		Border:      lipgloss.Color("#49483E"),
		HighlightBg: lipgloss.Color("#49483E"),
		HighlightFg: lipgloss.Color("#E6DB74"),
	}
}

// DraculaPalette returns the Dracula palette.
func DraculaPalette() *ColorPalette {
	return &ColorPalette{
		Primary:     lipgloss.Color("#BD93F9"),
		Secondary:   lipgloss.Color("#50FA7B"),
		Warning:     lipgloss.Color("#F1FA8C"),
		Error:       lipgloss.Color("#FF5555"),
		Muted:       lipgloss.Color("#6272A4"),
		Surface:     lipgloss.Color("#282A36"),
		Text:        lipgloss.Color("#F8F8F2"),
		Border:      lipgloss.Color("#44475A"),
		HighlightBg: lipgloss.Color("#44475A"),
		HighlightFg: lipgloss.Color("#F1FA8C"),
	}
}

// NordPalette returns the Nord palette.
func NordPalette() *ColorPalette {
	return &ColorPalette{
		Primary:     lipgloss.Color("#88C0D0"), // frost
		Secondary:   lipgloss.Color("#A3BE8C"),
		Warning:     lipgloss.Color("#EBCB8B"),
		Error:       lipgloss.Color("#BF616A"),
		Muted:       lipgloss.Color("#4C566A"),
		Surface:     lipgloss.Color("#2E3440"), // polar night
		Text:        lipgloss.Color("#ECEFF4"),
		Border:      lipgloss.Color("#3B4252"),
		HighlightBg: lipgloss.Color("#3B4252"),
		HighlightFg: lipgloss.Color("#EBCB8B"),
	}
}

// SolarizedLightPalette returns the light Solarized palette.
func SolarizedLightPalette() *ColorPalette {
	return &ColorPalette{
		Primary:     lipgloss.Color("#268BD2"),
		Secondary:   lipgloss.Color("#859900"),
		Warning:     lipgloss.Color("#B58900"),
		Error:       lipgloss.Color("#DC322F"),
		Muted:       lipgloss.Color("#93A1A1"),
		Surface:     lipgloss.Color("#FDF6E3"),
		Text:        lipgloss.Color("#657B83"),
		Border:      lipgloss.Color("#EEE8D5"),
		HighlightBg: lipgloss.Color("#EEE8D5"),
		HighlightFg: lipgloss.Color("#B58900"),
	}
}

// GruvboxPalette returns the Gruvbox dark palette.
func GruvboxPalette() *ColorPalette {
	return &ColorPalette{
		Primary:     lipgloss.Color("#83A598"),
		Secondary:   lipgloss.Color("#B8BB26"),
		Warning:     lipgloss.Color("#FABD2F"),
		Error:       lipgloss.Color("#FB4934"),
		Muted:       lipgloss.Color("#928374"),
		Surface:     lipgloss.Color("#282828"),
		Text:        lipgloss.Color("#EBDBB2"),
		Border:      lipgloss.Color("#3C3836"),
		HighlightBg: lipgloss.Color("#3C3836"),
		HighlightFg: lipgloss.Color("#FABD2F"),
	}
}

// GetPalette returns the palette for name, checking custom themes first.
// Unknown names yield the default palette.
func GetPalette(name ThemeName) *ColorPalette {
	if custom := GetCustomTheme(name); custom != nil {
		return custom.ToPalette()
	}

	switch name {
	case ThemeMonokai:
		return MonokaiPalette()
	case ThemeDracula:
		return DraculaPalette()
	case ThemeNord:
		return NordPalette()
	case ThemeSolarizedLight:
		return SolarizedLightPalette()
	case ThemeGruvbox:
		return GruvboxPalette()
	default:
		return DefaultPalette()
	}
}
