package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestBuiltinPalettes(t *testing.T) {
	for _, name := range BuiltinThemes() {
		t.Run(name, func(t *testing.T) {
			p := GetPalette(ThemeName(name))
			colors := []lipgloss.Color{
				p.Primary, p.Secondary, p.Warning, p.Error, p.Muted,
				p.Surface, p.Text, p.Border, p.HighlightBg, p.HighlightFg,
			}
			for i, c := range colors {
				if !hexColorRegex.MatchString(string(c)) {
					t.Errorf("color %d = %q is not a hex color", i, c)
				}
			}
		})
	}
}

func TestGetPalette_UnknownFallsBack(t *testing.T) {
	if got := GetPalette("no-such-theme"); *got != *DefaultPalette() {
		t.Errorf("unknown theme = %+v", got)
	}
}

func TestIsValidTheme(t *testing.T) {
	tests := map[string]bool{
		"default":         true,
		"solarized-light": true,
		"gruvbox":         true,
		"":                false,
		"Default":         false,
		"neon":            false,
	}
	for name, want := range tests {
		if got := IsValidTheme(name); got != want {
			t.Errorf("IsValidTheme(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestNew(t *testing.T) {
	s := New(NordPalette())
	if s.Palette.Primary != NordPalette().Primary {
		t.Errorf("Palette.Primary = %v", s.Palette.Primary)
	}
	if s.Title.GetForeground() != NordPalette().Primary {
		t.Errorf("Title foreground = %v", s.Title.GetForeground())
	}
	if s.PanelFocused.GetBorderTopForeground() != NordPalette().Primary {
		t.Error("focused panel should use the primary color for its border")
	}

	if New(nil).Palette.Primary != DefaultPalette().Primary {
		t.Error("New(nil) should use the default palette")
	}
}

func TestSetActiveTheme(t *testing.T) {
	t.Cleanup(func() { SetActiveTheme(ThemeDefault) })

	SetActiveTheme(ThemeDracula)
	if Active().Palette.Primary != DraculaPalette().Primary {
		t.Errorf("active primary = %v", Active().Palette.Primary)
	}

	SetActiveTheme("unknown")
	if Active().Palette.Primary != DefaultPalette().Primary {
		t.Error("unknown theme should activate the default palette")
	}
}
