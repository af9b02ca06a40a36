package styles

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Styles is the set of lipgloss styles used by the dashboard, derived from
// a ColorPalette.
type Styles struct {
	Palette *ColorPalette

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style

	// Panels frame each filter control; the focused one is highlighted.
	Panel        lipgloss.Style
	PanelFocused lipgloss.Style
	PanelTitle   lipgloss.Style

	// Chips render selected values inside a closed picker.
	Chip     lipgloss.Style
	ChipMore lipgloss.Style

	PickerCursor    lipgloss.Style
	PickerSelected  lipgloss.Style
	PickerOption    lipgloss.Style
	PickerHighlight lipgloss.Style

	TableHeader   lipgloss.Style
	TableCell     lipgloss.Style
	TableSelected lipgloss.Style

	StatusBar lipgloss.Style
	HelpKey   lipgloss.Style
	HelpDesc  lipgloss.Style
	ErrorBox  lipgloss.Style
}

// New builds the style set for p.
func New(p *ColorPalette) *Styles {
	if p == nil {
		p = DefaultPalette()
	}
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)

	return &Styles{
		Palette: p,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Subtitle: lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
		Muted:    lipgloss.NewStyle().Foreground(p.Muted),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(p.Error),
		Warning:  lipgloss.NewStyle().Foreground(p.Warning),

		Panel:        panel,
		PanelFocused: panel.BorderForeground(p.Primary),
		PanelTitle:   lipgloss.NewStyle().Bold(true).Foreground(p.Text),

		Chip: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Surface).
			Padding(0, 1).
			MarginRight(1),
		ChipMore: lipgloss.NewStyle().Foreground(p.Muted),

		PickerCursor:    lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		PickerSelected:  lipgloss.NewStyle().Foreground(p.Secondary),
		PickerOption:    lipgloss.NewStyle().Foreground(p.Text),
		PickerHighlight: lipgloss.NewStyle().Foreground(p.HighlightFg).Background(p.HighlightBg),

		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.Border).
			BorderBottom(true).
			Padding(0, 1),
		TableCell: lipgloss.NewStyle().Foreground(p.Text).Padding(0, 1),
		TableSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			Background(p.Surface),

		StatusBar: lipgloss.NewStyle().Foreground(p.Muted).Padding(0, 1),
		HelpKey:   lipgloss.NewStyle().Bold(true).Foreground(p.Secondary),
		HelpDesc:  lipgloss.NewStyle().Foreground(p.Muted),
		ErrorBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Error).
			Padding(1, 2),
	}
}

var (
	activeMu sync.RWMutex
	active   = New(DefaultPalette())
)

// SetActiveTheme switches the styles returned by Active. Unknown names
// select the default palette.
func SetActiveTheme(name ThemeName) {
	s := New(GetPalette(name))
	activeMu.Lock()
	active = s
	activeMu.Unlock()
}

// Active returns the current style set.
func Active() *Styles {
	activeMu.RLock()
	defer activeMu.RUnlock()
	return active
}
