// Package keymap defines the dashboard key bindings. Bindings are grouped by
// input mode so that help only lists the keys that currently do something.
package keymap

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// Mode is the current input mode of the dashboard.
type Mode string

const (
	ModeNormal Mode = "normal" // a closed control or the table is focused
	ModeInput  Mode = "input"  // the modulo base input is focused
	ModePicker Mode = "picker" // a picker is open
	ModeFailed Mode = "failed" // the dataset failed to load
)

// KeyMap holds every dashboard binding.
type KeyMap struct {
	// Global
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	NextFocus key.Binding
	PrevFocus key.Binding
	ResetAll  key.Binding
	Retry     key.Binding

	// Controls
	Open  key.Binding
	Clear key.Binding

	// Picker
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Close  key.Binding

	// Table
	NextPage    key.Binding
	PrevPage    key.Binding
	SortNext    key.Binding
	SortReverse key.Binding
	SortClear   key.Binding
}

// Default returns the default bindings.
func Default() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next control"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous control"),
		),
		ResetAll: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset filters"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry load"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "open picker"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x", "backspace"),
			key.WithHelp("x", "clear filter"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "toggle option"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l", "pgdown"),
			key.WithHelp("→/l", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h", "pgup"),
			key.WithHelp("←/h", "previous page"),
		),
		SortNext: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort by next column"),
		),
		SortReverse: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "reverse sort"),
		),
		SortClear: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "original order"),
		),
	}
}

// For returns a help.KeyMap listing the bindings active in mode.
func (k KeyMap) For(mode Mode) help.KeyMap {
	switch mode {
	case ModeInput:
		return modeHelp{
			short: []key.Binding{k.NextFocus, k.Close, k.ForceQuit},
			full: [][]key.Binding{
				{k.NextFocus, k.PrevFocus, k.Close},
				{k.ForceQuit},
			},
		}
	case ModePicker:
		return modeHelp{
			short: []key.Binding{k.Up, k.Down, k.Toggle, k.Close},
			full: [][]key.Binding{
				{k.Up, k.Down, k.Toggle},
				{k.Close, k.NextFocus, k.ForceQuit},
			},
		}
	case ModeFailed:
		return modeHelp{
			short: []key.Binding{k.Retry, k.Quit},
			full:  [][]key.Binding{{k.Retry, k.Quit}},
		}
	default:
		return modeHelp{
			short: []key.Binding{k.NextFocus, k.Open, k.NextPage, k.SortNext, k.Help, k.Quit},
			full: [][]key.Binding{
				{k.NextFocus, k.PrevFocus, k.Open, k.Clear, k.ResetAll},
				{k.Up, k.Down, k.NextPage, k.PrevPage},
				{k.SortNext, k.SortReverse, k.SortClear},
				{k.Help, k.Quit},
			},
		}
	}
}

// modeHelp adapts a fixed binding list to help.KeyMap.
type modeHelp struct {
	short []key.Binding
	full  [][]key.Binding
}

func (h modeHelp) ShortHelp() []key.Binding  { return h.short }
func (h modeHelp) FullHelp() [][]key.Binding { return h.full }
