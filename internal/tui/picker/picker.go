// Package picker implements a searchable multi-select list, the dashboard's
// per-column filter control.
//
// A Picker owns its search input and cursor but not its options: the parent
// supplies options with SetOptions and learns about changes through
// ChangedMsg and QueryMsg. Search is fuzzy (sahilm/fuzzy) by default; with
// WithExternalSearch the picker shows options as given and leaves narrowing
// to whoever answers QueryMsg.
package picker

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/Iron-Ham/rowsift/internal/filter"
	"github.com/Iron-Ham/rowsift/internal/tui/keymap"
)

// DefaultHeight is the number of options shown at once.
const DefaultHeight = 8

// ChangedMsg reports a new selection.
type ChangedMsg struct {
	ID     string
	Values []string
}

// QueryMsg reports a new search query for an externally searched picker.
type QueryMsg struct {
	ID    string
	Query string
}

// Match is a visible option with the indexes of the label characters that
// matched the query.
type Match struct {
	filter.Option
	Indexes []int
}

// Opt configures a Picker.
type Opt func(*Picker)

// WithHeight sets the number of visible options.
func WithHeight(h int) Opt {
	return func(p *Picker) {
		if h > 0 {
			p.height = h
		}
	}
}

// WithExternalSearch disables local filtering; every query change is
// reported with a QueryMsg instead.
func WithExternalSearch() Opt {
	return func(p *Picker) {
		p.external = true
	}
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(k keymap.KeyMap) Opt {
	return func(p *Picker) {
		p.keys = k
	}
}

// Picker is a multi-select list with a search box.
type Picker struct {
	id    string
	title string
	keys  keymap.KeyMap

	input    textinput.Model
	options  []filter.Option
	matches  []Match
	selected []string

	cursor   int
	offset   int
	height   int
	open     bool
	external bool
}

// New creates a closed picker identified by id.
func New(id, title string, opts ...Opt) Picker {
	ti := textinput.New()
	ti.Placeholder = "search"
	ti.Prompt = "/ "
	ti.CharLimit = 128
	ti.Cursor.SetMode(cursor.CursorStatic)

	p := Picker{
		id:     id,
		title:  title,
		keys:   keymap.Default(),
		input:  ti,
		height: DefaultHeight,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// ID returns the picker identifier.
func (p Picker) ID() string { return p.id }

// Title returns the display title.
func (p Picker) Title() string { return p.title }

// IsOpen reports whether the option list is shown.
func (p Picker) IsOpen() bool { return p.open }

// Query returns the current search text.
func (p Picker) Query() string { return p.input.Value() }

// Selected returns the selected values in selection order.
func (p Picker) Selected() []string { return slices.Clone(p.selected) }

// Options returns all options, before search.
func (p Picker) Options() []filter.Option { return slices.Clone(p.options) }

// Matches returns the options visible under the current query.
func (p Picker) Matches() []Match { return slices.Clone(p.matches) }

// Cursor returns the index of the highlighted match.
func (p Picker) Cursor() int { return p.cursor }

// IsSelected reports whether value is selected.
func (p Picker) IsSelected(value string) bool {
	return slices.Contains(p.selected, value)
}

// SetOptions replaces the options and reapplies the current query.
func (p *Picker) SetOptions(opts []filter.Option) {
	p.options = slices.Clone(opts)
	p.refilter()
}

// SetSelected replaces the selection without emitting a ChangedMsg.
func (p *Picker) SetSelected(values []string) {
	p.selected = slices.Clone(values)
}

// Open shows the option list and focuses the search box.
func (p *Picker) Open() tea.Cmd {
	p.open = true
	return p.input.Focus()
}

// Close hides the option list and clears the search.
func (p *Picker) Close() tea.Cmd {
	p.open = false
	p.input.Blur()
	if p.input.Value() == "" {
		return nil
	}
	p.input.SetValue("")
	p.refilter()
	return p.queryCmd()
}

// Clear deselects everything.
func (p *Picker) Clear() tea.Cmd {
	if len(p.selected) == 0 {
		return nil
	}
	p.selected = nil
	return p.changedCmd()
}

// Toggle flips the selection of value.
func (p *Picker) Toggle(value string) tea.Cmd {
	if i := slices.Index(p.selected, value); i >= 0 {
		p.selected = slices.Delete(slices.Clone(p.selected), i, i+1)
	} else {
		p.selected = append(slices.Clone(p.selected), value)
	}
	return p.changedCmd()
}

// Update handles key input while the picker is open. Closed pickers ignore
// every message.
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	if !p.open {
		return p, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, p.keys.Close):
			return p, p.Close()
		case key.Matches(msg, p.keys.Up):
			p.move(-1)
			return p, nil
		case key.Matches(msg, p.keys.Down):
			p.move(1)
			return p, nil
		case key.Matches(msg, p.keys.Toggle):
			if p.cursor < len(p.matches) {
				return p, p.Toggle(p.matches[p.cursor].Value)
			}
			return p, nil
		}
	}

	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() == before {
		return p, cmd
	}
	p.refilter()
	return p, tea.Batch(cmd, p.queryCmd())
}

func (p *Picker) move(delta int) {
	if len(p.matches) == 0 {
		return
	}
	p.cursor = max(0, min(len(p.matches)-1, p.cursor+delta))
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+p.height {
		p.offset = p.cursor - p.height + 1
	}
}

// refilter recomputes matches from options and the query, keeping the
// cursor on the same value when it is still visible.
func (p *Picker) refilter() {
	var current string
	if p.cursor < len(p.matches) {
		current = p.matches[p.cursor].Value
	}

	query := strings.TrimSpace(p.input.Value())
	matches := make([]Match, 0, len(p.options))
	if p.external || query == "" {
		for _, opt := range p.options {
			matches = append(matches, Match{Option: opt})
		}
	} else {
		labels := make([]string, len(p.options))
		for i, opt := range p.options {
			labels[i] = opt.Label
		}
		for _, m := range fuzzy.Find(query, labels) {
			matches = append(matches, Match{Option: p.options[m.Index], Indexes: m.MatchedIndexes})
		}
	}
	p.matches = matches

	p.cursor, p.offset = 0, 0
	for i, m := range p.matches {
		if m.Value == current {
			p.move(i)
			break
		}
	}
}

func (p Picker) changedCmd() tea.Cmd {
	msg := ChangedMsg{ID: p.id, Values: slices.Clone(p.selected)}
	return func() tea.Msg { return msg }
}

func (p Picker) queryCmd() tea.Cmd {
	if !p.external {
		return nil
	}
	msg := QueryMsg{ID: p.id, Query: p.input.Value()}
	return func() tea.Msg { return msg }
}
