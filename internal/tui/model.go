package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/rowsift/internal/dashboard"
	"github.com/Iron-Ham/rowsift/internal/dataset"
	"github.com/Iron-Ham/rowsift/internal/errors"
	"github.com/Iron-Ham/rowsift/internal/filter"
	"github.com/Iron-Ham/rowsift/internal/logging"
	"github.com/Iron-Ham/rowsift/internal/tui/grid"
	"github.com/Iron-Ham/rowsift/internal/tui/keymap"
	"github.com/Iron-Ham/rowsift/internal/tui/picker"
	"github.com/Iron-Ham/rowsift/internal/tui/styles"
	"github.com/Iron-Ham/rowsift/internal/util"
)

// Column pickers are identified by columnPrefix plus the column name.
const (
	focusBase       = "base"
	focusTable      = "table"
	remaindersID    = "modulo:remainders"
	columnPrefix    = "column:"
	defaultWidth    = 100
	defaultHeight   = 30
	controlWidth    = 28
	maxStatusLength = 200
)

// Config configures the dashboard.
type Config struct {
	// Source is the dataset path or URL.
	Source      string
	LoadOptions dataset.LoadOptions
	// Load replaces dataset.Load, mostly for tests.
	Load LoadFunc
	// Reloads, when set, delivers new dataset versions (see dataset.Watcher).
	Reloads <-chan dataset.Reload

	Exclude              []string
	PageSize             int
	PickerHeight         int
	MaxRemainderOptions  int
	ModuloNarrowsOptions bool

	// Width and Height are the initial terminal size, used until the first
	// resize message arrives.
	Width  int
	Height int

	Styles *styles.Styles
	Logger *logging.Logger
}

// Model is the bubbletea model of the dashboard.
type Model struct {
	cfg     Config
	reducer *dashboard.Reducer
	logger  *logging.Logger
	keys    keymap.KeyMap
	help    help.Model
	styles  *styles.Styles

	state dashboard.State

	base       textinput.Model
	remainders picker.Picker
	pickers    []picker.Picker
	grid       grid.Grid
	focus      string

	status   string
	showHelp bool
	width    int
	height   int
}

// NewModel creates a dashboard in the Loading state. Init starts the load.
func NewModel(cfg Config) Model {
	if cfg.Load == nil {
		cfg.Load = dataset.Load
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NopLogger()
	}
	if cfg.Styles == nil {
		cfg.Styles = styles.Active()
	}
	if cfg.PickerHeight <= 0 {
		cfg.PickerHeight = picker.DefaultHeight
	}
	logger := cfg.Logger.WithComponent("tui").WithDataset(cfg.Source)

	reducer := dashboard.NewReducer(dashboard.Options{
		Exclude: cfg.Exclude,
		EngineOptions: []filter.EngineOption{
			filter.WithModuloNarrowsOptions(cfg.ModuloNarrowsOptions),
			filter.WithMaxRemainderOptions(cfg.MaxRemainderOptions),
		},
	}, cfg.Logger)

	base := textinput.New()
	base.Placeholder = "off"
	base.Prompt = "mod "
	base.CharLimit = 10
	base.Cursor.SetMode(cursor.CursorStatic)

	keys := keymap.Default()
	remainders := picker.New(remaindersID, "Remainders",
		picker.WithExternalSearch(),
		picker.WithHeight(cfg.PickerHeight),
		picker.WithKeyMap(keys),
	)

	m := Model{
		cfg:        cfg,
		reducer:    reducer,
		logger:     logger,
		keys:       keys,
		help:       help.New(),
		styles:     cfg.Styles,
		state:      dashboard.NewState(cfg.Source),
		base:       base,
		remainders: remainders,
		grid:       grid.New(cfg.PageSize, cfg.Styles),
		focus:      focusTable,
		width:      cfg.Width,
		height:     cfg.Height,
	}
	if m.width <= 0 {
		m.width = defaultWidth
	}
	if m.height <= 0 {
		m.height = defaultHeight
	}
	return m
}

// State returns the current dashboard snapshot.
func (m Model) State() dashboard.State { return m.state }

// Focus returns the ID of the focused control.
func (m Model) Focus() string { return m.focus }

// Status returns the transient status line.
func (m Model) Status() string { return m.status }

// Init starts loading the dataset and listening for reloads.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadCmd(m.cfg.Load, m.cfg.Source, m.cfg.LoadOptions),
		waitForReload(m.cfg.Reloads),
	)
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case loadedMsg:
		return m.apply(dashboard.Loaded{Dataset: msg.ds})

	case loadFailedMsg:
		return m.apply(dashboard.LoadFailed{Err: msg.err})

	case reloadMsg:
		return m.handleReload(dataset.Reload(msg))

	case remainderOptionsMsg:
		if msg.err == nil && msg.base == m.state.Modulo().Base() && msg.query == m.remainders.Query() {
			m.remainders.SetOptions(msg.options)
		}
		return m, nil

	case picker.ChangedMsg:
		if msg.ID == remaindersID {
			return m.apply(dashboard.RemaindersChanged{Values: msg.Values})
		}
		return m.apply(dashboard.SelectionChanged{
			Column: strings.TrimPrefix(msg.ID, columnPrefix),
			Values: msg.Values,
		})

	case picker.QueryMsg:
		if msg.ID == remaindersID {
			return m, loadRemaindersCmd(m.state.Engine(), m.state.Modulo(), msg.Query)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forward(msg)
}

// apply runs ev through the reducer and brings the widgets in line with the
// resulting state.
func (m Model) apply(ev dashboard.Event) (Model, tea.Cmd) {
	prev := m.state
	next, err := m.reducer.Update(prev, ev)
	m.state = next
	if err != nil {
		m.setStatus(err)
		m.logger.Warn("event rejected", "event", fmt.Sprintf("%T", ev), logging.KeyError, err)
	} else if next.Ready() {
		m.status = ""
	}
	return m, m.sync(prev)
}

func (m *Model) setStatus(err error) {
	m.status = util.Truncate(errors.UserMessage(err), maxStatusLength)
}

func (m Model) handleReload(r dataset.Reload) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if r.Err != nil {
		m.status = util.Truncate("reload failed, showing previous data: "+errors.UserMessage(r.Err), maxStatusLength)
		m.logger.Error("dataset reload failed", logging.KeyError, r.Err)
	} else {
		m, cmd = m.apply(dashboard.Reloaded{Dataset: r.Dataset})
	}
	return m, tea.Batch(cmd, waitForReload(m.cfg.Reloads))
}

// sync pushes the current state into the widgets. prev is the state before
// the last event and decides what needs rebuilding.
func (m *Model) sync(prev dashboard.State) tea.Cmd {
	s := m.state
	if !s.Ready() {
		return nil
	}

	if s.Dataset() != prev.Dataset() || !slices.Equal(s.Columns(), prev.Columns()) {
		m.rebuildPickers(prev)
		m.grid.SetColumns(s.TableColumns())
	}
	for i := range m.pickers {
		col := strings.TrimPrefix(m.pickers[i].ID(), columnPrefix)
		m.pickers[i].SetOptions(s.Options(col))
		m.pickers[i].SetSelected(s.Selection().Values(col))
	}
	if s.Generation() != prev.Generation() {
		m.grid.SetRows(s.Result().Rows)
	}

	if m.base.Value() != s.BaseInput() {
		m.base.SetValue(s.BaseInput())
	}

	var cmd tea.Cmd
	mod := s.Modulo()
	if mod.Base() != prev.Modulo().Base() {
		m.remainders.Close()
		m.remainders.SetOptions(nil)
		if mod.Active() {
			cmd = loadRemaindersCmd(s.Engine(), mod, "")
		} else if m.focus == remaindersID {
			cmd = m.setFocus(focusBase)
		}
	}
	m.remainders.SetSelected(mod.Remainders())
	return cmd
}

// rebuildPickers creates one picker per filterable column, keeping open
// state and focus for columns that survive a reload.
func (m *Model) rebuildPickers(prev dashboard.State) {
	open := ""
	for _, p := range m.pickers {
		if p.IsOpen() {
			open = p.ID()
		}
	}

	cols := m.state.Columns()
	m.pickers = make([]picker.Picker, len(cols))
	for i, col := range cols {
		m.pickers[i] = picker.New(columnPrefix+col, col,
			picker.WithHeight(m.cfg.PickerHeight),
			picker.WithKeyMap(m.keys),
		)
		if m.pickers[i].ID() == open {
			m.pickers[i].Open()
		}
	}

	if !slices.Contains(m.focusOrder(), m.focus) {
		m.focus = focusTable
	}
	if prev.Dataset() == nil {
		m.logger.Debug("dashboard built", "pickers", len(cols))
	}
}

// focusOrder lists the focusable controls in tab order.
func (m Model) focusOrder() []string {
	order := []string{focusBase}
	if m.state.Modulo().Active() {
		order = append(order, remaindersID)
	}
	for _, p := range m.pickers {
		order = append(order, p.ID())
	}
	return append(order, focusTable)
}

// moveFocus moves focus by delta positions, wrapping around.
func (m *Model) moveFocus(delta int) tea.Cmd {
	order := m.focusOrder()
	i := slices.Index(order, m.focus)
	if i < 0 {
		i = len(order) - 1
	}
	next := (i + delta + len(order)) % len(order)
	return m.setFocus(order[next])
}

func (m *Model) setFocus(id string) tea.Cmd {
	var cmd tea.Cmd
	if p := m.picker(m.focus); p != nil && p.IsOpen() {
		cmd = p.Close()
	}
	m.base.Blur()
	m.grid.Blur()

	m.focus = id
	switch id {
	case focusBase:
		return tea.Batch(cmd, m.base.Focus())
	case focusTable:
		m.grid.Focus()
	}
	return cmd
}

// picker returns the picker with id, or nil.
func (m *Model) picker(id string) *picker.Picker {
	if id == remaindersID {
		return &m.remainders
	}
	for i := range m.pickers {
		if m.pickers[i].ID() == id {
			return &m.pickers[i]
		}
	}
	return nil
}

// openPicker returns the open picker, if any.
func (m *Model) openPicker() *picker.Picker {
	if p := m.picker(m.focus); p != nil && p.IsOpen() {
		return p
	}
	return nil
}

// mode reports the keymap mode for help and key routing.
func (m Model) mode() keymap.Mode {
	switch {
	case m.state.Lifecycle() == dashboard.Failed:
		return keymap.ModeFailed
	case m.focus == focusBase:
		return keymap.ModeInput
	case m.openPicker() != nil:
		return keymap.ModePicker
	default:
		return keymap.ModeNormal
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	switch m.state.Lifecycle() {
	case dashboard.Loading:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	case dashboard.Failed:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Retry):
			m, _ = m.apply(dashboard.LoadStarted{})
			return m, loadCmd(m.cfg.Load, m.cfg.Source, m.cfg.LoadOptions)
		}
		return m, nil
	}

	if p := m.openPicker(); p != nil {
		if key.Matches(msg, m.keys.NextFocus) {
			return m, m.moveFocus(1)
		}
		if key.Matches(msg, m.keys.PrevFocus) {
			return m, m.moveFocus(-1)
		}
		var cmd tea.Cmd
		*p, cmd = p.Update(msg)
		return m, cmd
	}

	if m.focus == focusBase {
		return m.handleBaseKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.NextFocus):
		return m, m.moveFocus(1)
	case key.Matches(msg, m.keys.PrevFocus):
		return m, m.moveFocus(-1)
	case key.Matches(msg, m.keys.ResetAll):
		return m.apply(dashboard.Reset{})
	}

	if m.focus == focusTable {
		var cmd tea.Cmd
		m.grid, cmd = m.grid.Update(msg)
		return m, cmd
	}

	if p := m.picker(m.focus); p != nil {
		switch {
		case key.Matches(msg, m.keys.Open):
			return m, p.Open()
		case key.Matches(msg, m.keys.Clear):
			return m, p.Clear()
		}
	}
	return m, nil
}

// handleBaseKey edits the modulo base. Only digits are accepted; every
// change of the text is a BaseChanged event.
func (m Model) handleBaseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextFocus):
		return m, m.moveFocus(1)
	case key.Matches(msg, m.keys.PrevFocus):
		return m, m.moveFocus(-1)
	case key.Matches(msg, m.keys.Close), msg.Type == tea.KeyEnter:
		return m, m.setFocus(focusTable)
	}

	if msg.Type == tea.KeyRunes {
		digits := slices.DeleteFunc(slices.Clone(msg.Runes), func(r rune) bool {
			return r < '0' || r > '9'
		})
		if len(digits) == 0 {
			return m, nil
		}
		msg.Runes = digits
	}

	before := m.base.Value()
	var cmd tea.Cmd
	m.base, cmd = m.base.Update(msg)
	if m.base.Value() == before {
		return m, cmd
	}
	next, syncCmd := m.apply(dashboard.BaseChanged{Input: m.base.Value()})
	return next, tea.Batch(cmd, syncCmd)
}

// forward passes non-key messages, such as cursor blinks, to the focused
// text inputs.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.focus == focusBase:
		m.base, cmd = m.base.Update(msg)
	case m.openPicker() != nil:
		p := m.openPicker()
		*p, cmd = p.Update(msg)
	}
	return m, cmd
}
