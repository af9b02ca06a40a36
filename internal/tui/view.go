package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/rowsift/internal/dashboard"
	"github.com/Iron-Ham/rowsift/internal/errors"
	"github.com/Iron-Ham/rowsift/internal/util"
)

// Layout constants
const (
	controlMinWidth = 20 // narrow terminals
	layoutGap       = 1  // between the control column and the table
	chromeHeight    = 3  // header + status line + short help
)

// View renders the dashboard.
func (m Model) View() string {
	switch m.state.Lifecycle() {
	case dashboard.Loading:
		return m.renderLoading()
	case dashboard.Failed:
		return m.renderFailed()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	ctrlWidth := controlWidth
	if m.width < 80 {
		ctrlWidth = controlMinWidth
	}
	mainHeight := max(3, m.height-chromeHeight-m.helpHeight())
	tableWidth := max(10, m.width-ctrlWidth-layoutGap)

	controls := m.renderControls(ctrlWidth, mainHeight)
	panel := m.styles.Panel
	if m.focus == focusTable {
		panel = m.styles.PanelFocused
	}
	g := m.grid
	g.SetSize(tableWidth-panel.GetHorizontalFrameSize(), mainHeight-panel.GetVerticalFrameSize())
	table := panel.Render(g.View(m.styles))

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, controls, strings.Repeat(" ", layoutGap), table))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys.For(m.mode())))
	return b.String()
}

func (m Model) helpHeight() int {
	if !m.showHelp {
		return 0
	}
	return lipgloss.Height(m.help.View(m.keys.For(m.mode()))) - 1
}

func (m Model) renderHeader() string {
	title := m.styles.Title.Render("rowsift")
	source := m.styles.Subtitle.Render(util.Truncate(m.state.Source(), max(10, m.width/2)))

	count := ""
	if ds := m.state.Dataset(); ds != nil {
		count = fmt.Sprintf("%d of %s", m.state.Result().Len(), util.Plural(ds.Len(), "row", "rows"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, " ", source, "  ", m.styles.Muted.Render(count))
}

// renderControls stacks the base input and the pickers. When the stack is
// taller than height, leading controls are dropped until the focused one
// is visible.
func (m Model) renderControls(width, height int) string {
	var blocks []string
	focused := -1

	blocks = append(blocks, m.renderBase(width))
	if m.focus == focusBase {
		focused = 0
	}
	if m.state.Modulo().Active() {
		if m.focus == remaindersID {
			focused = len(blocks)
		}
		blocks = append(blocks, m.remainders.View(m.styles, width, m.focus == remaindersID))
	}
	for _, p := range m.pickers {
		if m.focus == p.ID() {
			focused = len(blocks)
		}
		blocks = append(blocks, p.View(m.styles, width, m.focus == p.ID()))
	}

	start := 0
	if focused >= 0 {
		for start < focused && stackHeight(blocks[start:focused+1]) > height {
			start++
		}
	}
	out := lipgloss.JoinVertical(lipgloss.Left, blocks[start:]...)
	return lipgloss.NewStyle().MaxHeight(height).Render(out)
}

func stackHeight(blocks []string) int {
	h := 0
	for _, b := range blocks {
		h += lipgloss.Height(b)
	}
	return h
}

func (m Model) renderBase(width int) string {
	panel := m.styles.Panel
	if m.focus == focusBase {
		panel = m.styles.PanelFocused
	}
	inner := max(4, width-panel.GetHorizontalFrameSize())

	hint := m.styles.Muted.Render("off")
	switch mod := m.state.Modulo(); {
	case mod.Active():
		hint = m.styles.Muted.Render(fmt.Sprintf("base %d, %s", mod.Base(),
			util.Plural(len(mod.Remainders()), "remainder", "remainders")))
	case m.state.BaseInput() != "":
		hint = m.styles.Warning.Render("not a valid base")
	}

	base := m.base
	base.Width = max(1, inner-lipgloss.Width(base.Prompt)-1)
	lines := []string{
		m.styles.PanelTitle.Render("Modulo"),
		base.View(),
		hint,
	}
	return panel.Width(inner + panel.GetHorizontalPadding()).Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatus() string {
	if m.status != "" {
		return m.styles.Error.Render(util.Truncate(m.status, max(10, m.width)))
	}

	var parts []string
	if n := len(m.state.Selection().Active()); n > 0 {
		parts = append(parts, util.Plural(n, "column filter", "column filters"))
	}
	if m.state.Modulo().Restricts() {
		parts = append(parts, "modulo filter")
	}
	if col, desc := m.grid.Sort(); col != "" {
		dir := "asc"
		if desc {
			dir = "desc"
		}
		parts = append(parts, fmt.Sprintf("sorted by %s %s", col, dir))
	}
	if len(parts) == 0 {
		parts = append(parts, "no filters")
	}
	return m.styles.StatusBar.Render(strings.Join(parts, " · "))
}

func (m Model) renderLoading() string {
	return m.styles.Muted.Render(fmt.Sprintf("Loading %s...", m.state.Source()))
}

func (m Model) renderFailed() string {
	width := min(max(20, m.width-4), 100)
	msg := errors.UserMessage(m.state.Err())
	if msg == "" {
		msg = "unknown error"
	}
	box := m.styles.ErrorBox.Width(width).Render(
		m.styles.Title.Render("Could not load "+util.Truncate(m.state.Source(), width-20)) + "\n\n" + msg,
	)
	return lipgloss.JoinVertical(lipgloss.Left, box, m.help.View(m.keys.For(m.mode())))
}
