package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/rowsift/internal/tui/styles"
	"github.com/Iron-Ham/rowsift/internal/util"
)

// View renders the picker into a panel of the given outer width. A closed
// picker shows its title and selected values as chips; an open one adds the
// search box and the visible slice of options.
func (p Picker) View(s *styles.Styles, width int, focused bool) string {
	panel := s.Panel
	if focused || p.open {
		panel = s.PanelFocused
	}
	inner := max(4, width-panel.GetHorizontalFrameSize())

	lines := []string{s.PanelTitle.Render(util.Truncate(p.title, inner))}
	lines = append(lines, p.renderChips(s, inner))
	if p.open {
		p.input.Width = max(1, inner-lipgloss.Width(p.input.Prompt)-1)
		lines = append(lines, p.input.View())
		lines = append(lines, p.renderOptions(s, inner)...)
	}
	return panel.Width(inner + panel.GetHorizontalPadding()).Render(strings.Join(lines, "\n"))
}

func (p Picker) renderChips(s *styles.Styles, width int) string {
	if len(p.selected) == 0 {
		return s.Muted.Render("any")
	}

	var b strings.Builder
	used := 0
	for i, v := range p.selected {
		chip := s.Chip.Render(util.Truncate(v, 16))
		more := s.ChipMore.Render(fmt.Sprintf("+%d", len(p.selected)-i))
		if used+lipgloss.Width(chip)+lipgloss.Width(more) > width && i > 0 {
			b.WriteString(more)
			break
		}
		b.WriteString(chip)
		used += lipgloss.Width(chip)
	}
	return util.Truncate(b.String(), width)
}

func (p Picker) renderOptions(s *styles.Styles, width int) []string {
	if len(p.matches) == 0 {
		return []string{s.Muted.Render("no options")}
	}

	end := min(len(p.matches), p.offset+p.height)
	lines := make([]string, 0, end-p.offset+1)
	for i := p.offset; i < end; i++ {
		m := p.matches[i]

		cursor := "  "
		if i == p.cursor {
			cursor = s.PickerCursor.Render("> ")
		}
		check := "[ ] "
		label := highlight(util.Truncate(m.Label, width-6), m.Indexes, s.PickerOption, s.PickerHighlight)
		if p.IsSelected(m.Value) {
			check = s.PickerSelected.Render("[x] ")
		}
		lines = append(lines, cursor+check+label)
	}
	if hidden := len(p.matches) - end; hidden > 0 {
		lines = append(lines, s.Muted.Render(fmt.Sprintf("  %d more", hidden)))
	}
	return lines
}

// highlight renders label with the runes at indexes in hl and the rest in
// base. Indexes are byte offsets as reported by sahilm/fuzzy.
func highlight(label string, indexes []int, base, hl lipgloss.Style) string {
	if len(indexes) == 0 {
		return base.Render(label)
	}
	marked := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		marked[i] = true
	}

	var b strings.Builder
	for i, r := range label {
		if marked[i] {
			b.WriteString(hl.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}
