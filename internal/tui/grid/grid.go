// Package grid renders the filtered view as a paginated, sortable table
// built on bubbles/table and bubbles/paginator.
//
// Sorting is presentation only: the grid keeps the rows it was given in
// dataset order and derives a sorted permutation for display.
package grid

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Iron-Ham/rowsift/internal/dataset"
	"github.com/Iron-Ham/rowsift/internal/tui/keymap"
	"github.com/Iron-Ham/rowsift/internal/tui/styles"
	"github.com/Iron-Ham/rowsift/internal/util"
)

const (
	// DefaultPageSize is the number of rows per page.
	DefaultPageSize = 100
	// MaxColumnWidth caps the width of any column; longer cells are
	// truncated with an ellipsis.
	MaxColumnWidth = 32
	minColumnWidth = 3
)

// NumberTitle is the header shown for the number column.
const NumberTitle = "Number"

// Grid is a paginated table over a list of rows.
type Grid struct {
	keys  keymap.KeyMap
	table table.Model
	pager paginator.Model

	columns []string
	rows    []dataset.Row
	order   []int

	sortCol int // index into columns, -1 for dataset order
	desc    bool

	width  int
	height int
}

// New creates an empty grid with pageSize rows per page.
func New(pageSize int, s *styles.Styles) Grid {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if s == nil {
		s = styles.Active()
	}
	pager := paginator.New()
	pager.Type = paginator.Arabic
	pager.PerPage = pageSize

	g := Grid{
		keys:    keymap.Default(),
		table:   table.New(table.WithFocused(true)),
		pager:   pager,
		sortCol: -1,
	}
	g.SetStyles(s)
	return g
}

// SetStyles applies a style set.
func (g *Grid) SetStyles(s *styles.Styles) {
	ts := table.DefaultStyles()
	ts.Header = s.TableHeader
	ts.Cell = s.TableCell
	ts.Selected = s.TableSelected
	g.table.SetStyles(ts)
}

// SetColumns replaces the column list and resets sorting. The first column
// is shown under NumberTitle when it is the number column.
func (g *Grid) SetColumns(columns []string) {
	g.columns = append([]string(nil), columns...)
	g.sortCol = -1
	g.desc = false
	g.resort()
}

// SetRows replaces the rows, given in dataset order. The current page is
// kept when it still exists.
func (g *Grid) SetRows(rows []dataset.Row) {
	g.rows = rows
	g.resort()
}

// SetSize sets the outer dimensions available to the table and pager.
func (g *Grid) SetSize(width, height int) {
	g.width, g.height = width, height
	g.table.SetHeight(max(1, height-1))
	if width > 0 {
		g.table.SetWidth(width)
	}
}

// Focus and Blur control whether the table reacts to navigation keys.
func (g *Grid) Focus() { g.table.Focus() }

// Blur stops the table from reacting to navigation keys.
func (g *Grid) Blur() { g.table.Blur() }

// Page returns the zero-based current page.
func (g Grid) Page() int { return g.pager.Page }

// TotalPages returns the number of pages, at least 1.
func (g Grid) TotalPages() int { return max(1, g.pager.TotalPages) }

// Len returns the number of rows across all pages.
func (g Grid) Len() int { return len(g.rows) }

// Sort returns the sort column name, or "" for dataset order, and the
// direction.
func (g Grid) Sort() (column string, desc bool) {
	if g.sortCol < 0 {
		return "", false
	}
	return g.columns[g.sortCol], g.desc
}

// PageRows returns the rows of the current page in display order.
func (g Grid) PageRows() []dataset.Row {
	start, end := g.pager.GetSliceBounds(len(g.order))
	out := make([]dataset.Row, 0, end-start)
	for _, idx := range g.order[start:end] {
		out = append(out, g.rows[idx])
	}
	return out
}

// CycleSort moves sorting to the next column, ascending. After the last
// column the grid returns to dataset order.
func (g *Grid) CycleSort() {
	g.sortCol++
	if g.sortCol >= len(g.columns) {
		g.sortCol = -1
	}
	g.desc = false
	g.resort()
}

// ReverseSort flips the direction, sorting by the first column when the
// grid is in dataset order.
func (g *Grid) ReverseSort() {
	if g.sortCol < 0 {
		if len(g.columns) == 0 {
			return
		}
		g.sortCol = 0
	}
	g.desc = !g.desc
	g.resort()
}

// ClearSort restores dataset order.
func (g *Grid) ClearSort() {
	g.sortCol = -1
	g.desc = false
	g.resort()
}

// NextPage and PrevPage move between pages.
func (g *Grid) NextPage() {
	g.pager.NextPage()
	g.refresh()
}

// PrevPage moves to the previous page.
func (g *Grid) PrevPage() {
	g.pager.PrevPage()
	g.refresh()
}

// Update handles paging, sorting and row navigation keys.
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, g.keys.NextPage):
			g.NextPage()
			return g, nil
		case key.Matches(msg, g.keys.PrevPage):
			g.PrevPage()
			return g, nil
		case key.Matches(msg, g.keys.SortNext):
			g.CycleSort()
			return g, nil
		case key.Matches(msg, g.keys.SortReverse):
			g.ReverseSort()
			return g, nil
		case key.Matches(msg, g.keys.SortClear):
			g.ClearSort()
			return g, nil
		}
	}
	var cmd tea.Cmd
	g.table, cmd = g.table.Update(msg)
	return g, cmd
}

// View renders the table followed by the page indicator.
func (g Grid) View(s *styles.Styles) string {
	if len(g.rows) == 0 {
		return s.Muted.Render("No rows match the current filters.")
	}
	status := fmt.Sprintf("page %s  %s", g.pager.View(), util.Plural(len(g.rows), "row", "rows"))
	return lipgloss.JoinVertical(lipgloss.Left, g.table.View(), s.Muted.Render(status))
}

func (g *Grid) resort() {
	if g.sortCol >= len(g.columns) {
		g.sortCol = -1
	}
	if g.sortCol < 0 {
		g.order = make([]int, len(g.rows))
		for i := range g.order {
			g.order[i] = i
		}
	} else {
		g.order = dataset.SortOrder(g.rows, g.columns[g.sortCol], g.desc)
	}

	g.pager.TotalPages = 1
	g.pager.SetTotalPages(len(g.rows))
	if g.pager.Page >= g.TotalPages() {
		g.pager.Page = g.TotalPages() - 1
	}
	g.refresh()
}

// refresh pushes the current page into the table widget.
func (g *Grid) refresh() {
	page := g.PageRows()
	widths := g.columnWidths(page)

	cols := make([]table.Column, len(g.columns))
	for i, name := range g.columns {
		cols[i] = table.Column{Title: util.Truncate(g.title(i, name), widths[i]), Width: widths[i]}
	}
	rows := make([]table.Row, len(page))
	for i, r := range page {
		cells := make(table.Row, len(g.columns))
		for j, name := range g.columns {
			cells[j] = util.Truncate(r.Get(name), widths[j])
		}
		rows[i] = cells
	}

	// Rows must be cleared before the column count changes.
	g.table.SetRows(nil)
	g.table.SetColumns(cols)
	g.table.SetRows(rows)
	g.table.GotoTop()
}

func (g Grid) title(i int, name string) string {
	title := name
	if i == 0 && name == dataset.NumberColumn {
		title = NumberTitle
	}
	if i == g.sortCol {
		if g.desc {
			return title + " ▼"
		}
		return title + " ▲"
	}
	return title
}

// columnWidths sizes each column to its widest header or cell on the page,
// capped at MaxColumnWidth.
func (g Grid) columnWidths(page []dataset.Row) []int {
	widths := make([]int, len(g.columns))
	for i, name := range g.columns {
		w := max(minColumnWidth, ansi.StringWidth(g.title(i, name)))
		for _, r := range page {
			w = max(w, ansi.StringWidth(r.Get(name)))
		}
		widths[i] = min(w, MaxColumnWidth)
	}
	return widths
}
