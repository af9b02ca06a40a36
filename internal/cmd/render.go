package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/rowsift/internal/dataset"
	"github.com/Iron-Ham/rowsift/internal/errors"
	"github.com/Iron-Ham/rowsift/internal/tui/grid"
	"github.com/Iron-Ham/rowsift/internal/tui/styles"
	"github.com/Iron-Ham/rowsift/internal/util"
)

// Output formats accepted by --format.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// OutputFormats lists the accepted --format values.
func OutputFormats() []string {
	return []string{FormatTable, FormatCSV, FormatJSON, FormatYAML}
}

func validateFormat(format string) error {
	if !slices.Contains(OutputFormats(), format) {
		return errors.NewValidationError(fmt.Sprintf("unsupported format, use one of: %s", strings.Join(OutputFormats(), ", "))).
			WithField("format").WithValue(format)
	}
	return nil
}

// writeRows renders rows restricted to columns. width bounds the table
// format; zero leaves it unbounded.
func writeRows(w io.Writer, format string, columns []string, rows []dataset.Row, width int) error {
	switch format {
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(columns); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
		for _, r := range rows {
			if err := cw.Write(cells(r, columns)); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		cw.Flush()
		return cw.Error()

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records(columns, rows))

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(yamlRecords(columns, rows)); err != nil {
			return fmt.Errorf("failed to write YAML: %w", err)
		}
		return enc.Close()

	default:
		_, err := fmt.Fprintln(w, renderTable(columns, rows, width))
		return err
	}
}

func cells(r dataset.Row, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = r.Get(c)
	}
	return out
}

// records returns rows as JSON objects restricted to columns.
func records(columns []string, rows []dataset.Row) []map[string]string {
	out := make([]map[string]string, len(rows))
	for i, r := range rows {
		rec := make(map[string]string, len(columns))
		for _, c := range columns {
			rec[c] = r.Get(c)
		}
		out[i] = rec
	}
	return out
}

// yamlRecords builds mapping nodes so that keys keep column order.
func yamlRecords(columns []string, rows []dataset.Row) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, r := range rows {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, c := range columns {
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: c},
				&yaml.Node{Kind: yaml.ScalarNode, Value: r.Get(c), Style: yaml.DoubleQuotedStyle},
			)
		}
		seq.Content = append(seq.Content, m)
	}
	return seq
}

func renderTable(columns []string, rows []dataset.Row, width int) string {
	s := styles.Active()
	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c
		if i == 0 && c == dataset.NumberColumn {
			headers[i] = grid.NumberTitle
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(s.Palette.Border)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			return s.TableCell
		})
	for _, r := range rows {
		row := cells(r, columns)
		for i := range row {
			row[i] = util.Truncate(row[i], grid.MaxColumnWidth)
		}
		t.Row(row...)
	}
	if width > 0 {
		t.Width(width)
	}
	return t.Render()
}
