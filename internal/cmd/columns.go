package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/rowsift/internal/dashboard"
	"github.com/Iron-Ham/rowsift/internal/errors"
	"github.com/Iron-Ham/rowsift/internal/filter"
	"github.com/Iron-Ham/rowsift/internal/util"
)

var columnsCmd = &cobra.Command{
	Use:   "columns [file|url]",
	Short: "List the filterable columns and their options",
	Long: `List every filterable column with the options its picker would offer.

Options respect the other active filters, so passing --where shows how the
remaining choices narrow. A column's own filter never narrows its options.

Examples:
  rowsift columns data.csv
  rowsift columns data.csv --where color=red --format yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runColumns,
}

var (
	columnsFilters filterFlags
	columnsFormat  string
)

func init() {
	rootCmd.AddCommand(columnsCmd)

	columnsFilters.register(columnsCmd)
	columnsCmd.Flags().StringVarP(&columnsFormat, "format", "f", "text", "output format: text, json or yaml")
}

// columnInfo is the machine-readable form of one column.
type columnInfo struct {
	Name     string   `json:"name" yaml:"name"`
	Selected []string `json:"selected,omitempty" yaml:"selected,omitempty"`
	Options  []string `json:"options" yaml:"options"`
}

func runColumns(cmd *cobra.Command, args []string) error {
	switch columnsFormat {
	case "text", FormatJSON, FormatYAML:
	default:
		return errors.NewValidationError("unsupported format, use one of: text, json, yaml").
			WithField("format").WithValue(columnsFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	source, err := resolveSource(args, cfg)
	if err != nil {
		return err
	}

	state, err := filteredState(cmd.Context(), source, cfg, columnsFilters, cliLogger(cmd).WithDataset(source))
	if err != nil {
		return err
	}
	return writeColumns(cmd.OutOrStdout(), columnsFormat, columnInfos(state))
}

func columnInfos(state dashboard.State) []columnInfo {
	cols := state.Columns()
	infos := make([]columnInfo, len(cols))
	for i, col := range cols {
		infos[i] = columnInfo{
			Name:     col,
			Selected: state.Selection().Values(col),
			Options:  filter.Values(state.Options(col)),
		}
	}
	return infos
}

func writeColumns(w io.Writer, format string, infos []columnInfo) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case FormatYAML:
		return yaml.NewEncoder(w).Encode(infos)
	}

	if len(infos) == 0 {
		_, err := fmt.Fprintln(w, "No filterable columns.")
		return err
	}
	for _, info := range infos {
		header := fmt.Sprintf("%s (%s)", info.Name, util.Plural(len(info.Options), "option", "options"))
		if len(info.Selected) > 0 {
			header += " selected: " + strings.Join(info.Selected, ", ")
		}
		if _, err := fmt.Fprintf(w, "%s\n  %s\n", header, strings.Join(info.Options, ", ")); err != nil {
			return err
		}
	}
	return nil
}
