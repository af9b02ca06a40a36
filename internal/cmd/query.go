package cmd

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/rowsift/internal/dataset"
	"github.com/Iron-Ham/rowsift/internal/errors"
	"github.com/Iron-Ham/rowsift/internal/util"
)

var queryCmd = &cobra.Command{
	Use:   "query [file|url]",
	Short: "Filter a dataset without the dashboard",
	Long: `Apply the dashboard's filters to a dataset and print the matching rows.

Column filters keep rows whose value is one of the listed values; filters
on different columns are combined. The modulo filter keeps rows whose number
leaves one of the given remainders when divided by the base. A base without
remainders keeps every row.

Examples:
  rowsift query data.csv --where color=red,blue
  rowsift query data.csv --where color=red --where size=L --format json
  rowsift query data.csv --mod-base 7 --remainder 0 --remainder 3
  rowsift query data.csv --sort price --desc --page 2 --page-size 50`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

var (
	queryFilters  filterFlags
	queryFormat   string
	queryPage     int
	queryPageSize int
	querySort     string
	queryDesc     bool
)

func init() {
	rootCmd.AddCommand(queryCmd)

	queryFilters.register(queryCmd)
	queryCmd.Flags().StringVarP(&queryFormat, "format", "f", FormatTable, "output format: table, csv, json or yaml")
	queryCmd.Flags().IntVar(&queryPage, "page", 1, "page to print, starting at 1")
	queryCmd.Flags().IntVar(&queryPageSize, "page-size", 0, "rows per page (0 prints every row)")
	queryCmd.Flags().StringVar(&querySort, "sort", "", "column to sort by (default: dataset order)")
	queryCmd.Flags().BoolVar(&queryDesc, "desc", false, "sort in descending order")
}

func runQuery(cmd *cobra.Command, args []string) error {
	if err := validateFormat(queryFormat); err != nil {
		return err
	}
	if queryPage < 1 {
		return errors.NewValidationError("--page starts at 1").WithField("page").WithValue(queryPage)
	}
	if queryPageSize < 0 {
		return errors.NewValidationError("--page-size must not be negative").WithField("page-size").WithValue(queryPageSize)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	source, err := resolveSource(args, cfg)
	if err != nil {
		return err
	}
	logger := cliLogger(cmd).WithDataset(source)

	state, err := filteredState(cmd.Context(), source, cfg, queryFilters, logger)
	if err != nil {
		return err
	}

	columns := state.TableColumns()
	rows := state.Result().Rows
	if querySort != "" {
		if !slices.Contains(columns, querySort) {
			return errors.NewValidationError("unknown sort column").WithField("sort").WithValue(querySort)
		}
		rows = dataset.SortRows(rows, querySort, queryDesc)
	}

	page, pages, rows, err := paginate(rows, queryPage, queryPageSize)
	if err != nil {
		return err
	}
	width, _ := terminalSize()
	if err := writeRows(cmd.OutOrStdout(), queryFormat, columns, rows, width); err != nil {
		return err
	}

	total := state.Dataset().Len()
	fmt.Fprintf(cmd.ErrOrStderr(), "%d of %s match, page %d of %d\n",
		state.Result().Len(), util.Plural(total, "row", "rows"), page, pages)
	return nil
}

// paginate returns the 1-based page of rows using the same paginator as
// the dashboard grid. A zero size yields a single page holding every row.
func paginate(rows []dataset.Row, page, size int) (current, total int, out []dataset.Row, err error) {
	if size == 0 {
		return 1, 1, rows, nil
	}

	p := paginator.New()
	p.PerPage = size
	p.TotalPages = 1
	p.SetTotalPages(len(rows))
	if page > p.TotalPages {
		return 0, 0, nil, errors.NewValidationError(fmt.Sprintf("page out of range, there are %d", p.TotalPages)).
			WithField("page").WithValue(page)
	}
	p.Page = page - 1
	start, end := p.GetSliceBounds(len(rows))
	return page, p.TotalPages, rows[start:end], nil
}
