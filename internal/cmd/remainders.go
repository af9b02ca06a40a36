package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/rowsift/internal/errors"
	"github.com/Iron-Ham/rowsift/internal/filter"
)

var remaindersCmd = &cobra.Command{
	Use:   "remainders",
	Short: "List the remainder options for a modulo base",
	Long: `List the remainders 0..base-1 the dashboard offers for a base, in
increasing order. --query keeps remainders whose decimal form contains it.
The list stops after --limit entries.

Examples:
  rowsift remainders --base 12
  rowsift remainders --base 1000 --query 7 --limit 20`,
	Args: cobra.NoArgs,
	RunE: runRemainders,
}

var (
	remaindersBase  string
	remaindersQuery string
	remaindersLimit int
)

func init() {
	rootCmd.AddCommand(remaindersCmd)

	remaindersCmd.Flags().StringVar(&remaindersBase, "base", "", "modulo base (required)")
	remaindersCmd.Flags().StringVarP(&remaindersQuery, "query", "q", "", "substring the remainder must contain")
	remaindersCmd.Flags().IntVarP(&remaindersLimit, "limit", "n", filter.MaxRemainderOptions, "maximum number of remainders")
	_ = remaindersCmd.MarkFlagRequired("base")
}

func runRemainders(cmd *cobra.Command, args []string) error {
	base, err := filter.ParseBase(remaindersBase)
	if err != nil {
		return errors.NewValidationError("invalid --base").
			WithField("base").WithValue(remaindersBase).WithCause(err)
	}
	if remaindersLimit < 1 {
		return errors.NewValidationError("--limit must be positive").
			WithField("limit").WithValue(remaindersLimit)
	}

	for _, opt := range filter.RemainderOptions(base, remaindersQuery, remaindersLimit) {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), opt.Label); err != nil {
			return err
		}
	}
	return nil
}
