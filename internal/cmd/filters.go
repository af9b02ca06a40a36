package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/rowsift/internal/config"
	"github.com/Iron-Ham/rowsift/internal/dashboard"
	"github.com/Iron-Ham/rowsift/internal/dataset"
	"github.com/Iron-Ham/rowsift/internal/errors"
	"github.com/Iron-Ham/rowsift/internal/filter"
	"github.com/Iron-Ham/rowsift/internal/logging"
)

// filterFlags holds the filter flags shared by query and columns.
type filterFlags struct {
	where      []string
	modBase    string
	remainders []string
	exclude    []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.where, "where", nil, "column filter as col=v1,v2 (repeatable)")
	cmd.Flags().StringVar(&f.modBase, "mod-base", "", "modulo base applied to the number column")
	cmd.Flags().StringSliceVar(&f.remainders, "remainder", nil, "remainders to keep (repeatable, requires --mod-base)")
	cmd.Flags().StringSliceVar(&f.exclude, "exclude", nil, "glob patterns of columns to drop (overrides dataset.exclude_columns)")
}

// parseWhere turns col=v1,v2 clauses into per-column value lists, merging
// repeated columns in order.
func parseWhere(clauses []string) (columns []string, values map[string][]string, err error) {
	values = make(map[string][]string)
	for _, clause := range clauses {
		col, vals, ok := strings.Cut(clause, "=")
		col = strings.TrimSpace(col)
		if !ok || col == "" {
			return nil, nil, errors.NewValidationError("expected col=value[,value...]").
				WithField("where").WithValue(clause)
		}
		if _, seen := values[col]; !seen {
			columns = append(columns, col)
		}
		values[col] = append(values[col], strings.Split(vals, ",")...)
	}
	return columns, values, nil
}

// filteredState loads source and applies the filter flags through the same
// reducer the dashboard uses.
func filteredState(ctx context.Context, source string, cfg *config.Config, f filterFlags, logger *logging.Logger) (dashboard.State, error) {
	exclude := cfg.Dataset.ExcludeColumns
	if len(f.exclude) > 0 {
		exclude = f.exclude
	}
	reducer := dashboard.NewReducer(dashboard.Options{
		Exclude: exclude,
		EngineOptions: []filter.EngineOption{
			filter.WithModuloNarrowsOptions(cfg.Filter.ModuloNarrowsOptions),
			filter.WithMaxRemainderOptions(cfg.Filter.MaxRemainderOptions),
		},
	}, logger)

	var events []dashboard.Event

	whereCols, whereVals, err := parseWhere(f.where)
	if err != nil {
		return dashboard.State{}, err
	}
	for _, col := range whereCols {
		events = append(events, dashboard.SelectionChanged{Column: col, Values: whereVals[col]})
	}

	switch {
	case f.modBase != "":
		if _, err := filter.ParseBase(f.modBase); err != nil {
			return dashboard.State{}, errors.NewValidationError("invalid --mod-base").
				WithField("mod-base").WithValue(f.modBase).WithCause(err)
		}
		events = append(events, dashboard.BaseChanged{Input: f.modBase})
		if len(f.remainders) > 0 {
			events = append(events, dashboard.RemaindersChanged{Values: f.remainders})
		}
	case len(f.remainders) > 0:
		return dashboard.State{}, errors.NewValidationError("--remainder requires --mod-base").
			WithField("remainder")
	}

	ds, err := dataset.Load(ctx, source, dataset.LoadOptions{Timeout: cfg.Dataset.LoadTimeout})
	if err != nil {
		return dashboard.State{}, err
	}
	logger.Debug("dataset loaded", logging.KeyDataset, source, "rows", ds.Len())

	state, err := reducer.Update(dashboard.NewState(source), dashboard.Loaded{Dataset: ds})
	if err != nil {
		return state, err
	}
	for _, ev := range events {
		if state, err = reducer.Update(state, ev); err != nil {
			return state, fmt.Errorf("cannot apply filter: %w", err)
		}
	}
	return state, nil
}
