package dataset

import (
	"slices"

	"github.com/gobwas/glob"

	"github.com/Iron-Ham/rowsift/internal/errors"
)

// DiscoverOptions controls which header columns become filter columns.
type DiscoverOptions struct {
	// Exclude holds glob patterns (gobwas/glob syntax) naming columns that
	// should not be offered as filters. NumberColumn is always excluded.
	Exclude []string
}

// Schema is the result of column discovery: the filterable columns in
// header order and, for each, its distinct values sorted lexicographically.
type Schema struct {
	Columns  []string
	Distinct map[string][]string
}

// Discover derives the filterable columns of ds and their distinct values.
// It fails with ErrNoData when ds is empty or lacks a NumberColumn header,
// and with ErrInvalidInput when an exclude pattern does not compile.
func Discover(ds *Dataset, opts DiscoverOptions) (*Schema, error) {
	if err := Validate(ds); err != nil {
		return nil, err
	}

	matchers, err := compileExcludes(opts.Exclude)
	if err != nil {
		return nil, err
	}

	var columns []string
	for _, name := range ds.header {
		if name == NumberColumn || excluded(matchers, name) {
			continue
		}
		columns = append(columns, name)
	}

	distinct := make(map[string][]string, len(columns))
	for _, col := range columns {
		distinct[col] = DistinctSorted(ds.rows, col)
	}

	return &Schema{Columns: columns, Distinct: distinct}, nil
}

// DistinctSorted returns the unique values of column across rows, sorted by
// byte-wise string comparison.
func DistinctSorted(rows []Row, column string) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		seen[row.Get(column)] = struct{}{}
	}
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	slices.Sort(values)
	return values
}

func compileExcludes(patterns []string) ([]glob.Glob, error) {
	matchers := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.NewValidationError("invalid column exclude pattern").
				WithField("dataset.exclude_columns").
				WithValue(pattern).
				WithCause(err)
		}
		matchers = append(matchers, g)
	}
	return matchers, nil
}

func excluded(matchers []glob.Glob, column string) bool {
	for _, g := range matchers {
		if g.Match(column) {
			return true
		}
	}
	return false
}
