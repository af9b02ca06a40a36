package filter

import (
	"slices"

	"github.com/Iron-Ham/rowsift/internal/dataset"
)

// Result is the output of a recompute: the rows passing every active
// filter, in dataset order, and the per-column option catalog.
type Result struct {
	// Rows is the filtered view in original dataset order.
	Rows []dataset.Row
	// Indices holds the dataset index of each row in Rows.
	Indices []int
	// Catalog holds each column's currently selectable options.
	Catalog Catalog
}

// Len returns the number of visible rows.
func (r Result) Len() int {
	return len(r.Rows)
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithModuloNarrowsOptions makes the modulo filter narrow option lists as
// well as rows. By default it only narrows rows.
func WithModuloNarrowsOptions(narrow bool) EngineOption {
	return func(e *Engine) {
		e.moduloNarrowsOptions = narrow
	}
}

// WithMaxRemainderOptions sets the cap used by LoadRemainderOptions.
// Non-positive values keep MaxRemainderOptions.
func WithMaxRemainderOptions(limit int) EngineOption {
	return func(e *Engine) {
		if limit > 0 {
			e.maxRemainderOptions = limit
		}
	}
}

// Engine recomputes filtered views over one immutable dataset.
// It holds no filter state and is safe for concurrent use.
type Engine struct {
	ds      *dataset.Dataset
	columns []string

	moduloNarrowsOptions bool
	maxRemainderOptions  int
}

// NewEngine creates an Engine over ds filtering on columns, which are
// normally the columns returned by dataset.Discover.
func NewEngine(ds *dataset.Dataset, columns []string, opts ...EngineOption) *Engine {
	e := &Engine{
		ds:                  ds,
		columns:             slices.Clone(columns),
		maxRemainderOptions: MaxRemainderOptions,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dataset returns the dataset the engine filters.
func (e *Engine) Dataset() *dataset.Dataset {
	return e.ds
}

// Columns returns the filterable columns in discovery order.
func (e *Engine) Columns() []string {
	return slices.Clone(e.columns)
}

// Recompute filters the full dataset with sel and mod. It never mutates
// its inputs, and identical inputs always give identical results.
//
// Each row is checked once against every column. A row failing no column
// filter is visible (subject to mod) and contributes to every column's
// options; a row failing exactly one column k still contributes to k's
// options, since k's own selection is ignored when computing them.
func (e *Engine) Recompute(sel Selection, mod Modulo) Result {
	rows := e.ds.Rows()
	result := Result{
		Rows:    make([]dataset.Row, 0, len(rows)),
		Indices: make([]int, 0, len(rows)),
	}

	seen := make([]map[string]struct{}, len(e.columns))
	for i := range seen {
		seen[i] = make(map[string]struct{})
	}

	for idx, row := range rows {
		failures, failed := 0, -1
		for ci, col := range e.columns {
			if !sel.Allows(col, row.Get(col)) {
				failures++
				failed = ci
				if failures > 1 {
					break
				}
			}
		}
		if failures > 1 {
			continue
		}

		modOK := mod.Allows(row.Get(dataset.NumberColumn))
		if failures == 0 && modOK {
			result.Rows = append(result.Rows, row)
			result.Indices = append(result.Indices, idx)
		}

		if e.moduloNarrowsOptions && !modOK {
			continue
		}
		for ci, col := range e.columns {
			if failures == 0 || ci == failed {
				seen[ci][row.Get(col)] = struct{}{}
			}
		}
	}

	result.Catalog = make(Catalog, len(e.columns))
	for ci, col := range e.columns {
		values := make([]string, 0, len(seen[ci]))
		for v := range seen[ci] {
			values = append(values, v)
		}
		opts := OptionsOf(values)
		sortOptions(opts)
		result.Catalog[col] = opts
	}

	return result
}
