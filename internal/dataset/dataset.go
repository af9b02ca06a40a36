// Package dataset loads tabular data and describes its shape.
//
// A [Dataset] is an ordered, immutable sequence of [Row] values sharing the
// column set of the header. One designated column, [NumberColumn], holds a
// numeric identifier; it is never offered as a filter column but drives the
// modulo filter.
//
// # Loading
//
//	ds, err := dataset.Load(ctx, "testdata/people.csv", dataset.LoadOptions{})
//	if errors.Is(err, errors.ErrNoData) { ... }
//
// # Discovery
//
//	schema, err := dataset.Discover(ds, dataset.DiscoverOptions{})
//	for _, col := range schema.Columns { ... }
package dataset

import "slices"

// NumberColumn is the identifier column used by the modulo filter.
const NumberColumn = "number"

// Row maps column names to cell values.
type Row map[string]string

// Get returns the value for column, or "" if the row has no such cell.
func (r Row) Get(column string) string {
	return r[column]
}

// Dataset is an ordered sequence of rows loaded once from a source.
// It must not be modified after construction.
type Dataset struct {
	source string
	header []string
	rows   []Row
}

// New creates a Dataset. The header slice and rows are retained, so callers
// must not modify them afterwards.
func New(source string, header []string, rows []Row) *Dataset {
	return &Dataset{
		source: source,
		header: header,
		rows:   rows,
	}
}

// Source returns the path or URL the dataset was loaded from.
func (d *Dataset) Source() string {
	return d.source
}

// Header returns a copy of the column names in source order.
func (d *Dataset) Header() []string {
	return slices.Clone(d.header)
}

// HasColumn reports whether the header contains column.
func (d *Dataset) HasColumn(column string) bool {
	return slices.Contains(d.header, column)
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

// Empty reports whether the dataset has no rows.
func (d *Dataset) Empty() bool {
	return d.Len() == 0
}

// Row returns the i-th row in source order.
func (d *Dataset) Row(i int) Row {
	return d.rows[i]
}

// Rows returns the rows in source order. The returned slice is shared with
// the dataset and is read-only.
func (d *Dataset) Rows() []Row {
	return d.rows
}
