package filter

import "slices"

// Option is a selectable (value, label) pair offered by a multi-select.
type Option struct {
	Value string
	Label string
}

// OptionsOf returns options whose value and label are both the given
// strings, in the given order.
func OptionsOf(values []string) []Option {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Value: v, Label: v}
	}
	return opts
}

// Values returns the option values in order.
func Values(opts []Option) []string {
	vals := make([]string, len(opts))
	for i, o := range opts {
		vals[i] = o.Value
	}
	return vals
}

// Catalog maps each filterable column to its ordered options.
type Catalog map[string][]Option

// CatalogFromDistinct builds a catalog from per-column distinct values.
// Options are sorted by label.
func CatalogFromDistinct(distinct map[string][]string) Catalog {
	c := make(Catalog, len(distinct))
	for col, values := range distinct {
		opts := OptionsOf(values)
		sortOptions(opts)
		c[col] = opts
	}
	return c
}

// Options returns the options for column, or nil when unknown.
func (c Catalog) Options(column string) []Option {
	return c[column]
}

// Contains reports whether value is currently offered for column.
func (c Catalog) Contains(column, value string) bool {
	_, found := slices.BinarySearchFunc(c[column], value, func(o Option, v string) int {
		switch {
		case o.Label < v:
			return -1
		case o.Label > v:
			return 1
		default:
			return 0
		}
	})
	return found
}

func sortOptions(opts []Option) {
	slices.SortFunc(opts, func(a, b Option) int {
		switch {
		case a.Label < b.Label:
			return -1
		case a.Label > b.Label:
			return 1
		default:
			return 0
		}
	})
}
