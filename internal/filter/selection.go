package filter

import (
	"maps"
	"slices"
)

// valueSet is an ordered set of strings. Order is the order of first
// selection and is only used for display.
type valueSet struct {
	order []string
	index map[string]struct{}
}

func newValueSet(values []string) valueSet {
	vs := valueSet{index: make(map[string]struct{}, len(values))}
	for _, v := range values {
		if _, dup := vs.index[v]; dup {
			continue
		}
		vs.index[v] = struct{}{}
		vs.order = append(vs.order, v)
	}
	return vs
}

func (vs valueSet) empty() bool {
	return len(vs.order) == 0
}

func (vs valueSet) contains(v string) bool {
	_, ok := vs.index[v]
	return ok
}

func (vs valueSet) values() []string {
	return slices.Clone(vs.order)
}

// Selection maps each filterable column to its allowed values. An empty
// allowed-set leaves the column unrestricted. The zero value restricts
// nothing and knows no columns.
type Selection struct {
	columns []string
	allowed map[string]valueSet
}

// NewSelection returns a Selection with every column unrestricted.
func NewSelection(columns []string) Selection {
	allowed := make(map[string]valueSet, len(columns))
	for _, col := range columns {
		allowed[col] = valueSet{}
	}
	return Selection{
		columns: slices.Clone(columns),
		allowed: allowed,
	}
}

// Columns returns the columns this selection covers, in discovery order.
func (s Selection) Columns() []string {
	return slices.Clone(s.columns)
}

// Has reports whether column is covered by the selection.
func (s Selection) Has(column string) bool {
	_, ok := s.allowed[column]
	return ok
}

// With returns a copy of s where column's allowed-set is values. Duplicate
// values are collapsed; nil or empty values clear the restriction. The
// receiver is not modified.
func (s Selection) With(column string, values []string) Selection {
	next := Selection{
		columns: s.columns,
		allowed: maps.Clone(s.allowed),
	}
	if next.allowed == nil {
		next.allowed = make(map[string]valueSet, 1)
	}
	if _, known := next.allowed[column]; !known {
		next.columns = append(slices.Clone(s.columns), column)
	}
	next.allowed[column] = newValueSet(values)
	return next
}

// Clear returns a copy of s with every column unrestricted.
func (s Selection) Clear() Selection {
	return NewSelection(s.columns)
}

// Retain returns a selection over columns, keeping the allowed values of
// any column s already covers.
func (s Selection) Retain(columns []string) Selection {
	next := NewSelection(columns)
	for _, col := range columns {
		if vs, ok := s.allowed[col]; ok {
			next.allowed[col] = vs
		}
	}
	return next
}

// Values returns the allowed values of column in selection order.
func (s Selection) Values(column string) []string {
	return s.allowed[column].values()
}

// Restricted reports whether column has a non-empty allowed-set.
func (s Selection) Restricted(column string) bool {
	return !s.allowed[column].empty()
}

// Active returns the restricted columns in discovery order.
func (s Selection) Active() []string {
	var active []string
	for _, col := range s.columns {
		if s.Restricted(col) {
			active = append(active, col)
		}
	}
	return active
}

// Allows reports whether value satisfies column's filter.
func (s Selection) Allows(column, value string) bool {
	vs := s.allowed[column]
	return vs.empty() || vs.contains(value)
}

// Equal reports whether s and other restrict the same columns to the same
// sets of values, ignoring order.
func (s Selection) Equal(other Selection) bool {
	for _, col := range s.Active() {
		if !sameSet(s.allowed[col], other.allowed[col]) {
			return false
		}
	}
	for _, col := range other.Active() {
		if !sameSet(s.allowed[col], other.allowed[col]) {
			return false
		}
	}
	return true
}

func sameSet(a, b valueSet) bool {
	if len(a.order) != len(b.order) {
		return false
	}
	for v := range a.index {
		if !b.contains(v) {
			return false
		}
	}
	return true
}
