package dataset

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// CompareValues orders two cell values. When both parse as finite numbers
// they compare numerically; otherwise they compare as strings. Numbers sort
// before non-numbers so mixed columns stay grouped.
func CompareValues(a, b string) int {
	na, aok := numeric(a)
	nb, bok := numeric(b)
	switch {
	case aok && bok:
		if c := compareFloat(na, nb); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	case aok:
		return -1
	case bok:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func numeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// SortOrder returns the permutation of rows ordered by column. Ties keep
// their original relative order, in both directions. rows is not modified.
func SortOrder(rows []Row, column string, desc bool) []int {
	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(i, j int) int {
		c := CompareValues(rows[i].Get(column), rows[j].Get(column))
		if desc {
			return -c
		}
		return c
	})
	return order
}

// SortRows returns a sorted copy of rows. See SortOrder.
func SortRows(rows []Row, column string, desc bool) []Row {
	out := make([]Row, len(rows))
	for i, idx := range SortOrder(rows, column, desc) {
		out[i] = rows[idx]
	}
	return out
}
