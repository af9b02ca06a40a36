// Package dashboard holds the state of an interactive rowsift session as
// immutable snapshots. Every user action or load result is an [Event]; a
// [Reducer] applies it to a [State] and returns the next snapshot, running a
// full filter recompute whenever the filters or the dataset change.
package dashboard

import (
	"slices"

	"github.com/Iron-Ham/rowsift/internal/dataset"
	"github.com/Iron-Ham/rowsift/internal/filter"
)

// Lifecycle is the load state of a session.
type Lifecycle int

const (
	// Loading means the dataset has not arrived yet.
	Loading Lifecycle = iota
	// Ready means a dataset is loaded and filters may be applied.
	Ready
	// Failed means the last load attempt failed; see State.Err.
	Failed
)

// String returns the lifecycle name.
func (l Lifecycle) String() string {
	switch l {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is one snapshot of a session. It is never modified after the
// Reducer returns it; accessors return copies where the underlying value is
// mutable.
type State struct {
	lifecycle Lifecycle
	source    string
	err       error

	ds      *dataset.Dataset
	engine  *filter.Engine
	columns []string

	selection filter.Selection
	modulo    filter.Modulo
	baseInput string
	result    filter.Result

	// generation increments on every recompute
	generation int
}

// NewState returns the initial Loading state for source.
func NewState(source string) State {
	return State{lifecycle: Loading, source: source}
}

// Lifecycle returns the load state.
func (s State) Lifecycle() Lifecycle { return s.lifecycle }

// Ready reports whether filters can be applied.
func (s State) Ready() bool { return s.lifecycle == Ready }

// Source returns the dataset path or URL.
func (s State) Source() string { return s.source }

// Err returns the load failure while Failed, or nil.
func (s State) Err() error { return s.err }

// Dataset returns the loaded dataset, or nil before the first load.
func (s State) Dataset() *dataset.Dataset { return s.ds }

// Engine returns the filter engine for the loaded dataset.
func (s State) Engine() *filter.Engine { return s.engine }

// Columns returns the filterable columns in discovery order.
func (s State) Columns() []string { return slices.Clone(s.columns) }

// TableColumns returns the columns shown in the table: the number column
// first, then the filterable columns.
func (s State) TableColumns() []string {
	if s.ds == nil {
		return nil
	}
	return append([]string{dataset.NumberColumn}, s.columns...)
}

// Selection returns the column filters.
func (s State) Selection() filter.Selection { return s.selection }

// Modulo returns the modulo filter.
func (s State) Modulo() filter.Modulo { return s.modulo }

// BaseInput returns the raw text last entered as the modulo base.
func (s State) BaseInput() string { return s.baseInput }

// Result returns the filtered view and option catalog.
func (s State) Result() filter.Result { return s.result }

// Options returns the current option list of column.
func (s State) Options(column string) []filter.Option {
	return s.result.Catalog.Options(column)
}

// Generation counts recomputes; views can compare it to skip redraw work.
func (s State) Generation() int { return s.generation }
