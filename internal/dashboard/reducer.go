package dashboard

import (
	"fmt"
	"slices"
	"time"

	"github.com/Iron-Ham/rowsift/internal/dataset"
	"github.com/Iron-Ham/rowsift/internal/errors"
	"github.com/Iron-Ham/rowsift/internal/filter"
	"github.com/Iron-Ham/rowsift/internal/logging"
)

// Options configures a Reducer.
type Options struct {
	// Exclude holds glob patterns for columns that are shown but not
	// filterable.
	Exclude []string
	// EngineOptions are passed to every filter.Engine the reducer builds.
	EngineOptions []filter.EngineOption
}

// Reducer applies events to states. It holds configuration only, so one
// Reducer can serve any number of states.
type Reducer struct {
	opts   Options
	logger *logging.Logger
}

// NewReducer creates a Reducer. A nil logger disables logging.
func NewReducer(opts Options, logger *logging.Logger) *Reducer {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Reducer{opts: opts, logger: logger.WithComponent("dashboard")}
}

var defaultReducer = NewReducer(Options{}, nil)

// Update applies ev to s with the default options.
func Update(s State, ev Event) (State, error) {
	return defaultReducer.Update(s, ev)
}

// Update returns the state that follows s after ev. s itself is never
// changed. On error the returned state is s unchanged, except for a failed
// Loaded, which moves the session to Failed.
//
// Filter events before the dataset is Ready fail with ErrNotReady. An
// invalid base input is not an error: it deactivates the modulo filter.
func (r *Reducer) Update(s State, ev Event) (State, error) {
	switch ev := ev.(type) {
	case LoadStarted:
		return r.loadStarted(s), nil
	case Loaded:
		return r.loaded(s, ev.Dataset)
	case LoadFailed:
		return r.loadFailed(s, ev.Err), nil
	case Reloaded:
		if !s.Ready() {
			return r.loaded(s, ev.Dataset)
		}
		return r.reloaded(s, ev.Dataset)
	}

	if !s.Ready() {
		return s, errors.NewFilterError(
			fmt.Sprintf("cannot apply %s while %s", ev.eventName(), s.lifecycle), errors.ErrNotReady)
	}

	switch ev := ev.(type) {
	case SelectionChanged:
		return r.selectionChanged(s, ev)
	case BaseChanged:
		return r.baseChanged(s, ev.Input), nil
	case RemaindersChanged:
		next := s
		next.modulo = s.modulo.WithRemainders(ev.Values)
		return r.recompute(next), nil
	case Reset:
		next := s
		next.selection = s.selection.Clear()
		next.modulo = filter.Modulo{}
		next.baseInput = ""
		return r.recompute(next), nil
	default:
		return s, errors.NewValidationError(fmt.Sprintf("unsupported event %T", ev)).
			WithCause(errors.ErrInvalidInput)
	}
}

func (r *Reducer) loadStarted(s State) State {
	next := s
	next.lifecycle = Loading
	next.err = nil
	r.logger.Debug("loading dataset", logging.KeyDataset, s.source)
	return next
}

func (r *Reducer) loadFailed(s State, err error) State {
	next := s
	next.lifecycle = Failed
	next.err = err
	r.logger.Error("dataset load failed", logging.KeyDataset, s.source, logging.KeyError, err)
	return next
}

// loaded installs ds with every filter cleared.
func (r *Reducer) loaded(s State, ds *dataset.Dataset) (State, error) {
	schema, err := dataset.Discover(ds, dataset.DiscoverOptions{Exclude: r.opts.Exclude})
	if err != nil {
		return r.loadFailed(s, err), err
	}

	next := State{
		lifecycle:  Ready,
		source:     s.source,
		ds:         ds,
		engine:     filter.NewEngine(ds, schema.Columns, r.opts.EngineOptions...),
		columns:    schema.Columns,
		selection:  filter.NewSelection(schema.Columns),
		generation: s.generation,
	}
	if next.source == "" {
		next.source = ds.Source()
	}
	r.logger.Info("dataset ready",
		logging.KeyDataset, next.source,
		"rows", ds.Len(),
		"columns", len(schema.Columns),
	)
	return r.recompute(next), nil
}

// reloaded swaps in ds, keeping selections on columns that still exist
// (minus values that disappeared) and the modulo filter. A dataset that
// fails discovery leaves s in place.
func (r *Reducer) reloaded(s State, ds *dataset.Dataset) (State, error) {
	schema, err := dataset.Discover(ds, dataset.DiscoverOptions{Exclude: r.opts.Exclude})
	if err != nil {
		r.logger.Warn("reload rejected, keeping previous dataset",
			logging.KeyDataset, s.source, logging.KeyError, err)
		return s, err
	}

	sel := s.selection.Retain(schema.Columns)
	for _, col := range sel.Active() {
		known := schema.Distinct[col]
		kept := slices.DeleteFunc(sel.Values(col), func(v string) bool {
			_, found := slices.BinarySearch(known, v)
			return !found
		})
		sel = sel.With(col, kept)
	}

	next := s
	next.ds = ds
	next.engine = filter.NewEngine(ds, schema.Columns, r.opts.EngineOptions...)
	next.columns = schema.Columns
	next.selection = sel
	r.logger.Info("dataset reloaded",
		logging.KeyDataset, s.source,
		"rows", ds.Len(),
		"columns", len(schema.Columns),
	)
	return r.recompute(next), nil
}

func (r *Reducer) selectionChanged(s State, ev SelectionChanged) (State, error) {
	if !slices.Contains(s.columns, ev.Column) {
		return s, errors.NewFilterError("cannot filter", errors.ErrUnknownColumn).WithColumn(ev.Column)
	}
	next := s
	next.selection = s.selection.With(ev.Column, ev.Values)
	return r.recompute(next), nil
}

func (r *Reducer) baseChanged(s State, input string) State {
	mod, err := s.modulo.WithBaseInput(input)
	if err != nil && input != "" {
		r.logger.Debug("modulo base ignored", "input", input, logging.KeyError, err)
	}
	next := s
	next.modulo = mod
	next.baseInput = input
	return r.recompute(next)
}

func (r *Reducer) recompute(s State) State {
	start := time.Now()
	s.result = s.engine.Recompute(s.selection, s.modulo)
	s.generation++
	r.logger.Debug("recomputed",
		"visible", s.result.Len(),
		"total", s.ds.Len(),
		"active_columns", len(s.selection.Active()),
		"modulo_base", s.modulo.Base(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return s
}
