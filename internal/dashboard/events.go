package dashboard

import "github.com/Iron-Ham/rowsift/internal/dataset"

// Event is an input to the Reducer.
type Event interface {
	eventName() string
}

// LoadStarted begins (or retries) loading the dataset.
type LoadStarted struct{}

// Loaded delivers the initial dataset.
type Loaded struct {
	Dataset *dataset.Dataset
}

// LoadFailed reports that the dataset could not be loaded.
type LoadFailed struct {
	Err error
}

// SelectionChanged replaces the allowed values of one column. Empty Values
// clears the column's filter.
type SelectionChanged struct {
	Column string
	Values []string
}

// BaseChanged carries the new text of the modulo base input.
type BaseChanged struct {
	Input string
}

// RemaindersChanged replaces the selected remainders.
type RemaindersChanged struct {
	Values []string
}

// Reset clears every filter.
type Reset struct{}

// Reloaded delivers a new version of the dataset after the source changed.
type Reloaded struct {
	Dataset *dataset.Dataset
}

func (LoadStarted) eventName() string       { return "load_started" }
func (Loaded) eventName() string            { return "loaded" }
func (LoadFailed) eventName() string        { return "load_failed" }
func (SelectionChanged) eventName() string  { return "selection_changed" }
func (BaseChanged) eventName() string       { return "base_changed" }
func (RemaindersChanged) eventName() string { return "remainders_changed" }
func (Reset) eventName() string             { return "reset" }
func (Reloaded) eventName() string          { return "reloaded" }
