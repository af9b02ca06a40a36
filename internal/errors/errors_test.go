package errors

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// DatasetError Tests
// -----------------------------------------------------------------------------

func TestNewDatasetError(t *testing.T) {
	err := NewDatasetError("dataset has no rows", ErrNoData)

	if err.message != "dataset has no rows" {
		t.Errorf("message = %q, want %q", err.message, "dataset has no rows")
	}
	if err.cause != ErrNoData {
		t.Errorf("cause = %v, want %v", err.cause, ErrNoData)
	}
	if err.Severity() != SeverityError {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityError)
	}
	if err.IsRetryable() {
		t.Error("IsRetryable() = true, want false")
	}
	if !err.IsUserFacing() {
		t.Error("IsUserFacing() = false, want true")
	}
}

func TestDatasetError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *DatasetError
		want string
	}{
		{
			name: "no context",
			err:  NewDatasetError("dataset has no rows", nil),
			want: "dataset error: dataset has no rows",
		},
		{
			name: "with source and cause",
			err:  NewDatasetError("dataset has no rows", ErrNoData).WithSource("data.csv"),
			want: "dataset error [source=data.csv]: dataset has no rows: no data",
		},
		{
			name: "with line and column",
			err: NewDatasetError("bare quote", ErrParse).
				WithSource("data.csv").WithLine(4).WithColumn("color"),
			want: "dataset error [source=data.csv, line=4, column=color]: bare quote: malformed dataset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDatasetError_Is(t *testing.T) {
	err := NewDatasetError("missing header", ErrNoData)

	if !errors.Is(err, &DatasetError{}) {
		t.Error("errors.Is(err, &DatasetError{}) = false, want true")
	}
	if !errors.Is(err, ErrNoData) {
		t.Error("errors.Is(err, ErrNoData) = false, want true")
	}
	if errors.Is(err, ErrParse) {
		t.Error("errors.Is(err, ErrParse) = true, want false")
	}
}

func TestDatasetError_WithRetryable(t *testing.T) {
	err := NewDatasetError("fetch failed", ErrSourceUnavailable).WithRetryable(true)
	if !err.IsRetryable() {
		t.Error("IsRetryable() = false, want true")
	}
}

// -----------------------------------------------------------------------------
// FilterError Tests
// -----------------------------------------------------------------------------

func TestFilterError(t *testing.T) {
	err := NewFilterError("cannot apply selection", ErrUnknownColumn).
		WithColumn("colour").
		WithInput("red")

	want := `filter error [column=colour, input="red"]: cannot apply selection: unknown column`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrUnknownColumn) {
		t.Error("errors.Is(err, ErrUnknownColumn) = false, want true")
	}
	if !errors.Is(err, &FilterError{}) {
		t.Error("errors.Is(err, &FilterError{}) = false, want true")
	}
	if err.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityWarning)
	}

	err = err.WithSeverity(SeverityInfo)
	if err.Severity() != SeverityInfo {
		t.Errorf("Severity() after WithSeverity = %v, want %v", err.Severity(), SeverityInfo)
	}
}

// -----------------------------------------------------------------------------
// Semantic Error Tests
// -----------------------------------------------------------------------------

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "message only",
			err:  NewValidationError("must be positive"),
			want: "validation error: must be positive",
		},
		{
			name: "field and value",
			err:  NewValidationError("must be positive").WithField("tui.page_size").WithValue(0),
			want: "validation error [field=tui.page_size, value=0]: must be positive",
		},
		{
			name: "with cause",
			err:  NewValidationError("bad flag").WithCause(fmt.Errorf("boom")),
			want: "validation error: bad flag: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Is(t *testing.T) {
	err := NewValidationError("bad")
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("errors.Is(err, ErrInvalidInput) = false, want true")
	}
	if !errors.Is(err, &ValidationError{}) {
		t.Error("errors.Is(err, &ValidationError{}) = false, want true")
	}
}

func TestTimeoutError(t *testing.T) {
	err := NewTimeoutError("fetching dataset", 30*time.Second)

	want := "timeout error: fetching dataset (timeout: 30s)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !err.IsRetryable() {
		t.Error("timeouts should be retryable")
	}
	if !errors.Is(err, ErrTimeout) {
		t.Error("errors.Is(err, ErrTimeout) = false, want true")
	}

	wrapped := err.WithCause(fmt.Errorf("context deadline exceeded"))
	if got := wrapped.Error(); got != want+": context deadline exceeded" {
		t.Errorf("Error() with cause = %q", got)
	}
}

// -----------------------------------------------------------------------------
// Classification Tests
// -----------------------------------------------------------------------------

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", fmt.Errorf("plain"), false},
		{"timeout sentinel", fmt.Errorf("wrap: %w", ErrTimeout), true},
		{"timeout error", NewTimeoutError("op", time.Second), true},
		{"dataset error", NewDatasetError("x", ErrParse), false},
		{"wrapped retryable dataset error", Wrap(NewDatasetError("x", nil).WithRetryable(true), "load"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", fmt.Errorf("plain"), false},
		{"dataset error", NewDatasetError("x", nil), true},
		{"wrapped filter error", Wrap(NewFilterError("x", nil), "apply"), true},
		{"validation error", NewValidationError("x"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetSeverity(t *testing.T) {
	if got := GetSeverity(nil); got != SeverityDebug {
		t.Errorf("GetSeverity(nil) = %v, want %v", got, SeverityDebug)
	}
	if got := GetSeverity(fmt.Errorf("plain")); got != SeverityError {
		t.Errorf("GetSeverity(plain) = %v, want %v", got, SeverityError)
	}
	if got := GetSeverity(NewFilterError("x", nil)); got != SeverityWarning {
		t.Errorf("GetSeverity(FilterError) = %v, want %v", got, SeverityWarning)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(nil); got != "" {
		t.Errorf("UserMessage(nil) = %q, want empty", got)
	}
	if got := UserMessage(fmt.Errorf("secret internals")); got != "an internal error occurred" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
	err := NewDatasetError("dataset has no rows", ErrNoData).WithSource("x.csv")
	if got := UserMessage(err); got != err.Error() {
		t.Errorf("UserMessage(dataset) = %q, want %q", got, err.Error())
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, "ctx %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	err := Wrapf(ErrParse, "reading %s", "data.csv")
	if got := err.Error(); got != "reading data.csv: malformed dataset" {
		t.Errorf("Wrapf() = %q", got)
	}
	if !errors.Is(err, ErrParse) {
		t.Error("wrapped error should match ErrParse")
	}
}
