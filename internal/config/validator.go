package config

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/Iron-Ham/rowsift/internal/tui/styles"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "tui.page_size")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

const (
	maxPageSize            = 10000
	maxRemainderOptionsCap = 10000
	maxPickerHeight        = 50
)

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateDataset()...)
	errors = append(errors, c.validateFilter()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateDataset validates the DatasetConfig
func (c *Config) validateDataset() []ValidationError {
	var errors []ValidationError

	if c.Dataset.LoadTimeout < 0 {
		errors = append(errors, ValidationError{
			Field:   "dataset.load_timeout",
			Value:   c.Dataset.LoadTimeout,
			Message: "must be non-negative (0 disables the timeout)",
		})
	}

	for i, pattern := range c.Dataset.ExcludeColumns {
		field := fmt.Sprintf("dataset.exclude_columns[%d]", i)
		if strings.TrimSpace(pattern) == "" {
			errors = append(errors, ValidationError{
				Field:   field,
				Value:   pattern,
				Message: "pattern cannot be empty",
			})
			continue
		}
		if _, err := glob.Compile(pattern); err != nil {
			errors = append(errors, ValidationError{
				Field:   field,
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}

	return errors
}

// validateFilter validates the FilterConfig
func (c *Config) validateFilter() []ValidationError {
	var errors []ValidationError

	if c.Filter.MaxRemainderOptions < 1 || c.Filter.MaxRemainderOptions > maxRemainderOptionsCap {
		errors = append(errors, ValidationError{
			Field:   "filter.max_remainder_options",
			Value:   c.Filter.MaxRemainderOptions,
			Message: fmt.Sprintf("must be between 1 and %d", maxRemainderOptionsCap),
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.PageSize < 1 || c.TUI.PageSize > maxPageSize {
		errors = append(errors, ValidationError{
			Field:   "tui.page_size",
			Value:   c.TUI.PageSize,
			Message: fmt.Sprintf("must be between 1 and %d", maxPageSize),
		})
	}

	if c.TUI.PickerHeight < 1 || c.TUI.PickerHeight > maxPickerHeight {
		errors = append(errors, ValidationError{
			Field:   "tui.picker_height",
			Value:   c.TUI.PickerHeight,
			Message: fmt.Sprintf("must be between 1 and %d", maxPickerHeight),
		})
	}

	if c.TUI.Theme != "" && !styles.IsValidTheme(c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(styles.ValidThemes(), ", ")),
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !isValidLogLevel(c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.MaxSizeMB < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be non-negative (0 disables rotation)",
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}

func isValidLogLevel(level string) bool {
	lower := strings.ToLower(level)
	for _, valid := range ValidLogLevels() {
		if lower == valid {
			return true
		}
	}
	return false
}
