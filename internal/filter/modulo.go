package filter

import (
	"math"
	"strconv"
	"strings"

	"github.com/Iron-Ham/rowsift/internal/errors"
)

// MaxBase is the largest accepted modulo base.
const MaxBase = math.MaxInt32

// ModuloState is the lifecycle position of the modulo filter.
type ModuloState int

const (
	// ModuloInactive means no base is set.
	ModuloInactive ModuloState = iota
	// ModuloActive means a base is set but no remainders are selected.
	ModuloActive
	// ModuloRestricting means a base is set and remainders are selected.
	ModuloRestricting
)

// String returns a short name for the state.
func (s ModuloState) String() string {
	switch s {
	case ModuloInactive:
		return "inactive"
	case ModuloActive:
		return "active"
	case ModuloRestricting:
		return "restricting"
	default:
		return "unknown"
	}
}

// Modulo is the modulo/remainder filter. The zero value is inactive.
// Base and remainders change together: setting a base always clears the
// remainders.
type Modulo struct {
	base       int
	remainders valueSet
}

// Base returns the modulo base, or 0 when inactive.
func (m Modulo) Base() int {
	return m.base
}

// Active reports whether a base is set.
func (m Modulo) Active() bool {
	return m.base > 0
}

// State returns the lifecycle state.
func (m Modulo) State() ModuloState {
	switch {
	case !m.Active():
		return ModuloInactive
	case m.remainders.empty():
		return ModuloActive
	default:
		return ModuloRestricting
	}
}

// Remainders returns the selected remainders in selection order.
func (m Modulo) Remainders() []string {
	return m.remainders.values()
}

// WithBase returns a Modulo with the given base and no remainders.
// A non-positive base yields the inactive filter.
func (m Modulo) WithBase(base int) Modulo {
	if base <= 0 {
		return Modulo{}
	}
	return Modulo{base: base}
}

// WithBaseInput parses input as a base (see ParseBase) and returns the
// resulting filter. Invalid input yields the inactive filter together with
// an ErrInvalidBase error that callers may log; it is never fatal.
func (m Modulo) WithBaseInput(input string) (Modulo, error) {
	base, err := ParseBase(input)
	if err != nil {
		return Modulo{}, err
	}
	return m.WithBase(base), nil
}

// WithRemainders returns a Modulo with the same base and the given
// remainders. It is a no-op while inactive.
func (m Modulo) WithRemainders(remainders []string) Modulo {
	if !m.Active() {
		return m
	}
	return Modulo{base: m.base, remainders: newValueSet(remainders)}
}

// Restricts reports whether the filter excludes any rows.
func (m Modulo) Restricts() bool {
	return m.State() == ModuloRestricting
}

// Allows reports whether a row with the given number passes the filter.
// Values that are not numeric never pass a restricting filter.
func (m Modulo) Allows(number string) bool {
	if !m.Restricts() {
		return true
	}
	rem, ok := Remainder(number, m.base)
	if !ok {
		return false
	}
	return m.remainders.contains(rem)
}

// Equal reports whether m and other have the same base and remainder set.
func (m Modulo) Equal(other Modulo) bool {
	return m.base == other.base && sameSet(m.remainders, other.remainders)
}

// ParseBase interprets the text of the base input field. Surrounding
// whitespace is ignored and fractional values are truncated toward zero.
// Empty, non-numeric, non-positive and out of range input return
// ErrInvalidBase.
func ParseBase(input string) (int, error) {
	trimmed := strings.TrimSpace(input)
	invalid := func(cause error) error {
		return errors.NewFilterError("modulo base must be a positive integer", cause).
			WithInput(input).
			WithSeverity(errors.SeverityDebug)
	}

	if trimmed == "" {
		return 0, invalid(errors.ErrInvalidBase)
	}

	base, err := strconv.Atoi(trimmed)
	if err != nil {
		f, ferr := strconv.ParseFloat(trimmed, 64)
		if ferr != nil || math.IsNaN(f) || math.IsInf(f, 0) || f > MaxBase {
			return 0, invalid(errors.ErrInvalidBase)
		}
		base = int(math.Trunc(f))
	}
	if base <= 0 || base > MaxBase {
		return 0, invalid(errors.ErrInvalidBase)
	}
	return base, nil
}

// Remainder computes number mod base as the string compared against
// selected remainders. Division truncates toward zero, so negative numbers
// yield negative remainders. ok is false when number is not numeric or base
// is not positive.
func Remainder(number string, base int) (rem string, ok bool) {
	if base <= 0 {
		return "", false
	}
	s := strings.TrimSpace(number)
	if s == "" {
		return "", false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(n%int64(base), 10), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	r := math.Mod(f, float64(base))
	if r == 0 {
		r = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64), true
}
