// Package filter implements the row filtering core of rowsift.
//
// All filter state is held in immutable values: [Selection] maps each
// filterable column to its allowed values, and [Modulo] holds the optional
// modulo base with its selected remainders. Mutators return new values.
//
// The [Engine] turns a Selection and a Modulo into a [Result] by scanning the
// whole dataset. Recompute always starts from the full dataset, never from a
// previous result, and is a pure function of its inputs.
//
// # Filtering Rules
//
//  1. A column with an empty allowed-set imposes no constraint.
//  2. A row passes when each restricted column's value is allowed.
//  3. When the modulo base is active and at least one remainder is selected,
//     the row's number modulo the base must be a selected remainder. An
//     active base with no remainders shows everything.
//  4. A column's option list is computed from the rows passing every other
//     column's filter, so a column never narrows its own options. The modulo
//     filter does not narrow options unless [WithModuloNarrowsOptions] is set.
//
// # Usage
//
//	engine := filter.NewEngine(ds, schema.Columns)
//	sel := filter.NewSelection(schema.Columns).With("color", []string{"red"})
//	mod := filter.Modulo{}.WithBase(3).WithRemainders([]string{"1"})
//	result := engine.Recompute(sel, mod)
//
// Remainder choices for a large base are produced on demand:
//
//	opts := filter.RemainderOptions(mod.Base(), "9", filter.MaxRemainderOptions)
package filter
