package pintable

import (
	"fmt"
	"strings"

	"github.com/kiforge/kiforge/internal/diag"
)

// Normalize canonicalizes raw rows into a PinSet.
//
// Fatal problems (duplicate pin numbers, empty numbers, empty table)
// return a *NormalizationError and no set. Everything else (unknown
// electrical types, a count disagreeing with expectedPins) is reported
// as diagnostics alongside a usable set, so the user can correct and
// re-normalize. Input order is preserved.
//
// expectedPins <= 0 skips the count check.
func Normalize(rows []RawRow, expectedPins int, rules *Rules) (*PinSet, []diag.Diagnostic, error) {
	if len(rows) == 0 {
		return nil, nil, &NormalizationError{Err: ErrNoRows}
	}
	if rules == nil {
		rules = DefaultRules()
	}

	var diags []diag.Diagnostic
	set := &PinSet{Pins: make([]Pin, 0, len(rows))}
	seen := make(map[string]int, len(rows)) // canonical number -> first row index

	for i, row := range rows {
		number := canonicalNumber(row.Number)
		if number == "" {
			return nil, nil, &NormalizationError{Rows: []int{i}, Err: ErrEmptyPinNumber}
		}
		if first, dup := seen[number]; dup {
			return nil, nil, &NormalizationError{
				Pin:  number,
				Rows: []int{first, i},
				Err:  fmt.Errorf("%w: rows %d and %d", ErrDuplicatePin, first, i),
			}
		}
		seen[number] = i

		name := strings.TrimSpace(row.Name)
		if name == "" {
			name = number
		}

		typ := rules.Resolve(name, row.TypeHint)
		if typ == TypeUnknown {
			d := diag.Warningf(diag.CodeUnknownPinType, "could not infer electrical type of %q", name)
			d.Pin = number
			diags = append(diags, d)
		}

		set.Pins = append(set.Pins, Pin{
			Number: number,
			Name:   name,
			Type:   typ,
			Group:  strings.TrimSpace(row.Group),
		})
	}

	if expectedPins > 0 && set.Len() != expectedPins {
		set.CountMismatch = true
		diags = append(diags, diag.Warningf(diag.CodePinCountMismatch,
			"pin table has %d pins, package template expects %d", set.Len(), expectedPins))
	}

	return set, diags, nil
}

// canonicalNumber trims whitespace and upper-cases BGA row letters so
// "a1" and "A1 " collide as duplicates.
func canonicalNumber(number string) string {
	return strings.ToUpper(strings.TrimSpace(number))
}
