package footprint

import (
	"errors"
	"fmt"
)

// Sentinel errors for footprint generation.
var (
	// ErrPadOverlap indicates two computed pads intersect.
	ErrPadOverlap = errors.New("pads overlap")
	// ErrOutOfBounds indicates a pad falls outside the package envelope.
	ErrOutOfBounds = errors.New("pad exceeds package bounds")
	// ErrBadPinNumber indicates an array pin number that does not parse
	// as a row-letter/column-number position.
	ErrBadPinNumber = errors.New("pin number is not a grid position")
	// ErrUnsupportedFamily indicates a family with no placement algorithm.
	ErrUnsupportedFamily = errors.New("unsupported package family")
)

// GeometryConstraintError is the fatal generation failure: the layout
// violated a 2D constraint. It aborts the job's footprint stage and is
// reported with the offending pad indices.
type GeometryConstraintError struct {
	Family  string
	Pads    []int // indices into the generated pad list
	Numbers []string
	Err     error
}

// Error names the family and offending pads.
func (e *GeometryConstraintError) Error() string {
	if len(e.Numbers) > 0 {
		return fmt.Sprintf("%s: pads %v: %s", e.Family, e.Numbers, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Family, e.Err)
}

// Unwrap returns the underlying sentinel for use with errors.Is.
func (e *GeometryConstraintError) Unwrap() error {
	return e.Err
}
