package pintable

import "errors"

// Sentinel errors for pin table normalization. Only these abort
// normalization; everything else becomes a diagnostic on the job.
var (
	// ErrDuplicatePin indicates two rows share a pin number after
	// canonicalization.
	ErrDuplicatePin = errors.New("duplicate pin number")
	// ErrEmptyPinNumber indicates a row with no pin number at all.
	ErrEmptyPinNumber = errors.New("empty pin number")
	// ErrNoRows indicates an empty input table.
	ErrNoRows = errors.New("pin table has no rows")
)

// NormalizationError records a fatal normalization problem with the
// offending row indices (0-based input order).
type NormalizationError struct {
	Pin  string
	Rows []int
	Err  error
}

// Error returns a human-readable string naming the pin and rows.
func (e *NormalizationError) Error() string {
	if e.Pin != "" {
		return "pin " + e.Pin + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// Unwrap returns the underlying sentinel for use with errors.Is.
func (e *NormalizationError) Unwrap() error {
	return e.Err
}
