package template

import "errors"

// Sentinel errors for template lookup and validation.
var (
	// ErrTemplateNotFound indicates the requested package family or named
	// preset is not in the library.
	ErrTemplateNotFound = errors.New("package template not found")
	// ErrTemplateInvalid indicates a template's parameters fail the
	// family's validity predicate.
	ErrTemplateInvalid = errors.New("package template invalid")
	// ErrBadDimension indicates a dimension that must be positive is zero
	// or negative.
	ErrBadDimension = errors.New("dimension must be positive")
	// ErrPinCountShape indicates a pin count incompatible with the family
	// shape (e.g. a quad count not divisible by 4).
	ErrPinCountShape = errors.New("pin count incompatible with family shape")
	// ErrBodyOverflow indicates the pin array does not fit within the body
	// outline at the given pitch.
	ErrBodyOverflow = errors.New("pin array exceeds body bounds")
)

// ValidationError records one violated template constraint with the
// parameter that caused it.
type ValidationError struct {
	Family    Family
	Parameter string
	Err       error
}

// Error returns a human-readable string naming the family and parameter.
func (e *ValidationError) Error() string {
	return string(e.Family) + ": " + e.Parameter + ": " + e.Err.Error()
}

// Unwrap returns the underlying sentinel for use with errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
