// Package diag defines the diagnostics collected while normalizing pin
// tables and generating artifacts. Diagnostics are attached to a job and
// surfaced for user review; they are never silently dropped. Only fatal
// diagnostics block generation.
package diag

import "fmt"

// Severity classifies how a diagnostic affects the pipeline.
type Severity string

const (
	// SeverityWarning marks issues the user should review but that do not
	// block generation (e.g. a pin whose electrical type could not be
	// inferred).
	SeverityWarning Severity = "warning"
	// SeverityFatal marks issues that must be resolved before the job may
	// enter the generating stage.
	SeverityFatal Severity = "fatal"
)

// Diagnostic codes. Codes are stable strings so front-ends can key
// remediation hints off them.
const (
	CodeUnknownPinType   = "unknown_pin_type"
	CodePinCountMismatch = "pin_count_mismatch"
	CodeDuplicatePin     = "duplicate_pin"
	CodeEmptyPinNumber   = "empty_pin_number"
	CodeGeometryConflict = "geometry_conflict"
	CodeDegenerateSolid  = "degenerate_solid"
)

// Diagnostic records a single issue with enough context for the user to
// locate and correct it.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	Pin      string // pin number, when the issue is pin-specific
	Indices  []int  // offending row/pad indices, when positional
}

// String renders the diagnostic in "severity code: message" form.
func (d Diagnostic) String() string {
	if d.Pin != "" {
		return fmt.Sprintf("%s %s: pin %s: %s", d.Severity, d.Code, d.Pin, d.Message)
	}
	return fmt.Sprintf("%s %s: %s", d.Severity, d.Code, d.Message)
}

// Warningf builds a warning diagnostic.
func Warningf(code, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Fatalf builds a fatal diagnostic.
func Fatalf(code, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityFatal, Code: code, Message: fmt.Sprintf(format, args...)}
}

// HasFatal reports whether any diagnostic in the slice is fatal.
func HasFatal(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityFatal {
			return true
		}
	}
	return false
}

// Warnings returns only the warning-severity diagnostics.
func Warnings(diags []Diagnostic) []Diagnostic {
	var out []Diagnostic
	for _, d := range diags {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}
