package pipeline

import (
	"errors"
	"fmt"
)

// Sentinel errors for pipeline control flow.
var (
	// ErrInvalidTransition indicates an operation not legal in the
	// job's current stage.
	ErrInvalidTransition = errors.New("invalid stage transition")
	// ErrJobLocked indicates an edit attempted while generators run.
	// The edit is rejected, never queued behind the in-flight stage.
	ErrJobLocked = errors.New("job is generating; edits are rejected until review")
	// ErrUnresolvedDiagnostics indicates fatal diagnostics blocking
	// entry into generation.
	ErrUnresolvedDiagnostics = errors.New("unresolved fatal diagnostics")
	// ErrNoTemplate indicates generation without a selected template.
	ErrNoTemplate = errors.New("no package template selected")
)

// PipelineStateError reports an operation attempted in the wrong stage.
type PipelineStateError struct {
	Op    string
	From  Stage
	To    Stage
	Cause error
}

func (e *PipelineStateError) Error() string {
	if e.To != "" {
		return fmt.Sprintf("%s: %s -> %s: %s", e.Op, e.From, e.To, e.Cause)
	}
	return fmt.Sprintf("%s in stage %s: %s", e.Op, e.From, e.Cause)
}

func (e *PipelineStateError) Unwrap() error {
	return e.Cause
}
