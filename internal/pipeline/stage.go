// Package pipeline sequences a generation job through its stages:
// normalization, review, generation, completion. The stage graph is an
// explicit transition table; illegal moves are structurally rejected
// rather than guarded by scattered flags.
package pipeline

// Stage is a pipeline state for one generation job.
type Stage string

const (
	// StageIdle is the initial state: no normalized pin table yet.
	StageIdle Stage = "idle"
	// StageParsed holds a normalized pin set, possibly with warnings.
	StageParsed Stage = "parsed"
	// StageReviewing is the explicit user review gate before generation.
	StageReviewing Stage = "reviewing"
	// StageGenerating runs the three generators off the interaction
	// thread. The job is locked against edits while here.
	StageGenerating Stage = "generating"
	// StageCompleted is terminal for the job instance.
	StageCompleted Stage = "completed"
	// StageError holds a fatal generation failure; the user may return
	// to reviewing and re-enter generation.
	StageError Stage = "error"
)

// transitions is the legal stage graph. Error is additionally reachable
// from every stage; that edge is implicit in fail().
var transitions = map[Stage][]Stage{
	StageIdle:       {StageParsed},
	StageParsed:     {StageParsed, StageReviewing},
	StageReviewing:  {StageParsed, StageGenerating},
	StageGenerating: {StageCompleted, StageReviewing},
	StageError:      {StageReviewing},
	StageCompleted:  {},
}

// CanTransition reports whether from → to is a legal move.
func CanTransition(from, to Stage) bool {
	if to == StageError {
		return from != StageCompleted
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
