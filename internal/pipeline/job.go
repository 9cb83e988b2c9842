package pipeline

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/kiforge/kiforge/internal/diag"
	"github.com/kiforge/kiforge/internal/footprint"
	"github.com/kiforge/kiforge/internal/model3d"
	"github.com/kiforge/kiforge/internal/pintable"
	"github.com/kiforge/kiforge/internal/symbol"
	"github.com/kiforge/kiforge/internal/template"
)

// Artifacts holds the three generated outputs for a completed job.
type Artifacts struct {
	Footprint *footprint.Footprint
	Symbol    *symbol.Symbol
	Model     *model3d.Model
}

// Config bundles the per-generator configuration plus the inference
// rules used during normalization.
type Config struct {
	Footprint footprint.Config
	Symbol    symbol.Config
	Model     model3d.Config
	Rules     *pintable.Rules
}

// DefaultConfig returns each generator's defaults and the embedded
// inference rules.
func DefaultConfig() Config {
	return Config{
		Footprint: footprint.DefaultConfig(),
		Symbol:    symbol.DefaultConfig(),
		Model:     model3d.DefaultConfig(),
		Rules:     pintable.DefaultRules(),
	}
}

// Job is one component's trip through the pipeline. A job is mutated by
// one caller at a time; the mutex also rejects edits that race an
// in-flight generation rather than queueing them.
type Job struct {
	ID uuid.UUID

	mu        sync.Mutex
	stage     Stage
	tpl       *template.Template
	pins      *pintable.PinSet
	diags     []diag.Diagnostic
	artifacts Artifacts
}

// NewJob creates an idle job.
func NewJob() *Job {
	return &Job{ID: uuid.New(), stage: StageIdle}
}

// Stage returns the job's current stage.
func (j *Job) Stage() Stage {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.stage
}

// Diagnostics returns a copy of the accumulated diagnostics.
func (j *Job) Diagnostics() []diag.Diagnostic {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]diag.Diagnostic, len(j.diags))
	copy(out, j.diags)
	return out
}

// Pins returns the normalized pin set, nil before normalization.
func (j *Job) Pins() *pintable.PinSet {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.pins
}

// Template returns the selected package template, nil if unset.
func (j *Job) Template() *template.Template {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.tpl
}

// Artifacts returns the generated outputs. All three are set only after
// the job reaches completed.
func (j *Job) Artifacts() Artifacts {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.artifacts
}

// SetTemplate selects the package template. Selecting a template during
// review drops the job back to parsed, since the expected pin count may
// have changed; the caller should re-normalize. Rejected while
// generating and after completion.
func (j *Job) SetTemplate(tpl *template.Template) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	switch j.stage {
	case StageGenerating:
		return &PipelineStateError{Op: "set template", From: j.stage, Cause: ErrJobLocked}
	case StageCompleted:
		return &PipelineStateError{Op: "set template", From: j.stage, Cause: ErrInvalidTransition}
	}
	j.tpl = tpl
	if j.stage == StageReviewing {
		j.stage = StageParsed
	}
	return nil
}

// Normalize canonicalizes raw rows into the job's pin set and moves the
// job to parsed. Normalization is how the job leaves idle and also how
// pin-table edits loop a parsed or reviewing job back through parsed.
//
// A fatal normalization problem (duplicate or empty pin number) leaves
// the stage untouched and returns the error; warnings are recorded as
// diagnostics and do not block.
func (j *Job) Normalize(rows []pintable.RawRow, cfg Config) ([]diag.Diagnostic, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	switch j.stage {
	case StageIdle, StageParsed, StageReviewing:
	case StageGenerating:
		return nil, &PipelineStateError{Op: "normalize", From: j.stage, Cause: ErrJobLocked}
	default:
		return nil, &PipelineStateError{Op: "normalize", From: j.stage, To: StageParsed, Cause: ErrInvalidTransition}
	}

	expected := 0
	if j.tpl != nil {
		expected = j.tpl.ExpectedPins()
	}
	set, diags, err := pintable.Normalize(rows, expected, cfg.Rules)
	if err != nil {
		return nil, err
	}

	j.pins = set
	j.diags = diags
	j.stage = StageParsed
	return j.Diagnostics(), nil
}

// BeginReview moves a parsed job into the review gate.
func (j *Job) BeginReview() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !CanTransition(j.stage, StageReviewing) || j.stage != StageParsed {
		return &PipelineStateError{Op: "begin review", From: j.stage, To: StageReviewing, Cause: ErrInvalidTransition}
	}
	j.stage = StageReviewing
	return nil
}

// Revise returns an errored job to review so the user can correct
// inputs and re-enter generation.
func (j *Job) Revise() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !CanTransition(j.stage, StageReviewing) || j.stage != StageError {
		return &PipelineStateError{Op: "revise", From: j.stage, To: StageReviewing, Cause: ErrInvalidTransition}
	}
	j.stage = StageReviewing
	return nil
}

// Generate runs the three generators. Footprint and symbol run
// concurrently; the 3D model waits on the footprint because lead roots
// are pad centers.
//
// The stage moves to generating for the duration; edits arriving
// meanwhile fail with ErrJobLocked. On success the job completes with
// all three artifacts committed atomically. On a generator failure the
// job moves to error with the failure recorded as a fatal diagnostic.
// On context cancellation the job returns to reviewing with its prior
// artifacts untouched.
func (j *Job) Generate(ctx context.Context, cfg Config) error {
	j.mu.Lock()
	if j.stage != StageReviewing {
		j.mu.Unlock()
		return &PipelineStateError{Op: "generate", From: j.stage, To: StageGenerating, Cause: ErrInvalidTransition}
	}
	if diag.HasFatal(j.diags) {
		j.mu.Unlock()
		return &PipelineStateError{Op: "generate", From: StageReviewing, To: StageGenerating, Cause: ErrUnresolvedDiagnostics}
	}
	if j.tpl == nil {
		j.mu.Unlock()
		return &PipelineStateError{Op: "generate", From: StageReviewing, To: StageGenerating, Cause: ErrNoTemplate}
	}
	tpl, pins := j.tpl, j.pins
	j.stage = StageGenerating
	j.mu.Unlock()

	fail := func(d diag.Diagnostic, err error) error {
		j.mu.Lock()
		j.diags = append(j.diags, d)
		j.stage = StageError
		j.mu.Unlock()
		return err
	}

	var (
		wg     sync.WaitGroup
		fp     *footprint.Footprint
		sym    *symbol.Symbol
		fpErr  error
		symErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		fp, fpErr = footprint.Generate(tpl, pins, cfg.Footprint)
	}()
	go func() {
		defer wg.Done()
		sym, symErr = symbol.Generate(tpl.String(), pins, cfg.Symbol)
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return j.cancelToReview(err)
	}
	if fpErr != nil {
		d := diag.Fatalf(diag.CodeGeometryConflict, "footprint: %s", fpErr)
		return fail(d, fpErr)
	}
	if symErr != nil {
		d := diag.Fatalf(diag.CodeGeometryConflict, "symbol: %s", symErr)
		return fail(d, symErr)
	}

	model, modelErr := model3d.Generate(tpl, fp, cfg.Model)
	if err := ctx.Err(); err != nil {
		return j.cancelToReview(err)
	}
	if modelErr != nil {
		d := diag.Fatalf(diag.CodeDegenerateSolid, "3d model: %s", modelErr)
		return fail(d, modelErr)
	}

	j.mu.Lock()
	j.artifacts = Artifacts{Footprint: fp, Symbol: sym, Model: model}
	j.stage = StageCompleted
	j.mu.Unlock()
	return nil
}

// cancelToReview rolls a cancelled generation back to reviewing. The
// previously committed artifacts are deliberately left alone: a cancel
// must never half-overwrite outputs.
func (j *Job) cancelToReview(cause error) error {
	j.mu.Lock()
	j.stage = StageReviewing
	j.mu.Unlock()
	return cause
}
