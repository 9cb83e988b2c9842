package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kiforge/kiforge/internal/diag"
	"github.com/kiforge/kiforge/internal/footprint"
	"github.com/kiforge/kiforge/internal/pintable"
	"github.com/kiforge/kiforge/internal/template"
)

func qfp44(t *testing.T) *template.Template {
	t.Helper()
	return &template.Template{
		Family:     template.FamilyQFP,
		Name:       "QFP-44_10x10mm_P0.8mm",
		PinCount:   44,
		Pitch:      0.8,
		BodyWidth:  10,
		BodyLength: 10,
		BodyHeight: 2.45,
		LeadWidth:  0.37,
		LeadLength: 1.0,
		LeadSpan:   12,
		LeadStyle:  template.LeadGullWing,
		Standoff:   0.1,
	}
}

func rawRows(t *testing.T, n int) []pintable.RawRow {
	t.Helper()
	rows := make([]pintable.RawRow, n)
	for i := range rows {
		rows[i] = pintable.RawRow{
			Number: fmt.Sprintf("%d", i+1),
			Name:   fmt.Sprintf("GPIO%d", i+1),
		}
	}
	return rows
}

// reviewingJob builds a job ready to generate.
func reviewingJob(t *testing.T, cfg Config) *Job {
	t.Helper()
	j := NewJob()
	if err := j.SetTemplate(qfp44(t)); err != nil {
		t.Fatalf("SetTemplate: %v", err)
	}
	if _, err := j.Normalize(rawRows(t, 44), cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if err := j.BeginReview(); err != nil {
		t.Fatalf("BeginReview: %v", err)
	}
	return j
}

func TestCanTransition(t *testing.T) {
	t.Parallel()
	tests := []struct {
		from, to Stage
		want     bool
	}{
		{StageIdle, StageParsed, true},
		{StageIdle, StageGenerating, false},
		{StageParsed, StageReviewing, true},
		{StageParsed, StageParsed, true}, // re-normalization
		{StageReviewing, StageParsed, true},
		{StageReviewing, StageGenerating, true},
		{StageGenerating, StageCompleted, true},
		{StageGenerating, StageReviewing, true}, // cancellation
		{StageError, StageReviewing, true},
		{StageError, StageGenerating, false},
		{StageCompleted, StageReviewing, false},
		{StageCompleted, StageError, false},
		{StageParsed, StageError, true},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestJobLifecycle(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	j := reviewingJob(t, cfg)

	if err := j.Generate(context.Background(), cfg); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got := j.Stage(); got != StageCompleted {
		t.Fatalf("stage = %s, want %s", got, StageCompleted)
	}

	art := j.Artifacts()
	if art.Footprint == nil || art.Symbol == nil || art.Model == nil {
		t.Fatalf("artifacts incomplete: %+v", art)
	}
	if got := len(art.Footprint.Pads); got != 44 {
		t.Errorf("footprint pads = %d, want 44", got)
	}
	if got := art.Symbol.PinCount(); got != 44 {
		t.Errorf("symbol pins = %d, want 44", got)
	}
	if got := len(art.Model.Leads); got != 44 {
		t.Errorf("model leads = %d, want 44", got)
	}

	// Completed is terminal for the instance.
	if err := j.BeginReview(); err == nil {
		t.Error("BeginReview after completion succeeded")
	}
	if err := j.SetTemplate(qfp44(t)); err == nil {
		t.Error("SetTemplate after completion succeeded")
	}
}

func TestNormalizeDuplicateStaysIdle(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	j := NewJob()

	rows := rawRows(t, 5)
	rows[4].Number = "3" // collides with row 2

	_, err := j.Normalize(rows, cfg)
	if !errors.Is(err, pintable.ErrDuplicatePin) {
		t.Fatalf("Normalize error = %v, want %v", err, pintable.ErrDuplicatePin)
	}
	if got := j.Stage(); got != StageIdle {
		t.Errorf("stage after duplicate = %s, want %s", got, StageIdle)
	}
	if j.Pins() != nil {
		t.Error("pin set committed despite fatal normalization error")
	}
}

func TestGenerateRequiresReview(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	j := NewJob()
	if err := j.SetTemplate(qfp44(t)); err != nil {
		t.Fatalf("SetTemplate: %v", err)
	}
	if _, err := j.Normalize(rawRows(t, 44), cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	err := j.Generate(context.Background(), cfg)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Generate from parsed = %v, want %v", err, ErrInvalidTransition)
	}
	var pse *PipelineStateError
	if !errors.As(err, &pse) {
		t.Fatalf("error type = %T, want *PipelineStateError", err)
	}
}

func TestEditRejectedWhileGenerating(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	j := &Job{stage: StageGenerating, tpl: qfp44(t)}

	if _, err := j.Normalize(rawRows(t, 44), cfg); !errors.Is(err, ErrJobLocked) {
		t.Errorf("Normalize while generating = %v, want %v", err, ErrJobLocked)
	}
	if err := j.SetTemplate(qfp44(t)); !errors.Is(err, ErrJobLocked) {
		t.Errorf("SetTemplate while generating = %v, want %v", err, ErrJobLocked)
	}
	if got := j.Stage(); got != StageGenerating {
		t.Errorf("stage = %s, want %s", got, StageGenerating)
	}
}

func TestCancelReturnsToReviewing(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	j := reviewingJob(t, cfg)

	// A prior run's artifact must survive the cancel untouched.
	prior := &footprint.Footprint{Name: "prior"}
	j.artifacts.Footprint = prior

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := j.Generate(ctx, cfg)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Generate = %v, want %v", err, context.Canceled)
	}
	if got := j.Stage(); got != StageReviewing {
		t.Errorf("stage after cancel = %s, want %s", got, StageReviewing)
	}
	if j.Artifacts().Footprint != prior {
		t.Error("cancel overwrote prior artifacts")
	}
	if j.Artifacts().Symbol != nil {
		t.Error("cancel committed a partial artifact")
	}

	// The job is re-entrant after cancellation.
	if err := j.Generate(context.Background(), cfg); err != nil {
		t.Fatalf("Generate after cancel: %v", err)
	}
	if got := j.Stage(); got != StageCompleted {
		t.Errorf("stage = %s, want %s", got, StageCompleted)
	}
}

func TestGeneratorFailureRoutesToError(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()

	// Thermal land wide enough to collide with the perimeter pads.
	tpl := &template.Template{
		Family:     template.FamilyQFN,
		Name:       "QFN-32-1EP",
		PinCount:   33,
		Pitch:      0.5,
		BodyWidth:  5,
		BodyLength: 5,
		BodyHeight: 0.9,
		LeadWidth:  0.25,
		LeadLength: 0.4,
		LeadSpan:   5,
		LeadStyle:  template.LeadNoLead,
		ThermalPad: &template.ThermalPad{Width: 4.9, Height: 4.9, PinNumber: "EP"},
	}
	j := NewJob()
	if err := j.SetTemplate(tpl); err != nil {
		t.Fatalf("SetTemplate: %v", err)
	}
	rows := rawRows(t, 32)
	rows = append(rows, pintable.RawRow{Number: "EP", Name: "GND"})
	if _, err := j.Normalize(rows, cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if err := j.BeginReview(); err != nil {
		t.Fatalf("BeginReview: %v", err)
	}

	err := j.Generate(context.Background(), cfg)
	if !errors.Is(err, footprint.ErrPadOverlap) {
		t.Fatalf("Generate = %v, want %v", err, footprint.ErrPadOverlap)
	}
	if got := j.Stage(); got != StageError {
		t.Fatalf("stage = %s, want %s", got, StageError)
	}
	if !diag.HasFatal(j.Diagnostics()) {
		t.Error("no fatal diagnostic recorded for the geometry failure")
	}

	// The user returns to review, but generation stays blocked until the
	// fatal diagnostic is cleared by a corrective re-normalization.
	if err := j.Revise(); err != nil {
		t.Fatalf("Revise: %v", err)
	}
	if got := j.Stage(); got != StageReviewing {
		t.Fatalf("stage = %s, want %s", got, StageReviewing)
	}
	if err := j.Generate(context.Background(), cfg); !errors.Is(err, ErrUnresolvedDiagnostics) {
		t.Errorf("Generate with fatal diagnostics = %v, want %v", err, ErrUnresolvedDiagnostics)
	}
}
