package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kiforge/kiforge/internal/pintable"
	"github.com/kiforge/kiforge/internal/pipeline"
	"github.com/kiforge/kiforge/internal/template"
)

func reviewingJob(t *testing.T) (*pipeline.Job, pipeline.Config) {
	t.Helper()
	cfg := pipeline.DefaultConfig()
	j := pipeline.NewJob()
	tpl := &template.Template{
		Family:     template.FamilySOIC,
		Name:       "SOIC-8",
		PinCount:   8,
		Pitch:      1.27,
		BodyWidth:  3.9,
		BodyLength: 4.9,
		BodyHeight: 1.5,
		LeadWidth:  0.45,
		LeadLength: 1.0,
		LeadSpan:   6.0,
		LeadStyle:  template.LeadGullWing,
		Standoff:   0.1,
	}
	if err := j.SetTemplate(tpl); err != nil {
		t.Fatalf("SetTemplate: %v", err)
	}
	rows := make([]pintable.RawRow, 8)
	for i := range rows {
		rows[i] = pintable.RawRow{Number: fmt.Sprintf("%d", i+1), Name: fmt.Sprintf("GPIO%d", i+1)}
	}
	if _, err := j.Normalize(rows, cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if err := j.BeginReview(); err != nil {
		t.Fatalf("BeginReview: %v", err)
	}
	return j, cfg
}

func TestReviewShowsPinTable(t *testing.T) {
	t.Parallel()
	j, cfg := reviewingJob(t)
	m := NewReview(j, cfg)

	view := m.View()
	for _, want := range []string{"SOIC-8", "GPIO1", "GPIO8", "bidirectional", "enter: generate"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestReviewQuitWithoutGenerating(t *testing.T) {
	t.Parallel()
	j, cfg := reviewingJob(t)
	m := NewReview(j, cfg)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q produced no command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("q produced %T, want quit", msg)
	}
	if got := j.Stage(); got != pipeline.StageReviewing {
		t.Errorf("stage = %s, want %s (quit must not advance the job)", got, pipeline.StageReviewing)
	}
}

func TestReviewApproveRunsGeneration(t *testing.T) {
	t.Parallel()
	j, cfg := reviewingJob(t)
	m := NewReview(j, cfg)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter produced no command")
	}
	rm := next.(ReviewModel)
	if !rm.generating {
		t.Error("model not marked generating after approval")
	}
	if !strings.Contains(rm.View(), "generating") {
		t.Error("view does not show generation in progress")
	}

	// Drive the batched command to completion and feed the result back,
	// as the program runtime would.
	done := drainForDone(t, cmd)
	next, quit := rm.Update(done)
	rm = next.(ReviewModel)
	if !rm.Done() {
		t.Fatalf("model not done after successful generation: err=%v", rm.Err())
	}
	if quit == nil || quit() != tea.Quit() {
		t.Error("completion did not quit the program")
	}
	if got := j.Stage(); got != pipeline.StageCompleted {
		t.Errorf("stage = %s, want %s", got, pipeline.StageCompleted)
	}
	if j.Artifacts().Footprint == nil {
		t.Error("no footprint artifact after completion")
	}
}

// drainForDone executes a command tree until it yields the generation
// outcome message.
func drainForDone(t *testing.T, cmd tea.Cmd) generateDoneMsg {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case generateDoneMsg:
			return msg
		case tea.BatchMsg:
			queue = append(queue, msg...)
		}
	}
	t.Fatal("command tree produced no generation outcome")
	return generateDoneMsg{}
}
