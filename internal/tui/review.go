// Package tui is the interactive pin-table review screen: the user
// inspects the normalized pins and diagnostics, then either approves
// generation or backs out. It drives the pipeline's reviewing gate.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kiforge/kiforge/internal/diag"
	"github.com/kiforge/kiforge/internal/pipeline"
)

// generateDoneMsg reports the outcome of the generation goroutine.
type generateDoneMsg struct {
	err error
}

// ReviewModel is the bubbletea model for the review screen.
type ReviewModel struct {
	job *pipeline.Job
	cfg pipeline.Config

	table   table.Model
	spinner spinner.Model

	generating bool
	done       bool
	cancel     context.CancelFunc
	err        error
}

// NewReview builds the review screen for a job in the reviewing stage.
func NewReview(job *pipeline.Job, cfg pipeline.Config) ReviewModel {
	columns := []table.Column{
		{Title: "Pin", Width: 6},
		{Title: "Name", Width: 18},
		{Title: "Type", Width: 14},
		{Title: "Group", Width: 12},
		{Title: "", Width: 3},
	}

	warned := map[string]bool{}
	for _, d := range job.Diagnostics() {
		if d.Pin != "" {
			warned[d.Pin] = true
		}
	}

	var rows []table.Row
	if pins := job.Pins(); pins != nil {
		for _, p := range pins.Pins {
			mark := ""
			if warned[p.Number] {
				mark = "!"
			}
			rows = append(rows, table.Row{p.Number, p.Name, string(p.Type), p.Group, mark})
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(16),
		table.WithFocused(true),
	)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return ReviewModel{job: job, cfg: cfg, table: t, spinner: sp}
}

// Init implements tea.Model.
func (m ReviewModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "g":
			if m.generating || m.done {
				break
			}
			return m, m.startGenerate()
		case "q", "esc", "ctrl+c":
			if m.generating && m.cancel != nil {
				// Cancel returns the job to reviewing; stay on screen.
				m.cancel()
				return m, nil
			}
			return m, tea.Quit
		}

	case generateDoneMsg:
		m.generating = false
		m.err = msg.err
		if msg.err == nil {
			m.done = true
			return m, tea.Quit
		}
		if errors.Is(msg.err, context.Canceled) {
			// Back at the gate with artifacts untouched.
			m.err = nil
			return m, nil
		}
		return m, tea.Quit

	case spinner.TickMsg:
		if !m.generating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// startGenerate launches the pipeline off the interaction thread.
func (m *ReviewModel) startGenerate() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.generating = true
	job, cfg := m.job, m.cfg
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			return generateDoneMsg{err: job.Generate(ctx, cfg)}
		},
	)
}

// Done reports whether generation completed successfully.
func (m ReviewModel) Done() bool {
	return m.done
}

// Err returns the generation failure, if any.
func (m ReviewModel) Err() error {
	return m.err
}

// View implements tea.Model.
func (m ReviewModel) View() string {
	var b strings.Builder

	title := "kiforge review"
	if tpl := m.job.Template(); tpl != nil {
		title = fmt.Sprintf("kiforge review: %s", tpl)
	}
	b.WriteString(styleTitle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	for _, d := range m.job.Diagnostics() {
		style := styleWarning
		if d.Severity == diag.SeverityFatal {
			style = styleFatal
		}
		b.WriteString(style.Render("  " + d.String()))
		b.WriteString("\n")
	}

	switch {
	case m.done:
		b.WriteString(styleSuccess.Render("  generation complete"))
	case m.generating:
		b.WriteString(styleStatus.Render(fmt.Sprintf("  %s generating...", m.spinner.View())))
	case m.err != nil:
		b.WriteString(styleFatal.Render(fmt.Sprintf("  generation failed: %v", m.err)))
	default:
		b.WriteString(styleHelp.Render("  enter: generate   q: quit   arrows: scroll"))
	}
	b.WriteString("\n")
	return b.String()
}
