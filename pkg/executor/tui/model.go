// Package tui renders a suite run live in the terminal: a spinner while
// steps execute, one status line per completed step, and the final report.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/pagekit/pkg/executor"
	"github.com/entrhq/pagekit/pkg/report"
	"github.com/entrhq/pagekit/pkg/scenario"
)

// StepEvent is one completed step pushed to the UI.
type StepEvent struct {
	Scenario string
	Step     scenario.StepResult
}

type stepMsg struct {
	event StepEvent
	ok    bool
}

type doneMsg struct {
	result *scenario.RunResult
}

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F9FAFB")).
			Bold(true)

	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8E6CF"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB3BA")).
			Bold(true)

	skipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Padding(0, 1)
)

// Model is the bubbletea model for a live suite run.
type Model struct {
	ctx     context.Context
	run     *executor.Run
	events  chan StepEvent
	spinner spinner.Model

	lines   []string
	current string
	result  *scenario.RunResult
	done    bool
}

// New creates a model for the prepared run. The returned channel must be
// wired as the run's OnStep sink before Prepare, via NewEventChannel.
func New(ctx context.Context, run *executor.Run, events chan StepEvent) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB3BA"))

	return Model{
		ctx:     ctx,
		run:     run,
		events:  events,
		spinner: s,
		current: "starting",
	}
}

// NewEventChannel creates the step event channel and the OnStep callback
// feeding it.
func NewEventChannel() (chan StepEvent, func(string, scenario.StepResult)) {
	events := make(chan StepEvent, 64)
	return events, func(scenarioName string, step scenario.StepResult) {
		events <- StepEvent{Scenario: scenarioName, Step: step}
	}
}

// Result returns the finished run result, nil until the run completes.
func (m Model) Result() *scenario.RunResult {
	return m.result
}

// Init starts the spinner, the suite run, and event consumption.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.execute(), m.nextEvent())
}

// execute runs the suite in the background and closes the event channel
// when it finishes.
func (m Model) execute() tea.Cmd {
	return func() tea.Msg {
		result := m.run.Execute(m.ctx)
		close(m.events)
		return doneMsg{result: result}
	}
}

// nextEvent waits for the next completed step.
func (m Model) nextEvent() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.events
		return stepMsg{event: event, ok: ok}
	}
}

// Update handles spinner ticks, step completions, and run completion.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}

	case stepMsg:
		if !msg.ok {
			// Channel closed; doneMsg carries the result
			return m, nil
		}
		m.lines = append(m.lines, renderStep(msg.event))
		m.current = msg.event.Scenario
		return m, m.nextEvent()

	case doneMsg:
		m.result = msg.result
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the live progress, or the final report once done.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("pagekit · %s", m.run.Suite.Name)))
	b.WriteString("\n\n")

	for _, line := range m.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.done && m.result != nil {
		b.WriteString("\n")
		b.WriteString(report.Render(m.result, report.FormatStyled))
	} else {
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString(statusStyle.Render(fmt.Sprintf("running %s · q to abort", m.current)))
		b.WriteString("\n")
	}

	return b.String()
}

func renderStep(event StepEvent) string {
	line := fmt.Sprintf("  %s / %s", event.Scenario, event.Step.Name)
	switch event.Step.Status {
	case scenario.StatusPassed:
		return passStyle.Render("  ✓" + line)
	case scenario.StatusFailed:
		return failStyle.Render("  ✗"+line) + failStyle.Render(fmt.Sprintf("  (%v)", event.Step.Err))
	default:
		return skipStyle.Render("  -" + line)
	}
}
