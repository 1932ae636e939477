package scenario

import (
	"time"

	"github.com/google/uuid"
)

// StepStatus is the outcome of one step.
type StepStatus string

const (
	// StatusPassed means the step completed without error
	StatusPassed StepStatus = "passed"

	// StatusFailed means the step returned an error
	StatusFailed StepStatus = "failed"

	// StatusSkipped means the step never ran because an earlier step failed
	// or the run was cancelled
	StatusSkipped StepStatus = "skipped"
)

// StepResult records the outcome of one step.
type StepResult struct {
	Name     string
	Status   StepStatus
	Err      error
	Duration time.Duration

	// URL is the page URL at the moment of failure
	URL string

	// Snapshot is a cleaned DOM outline captured on failure
	Snapshot string
}

// ScenarioResult records the outcomes of one scenario's steps.
type ScenarioResult struct {
	Name     string
	Steps    []StepResult
	Duration time.Duration
}

// Passed reports whether every executed step passed.
func (r *ScenarioResult) Passed() bool {
	for _, step := range r.Steps {
		if step.Status == StatusFailed {
			return false
		}
	}
	return true
}

// RunResult aggregates a whole suite run.
type RunResult struct {
	ID        string
	SuiteName string
	StartedAt time.Time
	Duration  time.Duration
	Scenarios []ScenarioResult
}

// newRunResult stamps a run with a fresh ID.
func newRunResult(suiteName string) *RunResult {
	return &RunResult{
		ID:        uuid.New().String(),
		SuiteName: suiteName,
		StartedAt: time.Now(),
	}
}

// Passed reports whether every scenario passed.
func (r *RunResult) Passed() bool {
	for i := range r.Scenarios {
		if !r.Scenarios[i].Passed() {
			return false
		}
	}
	return true
}

// Counts returns the number of passed, failed, and skipped steps.
func (r *RunResult) Counts() (passed, failed, skipped int) {
	for _, scenario := range r.Scenarios {
		for _, step := range scenario.Steps {
			switch step.Status {
			case StatusPassed:
				passed++
			case StatusFailed:
				failed++
			case StatusSkipped:
				skipped++
			}
		}
	}
	return passed, failed, skipped
}
