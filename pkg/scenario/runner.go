package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/entrhq/pagekit/pkg/driver"
	"github.com/entrhq/pagekit/pkg/logging"
)

// DefaultStepTimeout bounds a single step when the runner is not configured.
const DefaultStepTimeout = 60 * time.Second

// RunnerOptions configures suite execution.
type RunnerOptions struct {
	// StepTimeout bounds each step (0 means DefaultStepTimeout)
	StepTimeout time.Duration

	// FailFast aborts the whole run after the first failed scenario.
	// Without it, a failed scenario skips its remaining steps but later
	// scenarios still run.
	FailFast bool

	// OnStep, when set, is called after every step completes. Used by the
	// interactive runner for live progress.
	OnStep func(scenarioName string, step StepResult)
}

// Runner executes suites sequentially.
type Runner struct {
	opts   RunnerOptions
	logger *logging.Logger
}

// NewRunner creates a runner.
func NewRunner(opts RunnerOptions) *Runner {
	if opts.StepTimeout <= 0 {
		opts.StepTimeout = DefaultStepTimeout
	}
	logger, _ := logging.NewLogger("runner")
	return &Runner{opts: opts, logger: logger}
}

// Run executes every scenario in the suite against the environment.
// Cancelling ctx stops the run between steps; steps already running are
// bounded by the step timeout.
func (r *Runner) Run(ctx context.Context, suite *Suite, env *Env) *RunResult {
	result := newRunResult(suite.Name)
	r.logger.Infof("run %s: suite %q, %d scenarios", result.ID, suite.Name, len(suite.Scenarios))

	for _, scenario := range suite.Scenarios {
		scenarioResult := r.runScenario(ctx, scenario, env)
		result.Scenarios = append(result.Scenarios, scenarioResult)

		if !scenarioResult.Passed() && r.opts.FailFast {
			r.logger.Warnf("run %s: fail-fast after scenario %q", result.ID, scenario.Name)
			break
		}
		if ctx.Err() != nil {
			r.logger.Warnf("run %s: cancelled", result.ID)
			break
		}
	}

	result.Duration = time.Since(result.StartedAt)
	passed, failed, skipped := result.Counts()
	r.logger.Infof("run %s: %d passed, %d failed, %d skipped in %v",
		result.ID, passed, failed, skipped, result.Duration)
	return result
}

// runScenario executes one scenario's steps in order. After the first
// failure (or cancellation) the remaining steps are marked skipped.
func (r *Runner) runScenario(ctx context.Context, scenario Scenario, env *Env) ScenarioResult {
	start := time.Now()
	result := ScenarioResult{Name: scenario.Name}

	halted := false
	for _, step := range scenario.Steps {
		if halted || ctx.Err() != nil {
			stepResult := StepResult{Name: step.Name, Status: StatusSkipped}
			result.Steps = append(result.Steps, stepResult)
			r.notify(scenario.Name, stepResult)
			continue
		}

		stepResult := r.runStep(ctx, step, env)
		result.Steps = append(result.Steps, stepResult)
		r.notify(scenario.Name, stepResult)

		if stepResult.Status == StatusFailed {
			halted = true
		}
	}

	result.Duration = time.Since(start)
	return result
}

// runStep executes one step under the step timeout, capturing a failure
// snapshot when it errors.
func (r *Runner) runStep(ctx context.Context, step Step, env *Env) StepResult {
	stepCtx, cancel := context.WithTimeout(ctx, r.opts.StepTimeout)
	defer cancel()

	start := time.Now()
	err := step.Run(stepCtx, env)
	duration := time.Since(start)

	if err == nil {
		r.logger.Debugf("step %q passed in %v", step.Name, duration)
		return StepResult{Name: step.Name, Status: StatusPassed, Duration: duration}
	}

	if stepCtx.Err() != nil {
		err = fmt.Errorf("%w (step timeout %v)", err, r.opts.StepTimeout)
	}

	result := StepResult{
		Name:     step.Name,
		Status:   StatusFailed,
		Err:      err,
		Duration: duration,
	}

	r.logger.Errorf("step %q failed in %v: %v", step.Name, duration, err)
	r.captureSnapshot(env, &result)
	return result
}

// captureSnapshot records the current URL and a cleaned DOM outline.
// Snapshot failures are logged, not propagated; the step error stands.
func (r *Runner) captureSnapshot(env *Env, result *StepResult) {
	if env.Driver == nil {
		return
	}

	result.URL = env.Driver.URL()

	html, err := env.Driver.Content()
	if err != nil {
		r.logger.Warnf("snapshot: failed to read page content: %v", err)
		return
	}

	outline, err := driver.Outline(html, driver.DefaultOutlineLength)
	if err != nil {
		r.logger.Warnf("snapshot: failed to build outline: %v", err)
		return
	}
	result.Snapshot = outline.HTML
}

func (r *Runner) notify(scenarioName string, step StepResult) {
	if r.opts.OnStep != nil {
		r.opts.OnStep(scenarioName, step)
	}
}
