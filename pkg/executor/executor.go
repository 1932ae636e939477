// Package executor wires a suite run together: mock server, browser
// session, scenario registry, and runner. Both the interactive and the CI
// binaries prepare runs through this package.
package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/entrhq/pagekit/pkg/config"
	"github.com/entrhq/pagekit/pkg/driver"
	"github.com/entrhq/pagekit/pkg/logging"
	"github.com/entrhq/pagekit/pkg/mockserver"
	"github.com/entrhq/pagekit/pkg/scenario"
)

// Options configures run preparation. Zero values fall back to the global
// config sections.
type Options struct {
	// SuitePath is the YAML suite file to load
	SuitePath string

	// Registry resolves scenario names; nil means builtins only
	Registry *scenario.Registry

	// HeadedOverride forces a visible browser regardless of config
	HeadedOverride bool

	// StepTimeout overrides the configured per-step timeout
	StepTimeout time.Duration

	// FailFast overrides the configured fail-fast behavior
	FailFast bool

	// OnStep receives live step results
	OnStep func(scenarioName string, step scenario.StepResult)
}

// Run is a fully prepared suite run.
type Run struct {
	Suite  *scenario.Suite
	Env    *scenario.Env
	Runner *scenario.Runner
	Server *mockserver.Server

	manager *driver.SessionManager
	logger  *logging.Logger
}

// Prepare loads the suite, starts the mock server with its fixtures, and
// launches a browser session. Callers must Close the run when done.
func Prepare(ctx context.Context, opts Options) (*Run, error) {
	logger, _ := logging.NewLogger("executor")

	registry := opts.Registry
	if registry == nil {
		registry = scenario.NewRegistry()
		if err := scenario.RegisterBuiltins(registry); err != nil {
			return nil, fmt.Errorf("failed to register builtin scenarios: %w", err)
		}
	}

	suite, fixtures, err := scenario.LoadSuite(opts.SuitePath, registry)
	if err != nil {
		return nil, err
	}

	serverCfg := config.GetServer()
	serverOpts := mockserver.Options{}
	if serverCfg != nil {
		serverOpts.Addr = serverCfg.ListenAddr()
		serverOpts.RecordLimit = serverCfg.GetRecordLimit()
	}

	server, err := mockserver.Start(serverOpts)
	if err != nil {
		return nil, err
	}

	if err := scenario.ApplyFixtures(server, fixtures); err != nil {
		server.Close(ctx)
		return nil, err
	}

	// A suite without an explicit base URL runs against the mock server
	baseURL := suite.BaseURL
	if baseURL == "" {
		baseURL = server.URL()
	}

	manager := driver.NewSessionManager()

	sessionOpts := driver.SessionOptions{Headless: true}
	if browserCfg := config.GetBrowser(); browserCfg != nil {
		sessionOpts.Headless = browserCfg.IsHeadless()
		width, height := browserCfg.Viewport()
		sessionOpts.Viewport = &driver.Viewport{Width: width, Height: height}
		sessionOpts.Timeout = browserCfg.Timeout()

		max, idle := browserCfg.SessionLimits()
		manager.SetMaxSessions(max)
		manager.SetIdleTimeout(idle)
	}
	if opts.HeadedOverride {
		sessionOpts.Headless = false
	}

	if err := manager.Initialize(); err != nil {
		server.Close(ctx)
		return nil, err
	}

	session, err := manager.StartSession(suite.Name, sessionOpts)
	if err != nil {
		manager.Shutdown()
		server.Close(ctx)
		return nil, err
	}

	runnerOpts := scenario.RunnerOptions{
		StepTimeout: opts.StepTimeout,
		FailFast:    opts.FailFast,
		OnStep:      opts.OnStep,
	}
	if runnerCfg := config.GetRunner(); runnerCfg != nil {
		if runnerOpts.StepTimeout == 0 {
			runnerOpts.StepTimeout = runnerCfg.GetStepTimeout()
		}
		if !runnerOpts.FailFast {
			runnerOpts.FailFast = runnerCfg.IsFailFast()
		}
	}

	logger.Infof("prepared suite %q: %d scenarios, base URL %s",
		suite.Name, len(suite.Scenarios), baseURL)

	return &Run{
		Suite:   suite,
		Env:     scenario.NewEnv(session, server, baseURL),
		Runner:  scenario.NewRunner(runnerOpts),
		Server:  server,
		manager: manager,
		logger:  logger,
	}, nil
}

// Execute runs the prepared suite.
func (r *Run) Execute(ctx context.Context) *scenario.RunResult {
	return r.Runner.Run(ctx, r.Suite, r.Env)
}

// Close releases the browser and mock server.
func (r *Run) Close(ctx context.Context) {
	if err := r.manager.Shutdown(); err != nil {
		r.logger.Warnf("browser shutdown: %v", err)
	}
	if err := r.Server.Close(ctx); err != nil {
		r.logger.Warnf("mock server shutdown: %v", err)
	}
	r.logger.Close()
}
