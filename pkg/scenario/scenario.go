// Package scenario models end-to-end test suites and runs them: a Suite is
// an ordered list of Scenarios, a Scenario an ordered list of Steps, each
// step a function over the shared Env (driver, mock server, base URL).
package scenario

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/entrhq/pagekit/pkg/driver"
	"github.com/entrhq/pagekit/pkg/logging"
	"github.com/entrhq/pagekit/pkg/mockserver"
)

// Env is the shared environment steps execute against.
type Env struct {
	// Driver is the browser session for this run
	Driver driver.Driver

	// Server is the mock API server, nil when running against a live backend
	Server *mockserver.Server

	// BaseURL is the root of the application under test
	BaseURL string

	// Logger is the run logger
	Logger *logging.Logger

	// Values is a scratch space steps can use to pass data forward
	Values map[string]string
}

// NewEnv creates an environment with an initialized scratch space.
func NewEnv(d driver.Driver, srv *mockserver.Server, baseURL string) *Env {
	logger, _ := logging.NewLogger("scenario")
	return &Env{
		Driver:  d,
		Server:  srv,
		BaseURL: baseURL,
		Logger:  logger,
		Values:  make(map[string]string),
	}
}

// Step is one named action within a scenario.
type Step struct {
	Name string
	Run  func(ctx context.Context, env *Env) error
}

// Scenario is an ordered sequence of steps exercising one flow.
type Scenario struct {
	Name        string
	Description string
	Steps       []Step
}

// Suite groups scenarios under a name and base URL.
type Suite struct {
	Name      string
	BaseURL   string
	Scenarios []Scenario
}

// Registry maps scenario names to definitions so YAML suite files can
// reference scenarios implemented in Go.
type Registry struct {
	mu        sync.RWMutex
	scenarios map[string]Scenario
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{scenarios: make(map[string]Scenario)}
}

// Register adds a scenario definition. Re-registering a name is an error.
func (r *Registry) Register(s Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("scenario name cannot be empty")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario %q has no steps", s.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.scenarios[s.Name]; exists {
		return fmt.Errorf("scenario %q already registered", s.Name)
	}
	r.scenarios[s.Name] = s
	return nil
}

// Get returns a registered scenario by name.
func (r *Registry) Get(name string) (Scenario, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.scenarios[name]
	return s, ok
}

// Names returns all registered scenario names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
