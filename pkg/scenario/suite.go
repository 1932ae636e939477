package scenario

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/entrhq/pagekit/pkg/mockserver"
)

// Fixture declares one mock route in a suite file.
type Fixture struct {
	Method string      `yaml:"method"`
	Path   string      `yaml:"path"`
	Status int         `yaml:"status"`
	Body   interface{} `yaml:"body"`
	Delay  string      `yaml:"delay"`
}

// suiteFile is the YAML shape of a suite definition.
type suiteFile struct {
	Name      string    `yaml:"name"`
	BaseURL   string    `yaml:"base_url"`
	Fixtures  []Fixture `yaml:"fixtures"`
	Scenarios []string  `yaml:"scenarios"`
}

// LoadSuite reads a YAML suite file and resolves its scenario names against
// the registry. The returned fixtures are applied separately so callers
// control the mock server lifecycle.
func LoadSuite(path string, registry *Registry) (*Suite, []Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read suite file: %w", err)
	}

	var file suiteFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("failed to parse suite file: %w", err)
	}

	if file.Name == "" {
		return nil, nil, fmt.Errorf("suite file %s has no name", path)
	}
	if len(file.Scenarios) == 0 {
		return nil, nil, fmt.Errorf("suite %q lists no scenarios", file.Name)
	}

	suite := &Suite{
		Name:    file.Name,
		BaseURL: file.BaseURL,
	}

	for _, name := range file.Scenarios {
		s, ok := registry.Get(name)
		if !ok {
			return nil, nil, fmt.Errorf("suite %q references unknown scenario %q (known: %v)",
				file.Name, name, registry.Names())
		}
		suite.Scenarios = append(suite.Scenarios, s)
	}

	return suite, file.Fixtures, nil
}

// ApplyFixtures registers every fixture as a mock route.
func ApplyFixtures(srv *mockserver.Server, fixtures []Fixture) error {
	for _, f := range fixtures {
		if f.Method == "" || f.Path == "" {
			return fmt.Errorf("fixture must set method and path, got %+v", f)
		}

		resp := mockserver.Response{
			Status: f.Status,
			JSON:   f.Body,
		}

		if f.Delay != "" {
			delay, err := time.ParseDuration(f.Delay)
			if err != nil {
				return fmt.Errorf("fixture %s %s: invalid delay %q: %w", f.Method, f.Path, f.Delay, err)
			}
			resp.Delay = delay
		}

		if err := srv.Mock(f.Method, f.Path, resp); err != nil {
			return fmt.Errorf("fixture %s %s: %w", f.Method, f.Path, err)
		}
	}

	return nil
}
