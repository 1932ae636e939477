package config

import (
	"fmt"
	"sync"
	"time"
)

const (
	// SectionIDRunner is the identifier for the runner settings section
	SectionIDRunner = "runner"

	// Default values for runner settings
	defaultStepTimeout  = 60 * time.Second
	defaultFailFast     = false
	defaultReportFormat = "styled"
)

// RunnerSection manages scenario runner configuration settings.
type RunnerSection struct {
	StepTimeout  time.Duration `json:"step_timeout"`
	FailFast     bool          `json:"fail_fast"`
	ReportFormat string        `json:"report_format"`
	mu           sync.RWMutex
}

// NewRunnerSection creates a new runner section with default settings.
func NewRunnerSection() *RunnerSection {
	return &RunnerSection{
		StepTimeout:  defaultStepTimeout,
		FailFast:     defaultFailFast,
		ReportFormat: defaultReportFormat,
	}
}

// ID returns the section identifier.
func (s *RunnerSection) ID() string {
	return SectionIDRunner
}

// Title returns the section title.
func (s *RunnerSection) Title() string {
	return "Runner Settings"
}

// Description returns the section description.
func (s *RunnerSection) Description() string {
	return "Configure scenario execution: per-step timeout, fail-fast behavior, and report format."
}

// Data returns the current configuration data.
func (s *RunnerSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"step_timeout":  s.StepTimeout.String(),
		"fail_fast":     s.FailFast,
		"report_format": s.ReportFormat,
	}
}

// SetData updates the configuration from the provided data.
func (s *RunnerSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "step_timeout":
			switch v := value.(type) {
			case string:
				duration, err := time.ParseDuration(v)
				if err != nil {
					return fmt.Errorf("invalid duration string for step_timeout: %w", err)
				}
				s.StepTimeout = duration
			case float64:
				s.StepTimeout = time.Duration(v)
			case int64:
				s.StepTimeout = time.Duration(v)
			default:
				return fmt.Errorf("invalid value type for step_timeout: expected string or number, got %T", value)
			}

		case "fail_fast":
			enabled, ok := value.(bool)
			if !ok {
				return fmt.Errorf("invalid value type for fail_fast: expected bool, got %T", value)
			}
			s.FailFast = enabled

		case "report_format":
			format, ok := value.(string)
			if !ok {
				return fmt.Errorf("invalid value type for report_format: expected string, got %T", value)
			}
			s.ReportFormat = format

		default:
			// Ignore unknown keys for forward compatibility
			continue
		}
	}

	return nil
}

// Validate validates the current configuration.
func (s *RunnerSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.StepTimeout < time.Second || s.StepTimeout > time.Hour {
		return fmt.Errorf("step_timeout must be between 1s and 1h, got %v", s.StepTimeout)
	}
	if s.ReportFormat != "styled" && s.ReportFormat != "plain" {
		return fmt.Errorf("report_format must be 'styled' or 'plain', got %q", s.ReportFormat)
	}

	return nil
}

// Reset resets the section to default configuration.
func (s *RunnerSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.StepTimeout = defaultStepTimeout
	s.FailFast = defaultFailFast
	s.ReportFormat = defaultReportFormat
}

// GetStepTimeout returns the per-step timeout.
func (s *RunnerSection) GetStepTimeout() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.StepTimeout
}

// IsFailFast returns whether a failed scenario aborts the whole run.
func (s *RunnerSection) IsFailFast() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.FailFast
}

// GetReportFormat returns the configured report format.
func (s *RunnerSection) GetReportFormat() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ReportFormat
}
