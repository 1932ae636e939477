package config

import (
	"fmt"
	"sync"
	"time"
)

const (
	// SectionIDBrowser is the identifier for the browser settings section
	SectionIDBrowser = "browser"

	// Default values for browser settings
	defaultHeadless       = true
	defaultViewportWidth  = 1280
	defaultViewportHeight = 720
	defaultTimeoutMS      = 30000
	defaultMaxSessions    = 5
	defaultIdleTimeout    = 5 * time.Minute
)

// BrowserSection manages browser driver configuration settings.
type BrowserSection struct {
	Headless       bool          `json:"headless"`
	ViewportWidth  int           `json:"viewport_width"`
	ViewportHeight int           `json:"viewport_height"`
	TimeoutMS      float64       `json:"timeout_ms"`
	MaxSessions    int           `json:"max_sessions"`
	IdleTimeout    time.Duration `json:"idle_timeout"`
	mu             sync.RWMutex
}

// NewBrowserSection creates a new browser section with default settings.
func NewBrowserSection() *BrowserSection {
	return &BrowserSection{
		Headless:       defaultHeadless,
		ViewportWidth:  defaultViewportWidth,
		ViewportHeight: defaultViewportHeight,
		TimeoutMS:      defaultTimeoutMS,
		MaxSessions:    defaultMaxSessions,
		IdleTimeout:    defaultIdleTimeout,
	}
}

// ID returns the section identifier.
func (s *BrowserSection) ID() string {
	return SectionIDBrowser
}

// Title returns the section title.
func (s *BrowserSection) Title() string {
	return "Browser Settings"
}

// Description returns the section description.
func (s *BrowserSection) Description() string {
	return "Configure browser sessions: headless mode, viewport, timeouts, and session limits."
}

// Data returns the current configuration data.
func (s *BrowserSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"headless":        s.Headless,
		"viewport_width":  s.ViewportWidth,
		"viewport_height": s.ViewportHeight,
		"timeout_ms":      s.TimeoutMS,
		"max_sessions":    s.MaxSessions,
		"idle_timeout":    s.IdleTimeout.String(),
	}
}

// SetData updates the configuration from the provided data.
func (s *BrowserSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "headless":
			enabled, ok := value.(bool)
			if !ok {
				return fmt.Errorf("invalid value type for headless: expected bool, got %T", value)
			}
			s.Headless = enabled

		case "viewport_width":
			width, err := toInt(value)
			if err != nil {
				return fmt.Errorf("invalid value for viewport_width: %w", err)
			}
			s.ViewportWidth = width

		case "viewport_height":
			height, err := toInt(value)
			if err != nil {
				return fmt.Errorf("invalid value for viewport_height: %w", err)
			}
			s.ViewportHeight = height

		case "timeout_ms":
			switch v := value.(type) {
			case float64:
				s.TimeoutMS = v
			case int:
				s.TimeoutMS = float64(v)
			default:
				return fmt.Errorf("invalid value type for timeout_ms: expected number, got %T", value)
			}

		case "max_sessions":
			max, err := toInt(value)
			if err != nil {
				return fmt.Errorf("invalid value for max_sessions: %w", err)
			}
			s.MaxSessions = max

		case "idle_timeout":
			// Handle both string and numeric duration values
			switch v := value.(type) {
			case string:
				duration, err := time.ParseDuration(v)
				if err != nil {
					return fmt.Errorf("invalid duration string for idle_timeout: %w", err)
				}
				s.IdleTimeout = duration
			case float64:
				// JSON numbers come as float64
				s.IdleTimeout = time.Duration(v)
			case int64:
				s.IdleTimeout = time.Duration(v)
			default:
				return fmt.Errorf("invalid value type for idle_timeout: expected string or number, got %T", value)
			}

		default:
			// Ignore unknown keys for forward compatibility
			continue
		}
	}

	return nil
}

// Validate validates the current configuration.
func (s *BrowserSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.ViewportWidth < 320 || s.ViewportWidth > 7680 {
		return fmt.Errorf("viewport_width must be between 320 and 7680, got %d", s.ViewportWidth)
	}
	if s.ViewportHeight < 240 || s.ViewportHeight > 4320 {
		return fmt.Errorf("viewport_height must be between 240 and 4320, got %d", s.ViewportHeight)
	}
	if s.TimeoutMS < 0 || s.TimeoutMS > 300000 {
		return fmt.Errorf("timeout_ms must be between 0 and 300000, got %v", s.TimeoutMS)
	}
	if s.MaxSessions < 1 || s.MaxSessions > 32 {
		return fmt.Errorf("max_sessions must be between 1 and 32, got %d", s.MaxSessions)
	}
	if s.IdleTimeout < time.Second || s.IdleTimeout > time.Hour {
		return fmt.Errorf("idle_timeout must be between 1s and 1h, got %v", s.IdleTimeout)
	}

	return nil
}

// Reset resets the section to default configuration.
func (s *BrowserSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Headless = defaultHeadless
	s.ViewportWidth = defaultViewportWidth
	s.ViewportHeight = defaultViewportHeight
	s.TimeoutMS = defaultTimeoutMS
	s.MaxSessions = defaultMaxSessions
	s.IdleTimeout = defaultIdleTimeout
}

// IsHeadless returns whether new sessions default to headless mode.
func (s *BrowserSection) IsHeadless() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Headless
}

// Viewport returns the configured viewport dimensions.
func (s *BrowserSection) Viewport() (width, height int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ViewportWidth, s.ViewportHeight
}

// Timeout returns the default operation timeout in milliseconds.
func (s *BrowserSection) Timeout() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.TimeoutMS
}

// SessionLimits returns the max session count and idle timeout.
func (s *BrowserSection) SessionLimits() (int, time.Duration) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.MaxSessions, s.IdleTimeout
}

// toInt coerces JSON-decoded numeric values to int.
func toInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("expected number, got %T", value)
	}
}
