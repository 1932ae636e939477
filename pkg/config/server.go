package config

import (
	"fmt"
	"sync"
)

const (
	// SectionIDServer is the identifier for the mock server settings section
	SectionIDServer = "server"

	// Default values for mock server settings
	defaultServerAddr  = "127.0.0.1:0"
	defaultRecordLimit = 256
)

// ServerSection manages mock server configuration settings.
type ServerSection struct {
	Addr        string `json:"addr"`
	RecordLimit int    `json:"record_limit"`
	mu          sync.RWMutex
}

// NewServerSection creates a new server section with default settings.
func NewServerSection() *ServerSection {
	return &ServerSection{
		Addr:        defaultServerAddr,
		RecordLimit: defaultRecordLimit,
	}
}

// ID returns the section identifier.
func (s *ServerSection) ID() string {
	return SectionIDServer
}

// Title returns the section title.
func (s *ServerSection) Title() string {
	return "Mock Server Settings"
}

// Description returns the section description.
func (s *ServerSection) Description() string {
	return "Configure the local mock API server: listen address and request recording limits."
}

// Data returns the current configuration data.
func (s *ServerSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"addr":         s.Addr,
		"record_limit": s.RecordLimit,
	}
}

// SetData updates the configuration from the provided data.
func (s *ServerSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "addr":
			addr, ok := value.(string)
			if !ok {
				return fmt.Errorf("invalid value type for addr: expected string, got %T", value)
			}
			s.Addr = addr

		case "record_limit":
			limit, err := toInt(value)
			if err != nil {
				return fmt.Errorf("invalid value for record_limit: %w", err)
			}
			s.RecordLimit = limit

		default:
			// Ignore unknown keys for forward compatibility
			continue
		}
	}

	return nil
}

// Validate validates the current configuration.
func (s *ServerSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.Addr == "" {
		return fmt.Errorf("addr cannot be empty")
	}
	if s.RecordLimit < 1 || s.RecordLimit > 10000 {
		return fmt.Errorf("record_limit must be between 1 and 10000, got %d", s.RecordLimit)
	}

	return nil
}

// Reset resets the section to default configuration.
func (s *ServerSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Addr = defaultServerAddr
	s.RecordLimit = defaultRecordLimit
}

// ListenAddr returns the configured listen address.
func (s *ServerSection) ListenAddr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Addr
}

// GetRecordLimit returns the request recording cap.
func (s *ServerSection) GetRecordLimit() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.RecordLimit
}
