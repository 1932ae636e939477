package config

import (
	"fmt"
	"testing"
)

// mockSection is a test implementation of the Section interface
type mockSection struct {
	id          string
	title       string
	description string
	data        map[string]interface{}
	validateErr error
}

func (m *mockSection) ID() string                                { return m.id }
func (m *mockSection) Title() string                             { return m.title }
func (m *mockSection) Description() string                       { return m.description }
func (m *mockSection) Data() map[string]interface{}              { return m.data }
func (m *mockSection) SetData(data map[string]interface{}) error { m.data = data; return nil }
func (m *mockSection) Validate() error                           { return m.validateErr }
func (m *mockSection) Reset()                                    { m.data = make(map[string]interface{}) }

// mockStore is a test implementation of the Store interface
type mockStore struct {
	sections map[string]map[string]interface{}
	loadErr  error
	saveErr  error
}

func newMockStore() *mockStore {
	return &mockStore{
		sections: make(map[string]map[string]interface{}),
	}
}

func (m *mockStore) Load() error {
	return m.loadErr
}

func (m *mockStore) Save() error {
	return m.saveErr
}

func (m *mockStore) GetSection(sectionID string) (map[string]interface{}, error) {
	if data, exists := m.sections[sectionID]; exists {
		return data, nil
	}
	return make(map[string]interface{}), nil
}

func (m *mockStore) SetSection(sectionID string, data map[string]interface{}) error {
	m.sections[sectionID] = data
	return nil
}

func (m *mockStore) GetAll() (map[string]map[string]interface{}, error) {
	return m.sections, nil
}

func (m *mockStore) SetAll(data map[string]map[string]interface{}) error {
	m.sections = data
	return nil
}

func TestNewManager(t *testing.T) {
	store := newMockStore()
	manager := NewManager(store)

	if manager == nil {
		t.Fatal("NewManager returned nil")
	}

	if manager.Store() != store {
		t.Error("Manager does not reference correct store")
	}

	sections := manager.GetSections()
	if len(sections) != 0 {
		t.Error("New manager should have no sections")
	}
}

func TestManager_RegisterSection(t *testing.T) {
	t.Run("registers section successfully", func(t *testing.T) {
		manager := NewManager(newMockStore())
		section := &mockSection{id: "test", title: "Test"}

		if err := manager.RegisterSection(section); err != nil {
			t.Fatalf("RegisterSection failed: %v", err)
		}

		got, ok := manager.GetSection("test")
		if !ok {
			t.Fatal("registered section not found")
		}
		if got != section {
			t.Error("GetSection returned wrong section")
		}
	})

	t.Run("rejects duplicate section ID", func(t *testing.T) {
		manager := NewManager(newMockStore())
		section1 := &mockSection{id: "dup"}
		section2 := &mockSection{id: "dup"}

		if err := manager.RegisterSection(section1); err != nil {
			t.Fatalf("first RegisterSection failed: %v", err)
		}

		if err := manager.RegisterSection(section2); err == nil {
			t.Error("expected error registering duplicate section ID")
		}
	})

	t.Run("rejects empty section ID", func(t *testing.T) {
		manager := NewManager(newMockStore())
		section := &mockSection{id: ""}

		if err := manager.RegisterSection(section); err == nil {
			t.Error("expected error registering section with empty ID")
		}
	})

	t.Run("sections sorted by ID", func(t *testing.T) {
		manager := NewManager(newMockStore())
		manager.RegisterSection(&mockSection{id: "charlie"})
		manager.RegisterSection(&mockSection{id: "alpha"})
		manager.RegisterSection(&mockSection{id: "bravo"})

		sections := manager.GetSections()
		if len(sections) != 3 {
			t.Fatalf("expected 3 sections, got %d", len(sections))
		}
		want := []string{"alpha", "bravo", "charlie"}
		for i, section := range sections {
			if section.ID() != want[i] {
				t.Errorf("section %d: got %q, want %q", i, section.ID(), want[i])
			}
		}
	})
}

func TestManager_LoadAll(t *testing.T) {
	t.Run("applies stored data to sections", func(t *testing.T) {
		store := newMockStore()
		store.sections["test"] = map[string]interface{}{"key": "value"}

		manager := NewManager(store)
		section := &mockSection{id: "test"}
		manager.RegisterSection(section)

		if err := manager.LoadAll(); err != nil {
			t.Fatalf("LoadAll failed: %v", err)
		}

		if section.data["key"] != "value" {
			t.Errorf("section data not applied: %v", section.data)
		}
	})

	t.Run("keeps defaults when no data stored", func(t *testing.T) {
		manager := NewManager(newMockStore())
		section := &mockSection{id: "test", data: map[string]interface{}{"preset": true}}
		manager.RegisterSection(section)

		if err := manager.LoadAll(); err != nil {
			t.Fatalf("LoadAll failed: %v", err)
		}

		if section.data["preset"] != true {
			t.Error("section defaults should be preserved when store is empty")
		}
	})

	t.Run("propagates store load error", func(t *testing.T) {
		store := newMockStore()
		store.loadErr = fmt.Errorf("disk gone")

		manager := NewManager(store)
		if err := manager.LoadAll(); err == nil {
			t.Error("expected LoadAll to propagate store error")
		}
	})
}

func TestManager_SaveAll(t *testing.T) {
	t.Run("persists section data", func(t *testing.T) {
		store := newMockStore()
		manager := NewManager(store)
		section := &mockSection{id: "test", data: map[string]interface{}{"key": "value"}}
		manager.RegisterSection(section)

		if err := manager.SaveAll(); err != nil {
			t.Fatalf("SaveAll failed: %v", err)
		}

		if store.sections["test"]["key"] != "value" {
			t.Errorf("section data not persisted: %v", store.sections)
		}
	})

	t.Run("rejects invalid sections", func(t *testing.T) {
		manager := NewManager(newMockStore())
		section := &mockSection{id: "bad", validateErr: fmt.Errorf("invalid")}
		manager.RegisterSection(section)

		if err := manager.SaveAll(); err == nil {
			t.Error("expected SaveAll to fail validation")
		}
	})

	t.Run("propagates store save error", func(t *testing.T) {
		store := newMockStore()
		store.saveErr = fmt.Errorf("disk full")

		manager := NewManager(store)
		manager.RegisterSection(&mockSection{id: "test", data: map[string]interface{}{}})

		if err := manager.SaveAll(); err == nil {
			t.Error("expected SaveAll to propagate store error")
		}
	})
}
