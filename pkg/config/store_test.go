package config

import (
	"os"
	"path/filepath"
	"testing"
)

func tempConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.json")
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	store, err := NewFileStore(tempConfigPath(t))
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	data, err := store.GetAll()
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty store for missing file, got %v", data)
	}
}

func TestFileStore_SaveAndReload(t *testing.T) {
	path := tempConfigPath(t)

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if err := store.SetSection("browser", map[string]interface{}{
		"headless":   false,
		"timeout_ms": 15000.0,
	}); err != nil {
		t.Fatalf("SetSection failed: %v", err)
	}

	if !store.IsModified() {
		t.Error("store should be modified after SetSection")
	}

	if err := store.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if store.IsModified() {
		t.Error("store should not be modified after Save")
	}

	// Reload from a fresh store
	reloaded, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore (reload) failed: %v", err)
	}

	data, err := reloaded.GetSection("browser")
	if err != nil {
		t.Fatalf("GetSection failed: %v", err)
	}

	if data["headless"] != false {
		t.Errorf("headless = %v, want false", data["headless"])
	}
	if data["timeout_ms"] != 15000.0 {
		t.Errorf("timeout_ms = %v, want 15000", data["timeout_ms"])
	}
}

func TestFileStore_SaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.json")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if err := store.SetSection("runner", map[string]interface{}{"fail_fast": true}); err != nil {
		t.Fatalf("SetSection failed: %v", err)
	}
	if err := store.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file should exist after Save: %v", err)
	}
}

func TestFileStore_LoadRejectsMalformedJSON(t *testing.T) {
	path := tempConfigPath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := NewFileStore(path); err == nil {
		t.Error("expected error loading malformed config")
	}
}

func TestFileStore_SectionCopies(t *testing.T) {
	store, err := NewFileStore(tempConfigPath(t))
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	original := map[string]interface{}{"addr": "127.0.0.1:0"}
	if err := store.SetSection("server", original); err != nil {
		t.Fatalf("SetSection failed: %v", err)
	}

	// Mutating the input after storing must not affect the store
	original["addr"] = "changed"

	data, err := store.GetSection("server")
	if err != nil {
		t.Fatalf("GetSection failed: %v", err)
	}
	if data["addr"] != "127.0.0.1:0" {
		t.Errorf("store should hold a copy, got %v", data["addr"])
	}

	// Mutating the returned map must not affect the store either
	data["addr"] = "changed again"
	again, _ := store.GetSection("server")
	if again["addr"] != "127.0.0.1:0" {
		t.Errorf("GetSection should return a copy, got %v", again["addr"])
	}
}
