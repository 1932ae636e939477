package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// setupTestDir points the package at a temporary log directory and resets
// global state, returning a cleanup function.
func setupTestDir(t *testing.T) (cleanup func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "pagekit-logging-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	origLogDir := logDir
	origInitErr := initErr
	origInitOnce := initOnce
	origRunID := runID
	origRunIDOnce := runIDOnce

	logDir = tempDir
	initErr = nil
	initOnce = sync.Once{}
	initOnce.Do(func() {}) // mark as initialized so logDir is used as-is
	runID = ""
	runIDOnce = sync.Once{}

	return func() {
		logDir = origLogDir
		initErr = origInitErr
		initOnce = origInitOnce
		runID = origRunID
		runIDOnce = origRunIDOnce

		os.RemoveAll(tempDir)
	}
}

func TestNewLogger(t *testing.T) {
	cleanup := setupTestDir(t)
	defer cleanup()

	logger, err := NewLogger("driver")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	if logger.component != "driver" {
		t.Errorf("component = %q, want %q", logger.component, "driver")
	}
	if logger.RunID() == "" {
		t.Error("RunID should not be empty")
	}
	if logger.LogPath() == "" {
		t.Error("LogPath should not be empty")
	}
	if !strings.HasSuffix(logger.LogPath(), "-pagekit.log") {
		t.Errorf("unexpected log file name: %s", logger.LogPath())
	}
}

func TestLoggerWritesEntries(t *testing.T) {
	cleanup := setupTestDir(t)
	defer cleanup()

	logger, err := NewLogger("mockserver")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	logger.Debugf("debug %d", 1)
	logger.Infof("info message")
	logger.Warnf("warn message")
	logger.Errorf("error: %v", os.ErrNotExist)
	logger.Close()

	data, err := os.ReadFile(logger.LogPath())
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	content := string(data)
	for _, want := range []string{
		"[mockserver] [DEBUG] debug 1",
		"[mockserver] [INFO] info message",
		"[mockserver] [WARN] warn message",
		"[mockserver] [ERROR] error:",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("log file missing entry %q\ncontent:\n%s", want, content)
		}
	}
}

func TestLoggersShareRunFile(t *testing.T) {
	cleanup := setupTestDir(t)
	defer cleanup()

	first, err := NewLogger("runner")
	if err != nil {
		t.Fatalf("Failed to create first logger: %v", err)
	}
	defer first.Close()

	second, err := NewLogger("pages")
	if err != nil {
		t.Fatalf("Failed to create second logger: %v", err)
	}
	defer second.Close()

	if first.LogPath() != second.LogPath() {
		t.Errorf("loggers should share one run file: %q vs %q", first.LogPath(), second.LogPath())
	}
	if first.RunID() != second.RunID() {
		t.Errorf("loggers should share one run ID: %q vs %q", first.RunID(), second.RunID())
	}
}

func TestLoggerCloseIdempotent(t *testing.T) {
	cleanup := setupTestDir(t)
	defer cleanup()

	logger, err := NewLogger("report")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
}

func TestGetLogDirectory(t *testing.T) {
	cleanup := setupTestDir(t)
	defer cleanup()

	dir, err := GetLogDirectory()
	if err != nil {
		t.Fatalf("GetLogDirectory failed: %v", err)
	}
	if _, err := os.Stat(filepath.Clean(dir)); err != nil {
		t.Errorf("log directory should exist: %v", err)
	}
}
