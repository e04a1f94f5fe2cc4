package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tuiwrite.log")
	logger, err := New(path, false)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("saved note")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line at info level, got %d:\n%s", len(lines), data)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["msg"] != "saved note" {
		t.Fatalf("unexpected message: %v", entry["msg"])
	}
}

func TestNewVerboseLogsDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuiwrite.log")
	logger, err := New(path, true)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debug("debug line")
	_ = logger.Sync()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "debug line") {
		t.Fatalf("expected debug entry, got:\n%s", data)
	}
}
