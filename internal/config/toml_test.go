package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/tuiwrite/internal/model"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if diff := cmp.Diff(model.DefaultSettings(), cfg.InitialSettings()); diff != "" {
		t.Fatalf("unexpected settings (-want +got):\n%s", diff)
	}
}

func TestLoadConfigEditorSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `[editor]
autosave-delay = 250
export-dir = "/tmp/out"
dark-mode = true
font-size = 40
autosave = false
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Editor.AutoSaveDelayMs == nil || *cfg.Editor.AutoSaveDelayMs != 250 {
		t.Fatalf("expected autosave delay 250, got %v", cfg.Editor.AutoSaveDelayMs)
	}
	if cfg.Editor.ExportDir == nil || *cfg.Editor.ExportDir != "/tmp/out" {
		t.Fatalf("expected export dir, got %v", cfg.Editor.ExportDir)
	}
	want := model.Settings{AutoSave: false, DarkMode: true, FontSize: model.MaxFontSize, FocusMode: false}
	if diff := cmp.Diff(want, cfg.InitialSettings()); diff != "" {
		t.Fatalf("unexpected settings (-want +got):\n%s", diff)
	}
}

func TestLoadConfigRejectsInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[editor\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "tuiwrite", "config.toml") {
		t.Fatalf("unexpected config path: %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "tuiwrite", "tuiwrite.db") {
		t.Fatalf("unexpected db path: %s", got)
	}
	if got := DefaultExportDir(); got != filepath.Join("/data", "tuiwrite", "exports") {
		t.Fatalf("unexpected export dir: %s", got)
	}
}
