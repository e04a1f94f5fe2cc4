package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tuiwrite/internal/config"
	"github.com/verte-zerg/tuiwrite/internal/model"
	"github.com/verte-zerg/tuiwrite/internal/notes"
	"github.com/verte-zerg/tuiwrite/internal/store"
)

func setupXDG(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return dir
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func seedNotes(t *testing.T, texts ...string) []model.SavedNote {
	t.Helper()
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer func() {
		_ = st.Close()
	}()
	ns := notes.New(st)
	ctx := context.Background()
	var saved []model.SavedNote
	for _, text := range texts {
		res, err := ns.Save(ctx, text, "", saved)
		if err != nil {
			t.Fatalf("save note: %v", err)
		}
		saved = res.Notes
		if err := ns.PersistCurrentID(ctx, res.ID); err != nil {
			t.Fatalf("persist current id: %v", err)
		}
	}
	return saved
}

func loadSnapshot(t *testing.T) model.Snapshot {
	t.Helper()
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer func() {
		_ = st.Close()
	}()
	return notes.New(st).LoadAll(context.Background())
}

func TestStatsFromFile(t *testing.T) {
	dir := setupXDG(t)
	path := filepath.Join(dir, "essay.txt")
	if err := os.WriteFile(path, []byte("One. Two! Three?\n\nFour."), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	out, err := runCLI(t, "", "stats", path)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !containsAll(out, []string{"Words", "Sentences", "4", "Paragraphs", "2", "1 min"}) {
		t.Fatalf("unexpected stats output:\n%s", out)
	}
}

func TestStatsFromStdin(t *testing.T) {
	setupXDG(t)
	out, err := runCLI(t, "Hello world", "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out, "Characters (no spaces)") || !strings.Contains(out, "10") {
		t.Fatalf("unexpected stats output:\n%s", out)
	}
}

func TestImportThenDraftStats(t *testing.T) {
	dir := setupXDG(t)
	path := filepath.Join(dir, "draft.md")
	if err := os.WriteFile(path, []byte("imported words here"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	seedNotes(t, "existing note")

	out, err := runCLI(t, "", "import", path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "Imported 3 words") {
		t.Fatalf("unexpected import output: %s", out)
	}
	snap := loadSnapshot(t)
	if snap.Draft != "imported words here" || snap.CurrentNoteID != "" {
		t.Fatalf("unexpected snapshot after import: %+v", snap)
	}

	out, err = runCLI(t, "", "stats", "--draft")
	if err != nil {
		t.Fatalf("stats --draft: %v", err)
	}
	if !strings.Contains(out, "Words") || !strings.Contains(out, "3") {
		t.Fatalf("unexpected draft stats:\n%s", out)
	}
}

func TestImportRejectsUnsupportedFile(t *testing.T) {
	dir := setupXDG(t)
	path := filepath.Join(dir, "notes.docx")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := runCLI(t, "", "import", path); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestNotesListing(t *testing.T) {
	setupXDG(t)
	out, err := runCLI(t, "", "notes")
	if err != nil {
		t.Fatalf("notes: %v", err)
	}
	if !strings.Contains(out, "No saved notes.") {
		t.Fatalf("unexpected empty listing: %s", out)
	}

	saved := seedNotes(t, "First note\nbody", "Second note\nbody")
	out, err = runCLI(t, "", "notes")
	if err != nil {
		t.Fatalf("notes: %v", err)
	}
	first := strings.Index(out, "Second note")
	second := strings.Index(out, "First note")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("expected most recent note first:\n%s", out)
	}
	if !containsAll(out, []string{saved[0].ID, "Notes: 2", "Total words: 6"}) {
		t.Fatalf("listing missing expected content:\n%s", out)
	}
}

func TestDeleteClearsCurrentNote(t *testing.T) {
	setupXDG(t)
	saved := seedNotes(t, "keep", "remove")
	current := saved[0].ID

	out, err := runCLI(t, "", "delete", current)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !strings.Contains(out, `Deleted "remove"`) {
		t.Fatalf("unexpected delete output: %s", out)
	}
	snap := loadSnapshot(t)
	if len(snap.Notes) != 1 || snap.Notes[0].ID != saved[1].ID {
		t.Fatalf("unexpected notes after delete: %+v", snap.Notes)
	}
	if snap.CurrentNoteID != "" {
		t.Fatalf("expected current note id to be cleared, got %q", snap.CurrentNoteID)
	}

	if _, err := runCLI(t, "", "delete", "missing"); err == nil {
		t.Fatalf("expected error for unknown note")
	}
}

func TestExportDraftAndMarkdown(t *testing.T) {
	dir := setupXDG(t)
	saved := seedNotes(t, "Exported note\nwith body")
	outDir := filepath.Join(dir, "out")

	if _, err := runCLI(t, "", "export", "--dir", outDir); err == nil {
		t.Fatalf("expected error exporting an empty draft")
	}

	out, err := runCLI(t, "", "export", saved[0].ID, "--dir", outDir, "--markdown")
	if err != nil {
		t.Fatalf("export markdown: %v", err)
	}
	path := strings.TrimSpace(out)
	if filepath.Ext(path) != ".md" || filepath.Dir(path) != outDir {
		t.Fatalf("unexpected export path: %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.HasPrefix(string(data), "---\n") || !strings.Contains(string(data), "title: Exported note") {
		t.Fatalf("unexpected markdown export:\n%s", data)
	}
}

func TestExportSnapshot(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	snap := model.Snapshot{
		Draft: "draft text",
		Notes: []model.SavedNote{{ID: "n1", Title: "Note", Content: "note text"}},
	}

	path, err := exportSnapshot(snap, nil, dir, false, now)
	if err != nil {
		t.Fatalf("export draft: %v", err)
	}
	if filepath.Base(path) != "writing-2024-01-02T03-04-05.txt" {
		t.Fatalf("unexpected draft export: %s", path)
	}
	if _, err := exportSnapshot(snap, nil, dir, true, now); err == nil {
		t.Fatalf("expected --markdown without id to fail")
	}
	if _, err := exportSnapshot(snap, []string{"nope"}, dir, false, now); err == nil {
		t.Fatalf("expected unknown id to fail")
	}
	path, err = exportSnapshot(snap, []string{"n1"}, filepath.Join(dir, "notes"), false, now)
	if err != nil {
		t.Fatalf("export note: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "note text" {
		t.Fatalf("unexpected note export %q: %v", data, err)
	}
}

func TestDefaultConfigTemplateParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if cfg.Editor.AutoSaveDelayMs != nil || cfg.Editor.FontSize != nil {
		t.Fatalf("expected template values to be commented out: %+v", cfg.Editor)
	}
}

func TestValidateConfig(t *testing.T) {
	if err := validateConfig(model.EditorConfig{AutoSaveDelay: time.Second, ExportDir: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validateConfig(model.EditorConfig{AutoSaveDelay: 0, ExportDir: "x"}); err == nil {
		t.Fatalf("expected delay error")
	}
	if err := validateConfig(model.EditorConfig{AutoSaveDelay: time.Second, ExportDir: " "}); err == nil {
		t.Fatalf("expected export dir error")
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
