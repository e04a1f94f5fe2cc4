package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/tuiwrite/internal/model"
)

func TestRenderFooterFormats(t *testing.T) {
	m := &Model{
		stats: model.WritingStats{
			Words:              250,
			Characters:         1400,
			CharactersNoSpaces: 1150,
			Sentences:          12,
			Paragraphs:         3,
			ReadingTime:        2,
		},
		settings: model.Settings{AutoSave: true, FontSize: 18},
		copied:   true,
	}
	out := m.renderFooter()
	if out == "" {
		t.Fatalf("expected footer output")
	}
	want := []string{"250 words", "1400 chars", "1150 no spaces", "12 sentences", "3 paragraphs", "2 min read", "autosave on", "font 18", "Copied!"}
	if !containsAll(out, want) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestRenderFooterOmitsCopiedByDefault(t *testing.T) {
	m := &Model{settings: model.Settings{FontSize: 16}}
	out := m.renderFooter()
	if strings.Contains(out, "Copied!") {
		t.Fatalf("unexpected copied marker: %s", out)
	}
	if !containsAll(out, []string{"0 words", "autosave off"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestEditorWidthScalesWithFontSize(t *testing.T) {
	if got := editorWidth(100, 16); got != 70 {
		t.Fatalf("expected 70 columns at default size, got %d", got)
	}
	if got := editorWidth(100, 24); got != 46 {
		t.Fatalf("expected 46 columns at size 24, got %d", got)
	}
	if got := editorWidth(100, 12); got != 93 {
		t.Fatalf("expected 93 columns at size 12, got %d", got)
	}
	if got := editorWidth(20, 24); got != minEditorWidth {
		t.Fatalf("expected minimum width, got %d", got)
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
