// Package model defines shared data structures.
package model

import "time"

// Font size bounds and default, in points.
const (
	MinFontSize     = 12
	MaxFontSize     = 24
	DefaultFontSize = 16
)

// WritingStats holds composition statistics derived from a text.
type WritingStats struct {
	Words              int
	Characters         int
	CharactersNoSpaces int
	Paragraphs         int
	Sentences          int
	ReadingTime        int
}

// SavedNote is a persisted snapshot of a draft.
type SavedNote struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	WordCount   int       `json:"wordCount"`
	CharCount   int       `json:"charCount"`
	ReadingTime int       `json:"readingTime"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Settings defines display and autosave preferences.
type Settings struct {
	AutoSave  bool `json:"autoSave"`
	DarkMode  bool `json:"darkMode"`
	FontSize  int  `json:"fontSize"`
	FocusMode bool `json:"focusMode"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() Settings {
	return Settings{
		AutoSave:  true,
		DarkMode:  false,
		FontSize:  DefaultFontSize,
		FocusMode: false,
	}
}

// ClampFontSize keeps a font size within the supported range.
func ClampFontSize(size int) int {
	if size < MinFontSize {
		return MinFontSize
	}
	if size > MaxFontSize {
		return MaxFontSize
	}
	return size
}

// Snapshot is everything restored from storage at startup.
type Snapshot struct {
	Draft         string
	CurrentNoteID string
	Notes         []SavedNote
	Settings      Settings
}

// EditorConfig defines runtime options for the editor.
type EditorConfig struct {
	AutoSaveDelay time.Duration
	ExportDir     string
}
