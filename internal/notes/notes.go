// Package notes persists the draft, the saved-note collection, and settings
// on top of a key-value store.
package notes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/verte-zerg/tuiwrite/internal/model"
	"github.com/verte-zerg/tuiwrite/internal/stats"
)

// Storage keys.
const (
	KeyDraft     = "tuiwrite-draft"
	KeyNotes     = "tuiwrite-notes"
	KeySettings  = "tuiwrite-settings"
	KeyCurrentID = "tuiwrite-current"
)

// UntitledTitle is used when the first line of a note is blank.
const UntitledTitle = "Untitled Note"

const maxTitleRunes = 50

// KV is the key-value storage the notes store writes through.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Store maps draft, notes, and settings onto KV entries.
type Store struct {
	kv       KV
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
	defaults model.Settings
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for recovered read failures.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source for note timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator overrides how new note ids are created.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// WithDefaultSettings sets the settings returned when none are stored.
func WithDefaultSettings(settings model.Settings) Option {
	return func(s *Store) {
		s.defaults = settings
	}
}

// New returns a Store backed by kv.
func New(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		logger:   zap.NewNop(),
		now:      time.Now,
		newID:    uuid.NewString,
		defaults: model.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// storedNote is the serialized form of a note.
type storedNote struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	WordCount   int    `json:"wordCount"`
	CharCount   int    `json:"charCount"`
	ReadingTime int    `json:"readingTime"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// LoadAll restores everything from storage. Absent or malformed entries fall
// back to defaults; it never fails.
func (s *Store) LoadAll(ctx context.Context) model.Snapshot {
	snap := model.Snapshot{
		Notes:    []model.SavedNote{},
		Settings: s.defaults,
	}
	if draft, ok := s.read(ctx, KeyDraft); ok {
		snap.Draft = draft
	}
	if id, ok := s.read(ctx, KeyCurrentID); ok {
		snap.CurrentNoteID = id
	}
	if raw, ok := s.read(ctx, KeyNotes); ok {
		notes, err := decodeNotes(raw)
		if err != nil {
			s.logger.Warn("ignoring malformed notes", zap.Error(err))
		} else {
			snap.Notes = notes
		}
	}
	if raw, ok := s.read(ctx, KeySettings); ok {
		settings, err := decodeSettings(raw, s.defaults)
		if err != nil {
			s.logger.Warn("ignoring malformed settings", zap.Error(err))
		} else {
			snap.Settings = settings
		}
	}
	// The association is dropped if its note no longer exists.
	if snap.CurrentNoteID != "" {
		if _, ok := Find(snap.Notes, snap.CurrentNoteID); !ok {
			snap.CurrentNoteID = ""
		}
	}
	return snap
}

func (s *Store) read(ctx context.Context, key string) (string, bool) {
	value, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Warn("failed to read key", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return value, ok
}

func decodeNotes(raw string) ([]model.SavedNote, error) {
	var stored []storedNote
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("failed to decode notes: %w", err)
	}
	notes := make([]model.SavedNote, 0, len(stored))
	for _, sn := range stored {
		createdAt, err := time.Parse(time.RFC3339Nano, sn.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse createdAt of note %q: %w", sn.ID, err)
		}
		updatedAt, err := time.Parse(time.RFC3339Nano, sn.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse updatedAt of note %q: %w", sn.ID, err)
		}
		notes = append(notes, model.SavedNote{
			ID:          sn.ID,
			Title:       sn.Title,
			Content:     sn.Content,
			WordCount:   sn.WordCount,
			CharCount:   sn.CharCount,
			ReadingTime: sn.ReadingTime,
			CreatedAt:   createdAt,
			UpdatedAt:   updatedAt,
		})
	}
	return notes, nil
}

func encodeNotes(notes []model.SavedNote) (string, error) {
	stored := make([]storedNote, 0, len(notes))
	for _, n := range notes {
		stored = append(stored, storedNote{
			ID:          n.ID,
			Title:       n.Title,
			Content:     n.Content,
			WordCount:   n.WordCount,
			CharCount:   n.CharCount,
			ReadingTime: n.ReadingTime,
			CreatedAt:   n.CreatedAt.UTC().Format(time.RFC3339Nano),
			UpdatedAt:   n.UpdatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeSettings(raw string, defaults model.Settings) (model.Settings, error) {
	settings := defaults
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return model.Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	settings.FontSize = model.ClampFontSize(settings.FontSize)
	return settings, nil
}

// PersistDraft overwrites the draft slot. Callers debounce it.
func (s *Store) PersistDraft(ctx context.Context, text string) error {
	if err := s.kv.Set(ctx, KeyDraft, text); err != nil {
		return fmt.Errorf("failed to persist draft: %w", err)
	}
	return nil
}

// PersistSettings overwrites the settings record.
func (s *Store) PersistSettings(ctx context.Context, settings model.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.kv.Set(ctx, KeySettings, string(data)); err != nil {
		return fmt.Errorf("failed to persist settings: %w", err)
	}
	return nil
}

// PersistCurrentID records which note the draft belongs to. An empty id
// clears the association.
func (s *Store) PersistCurrentID(ctx context.Context, id string) error {
	var err error
	if id == "" {
		err = s.kv.Delete(ctx, KeyCurrentID)
	} else {
		err = s.kv.Set(ctx, KeyCurrentID, id)
	}
	if err != nil {
		return fmt.Errorf("failed to persist current note id: %w", err)
	}
	return nil
}

func (s *Store) persistNotes(ctx context.Context, notes []model.SavedNote) error {
	data, err := encodeNotes(notes)
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}
	if err := s.kv.Set(ctx, KeyNotes, data); err != nil {
		return fmt.Errorf("failed to persist notes: %w", err)
	}
	return nil
}

// SaveResult is the state after a save.
type SaveResult struct {
	Notes []model.SavedNote
	Note  model.SavedNote
	// ID becomes the draft's current note id.
	ID string
	// Saved is false when the text was blank and nothing changed.
	Saved bool
}

// Save creates or updates the note for the draft. A blank draft is a no-op.
// With a non-empty currentID the existing note keeps its id and creation
// time; otherwise a new note is created. The saved note moves to the front.
// The returned result reflects the save even if persisting it failed.
func (s *Store) Save(ctx context.Context, text, currentID string, existing []model.SavedNote) (SaveResult, error) {
	if strings.TrimSpace(text) == "" {
		return SaveResult{Notes: existing, ID: currentID}, nil
	}
	now := s.now()
	id := currentID
	if id == "" {
		id = s.newID()
	}
	createdAt := now
	if prev, ok := Find(existing, id); ok {
		createdAt = prev.CreatedAt
	}
	ws := stats.Compute(text)
	note := model.SavedNote{
		ID:          id,
		Title:       DeriveTitle(text),
		Content:     text,
		WordCount:   ws.Words,
		CharCount:   ws.Characters,
		ReadingTime: ws.ReadingTime,
		CreatedAt:   createdAt,
		UpdatedAt:   now,
	}

	updated := make([]model.SavedNote, 0, len(existing)+1)
	updated = append(updated, note)
	for _, n := range existing {
		if n.ID != id {
			updated = append(updated, n)
		}
	}

	result := SaveResult{Notes: updated, Note: note, ID: id, Saved: true}
	if err := s.persistNotes(ctx, updated); err != nil {
		return result, err
	}
	return result, nil
}

// DeleteResult is the state after a delete.
type DeleteResult struct {
	Notes     []model.SavedNote
	CurrentID string
}

// Delete removes the note with noteID. When it was the draft's current note
// the association is cleared in the result and in storage.
func (s *Store) Delete(ctx context.Context, noteID string, existing []model.SavedNote, currentID string) (DeleteResult, error) {
	updated := make([]model.SavedNote, 0, len(existing))
	for _, n := range existing {
		if n.ID != noteID {
			updated = append(updated, n)
		}
	}
	result := DeleteResult{Notes: updated, CurrentID: currentID}
	if currentID == noteID {
		result.CurrentID = ""
	}
	if err := s.persistNotes(ctx, updated); err != nil {
		return result, err
	}
	if result.CurrentID != currentID {
		if err := s.PersistCurrentID(ctx, ""); err != nil {
			return result, err
		}
	}
	return result, nil
}

// Load returns the note's content and id as the new draft and association.
func Load(note model.SavedNote) (content, id string) {
	return note.Content, note.ID
}

// Find returns the note with id.
func Find(notes []model.SavedNote, id string) (model.SavedNote, bool) {
	for _, n := range notes {
		if n.ID == id {
			return n, true
		}
	}
	return model.SavedNote{}, false
}

// DeriveTitle returns the first line of text cut to 50 characters, or
// UntitledTitle when that line is blank.
func DeriveTitle(text string) string {
	first, _, _ := strings.Cut(text, "\n")
	first = strings.TrimSuffix(first, "\r")
	if utf8.RuneCountInString(first) > maxTitleRunes {
		first = string([]rune(first)[:maxTitleRunes])
	}
	if strings.TrimSpace(first) == "" {
		return UntitledTitle
	}
	return first
}
