// Package tui provides the Bubble Tea writing interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/verte-zerg/tuiwrite/internal/debounce"
	"github.com/verte-zerg/tuiwrite/internal/model"
	"github.com/verte-zerg/tuiwrite/internal/notes"
	"github.com/verte-zerg/tuiwrite/internal/stats"
	"github.com/verte-zerg/tuiwrite/internal/textfile"
)

// DefaultAutoSaveDelay is the pause after the last edit before the draft is persisted.
const DefaultAutoSaveDelay = time.Second

const copiedFor = 2 * time.Second

type mode int

const (
	modeEdit mode = iota
	modeNotes
	modeImport
)

var clipboardWrite = clipboard.WriteAll

type copyResultMsg struct {
	err error
}

type copyResetMsg struct {
	gen int
}

type importResultMsg struct {
	path string
	text string
	err  error
}

// autosaver persists the latest draft text once editing pauses.
type autosaver struct {
	mu      sync.Mutex
	text    string
	d       *debounce.Debouncer
	persist func(string)
}

func newAutosaver(delay time.Duration, persist func(string)) *autosaver {
	a := &autosaver{persist: persist}
	a.d = debounce.New(delay, func() {
		a.mu.Lock()
		text := a.text
		a.mu.Unlock()
		a.persist(text)
	})
	return a
}

func (a *autosaver) schedule(text string) {
	a.mu.Lock()
	a.text = text
	a.mu.Unlock()
	a.d.Trigger()
}

// Model implements the Bubble Tea writing UI.
type Model struct {
	config model.EditorConfig
	notes  *notes.Store
	logger *zap.Logger
	now    func() time.Time
	keys   keyMap

	editor    textarea.Model
	noteTable table.Model
	pathInput textinput.Model
	autosave  *autosaver

	width  int
	height int
	mode   mode

	text       string
	shown      string
	stats      model.WritingStats
	savedNotes []model.SavedNote
	currentID  string
	settings   model.Settings

	status  string
	copied  bool
	copyGen int
}

// NewModel constructs a writing TUI model from the restored snapshot.
func NewModel(cfg model.EditorConfig, st *notes.Store, snap model.Snapshot, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.AutoSaveDelay <= 0 {
		cfg.AutoSaveDelay = DefaultAutoSaveDelay
	}
	m := &Model{
		config:     cfg,
		notes:      st,
		logger:     logger,
		now:        time.Now,
		keys:       defaultKeyMap(),
		savedNotes: snap.Notes,
		currentID:  snap.CurrentNoteID,
		settings:   snap.Settings,
	}
	m.autosave = newAutosaver(cfg.AutoSaveDelay, m.persistDraft)
	m.initEditor()
	m.initNoteTable()
	m.initPathInput()
	m.applyTheme()
	m.setText(snap.Draft)
	return m
}

func (m *Model) initEditor() {
	m.editor = textarea.New()
	m.editor.Placeholder = "Start writing…"
	m.editor.ShowLineNumbers = false
	m.editor.Prompt = ""
	m.editor.CharLimit = 0
	m.editor.MaxHeight = 0
	m.editor.EndOfBufferCharacter = ' '
	m.editor.Focus()
}

func (m *Model) initNoteTable() {
	m.noteTable = table.New(
		table.WithColumns(noteColumns(60)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	m.refreshNoteRows()
}

func (m *Model) initPathInput() {
	m.pathInput = textinput.New()
	m.pathInput.Placeholder = "path/to/file.txt or .md"
	m.pathInput.Prompt = "Import: "
	m.pathInput.CharLimit = 4096
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// Close persists any pending autosave.
func (m *Model) Close() {
	if m.settings.AutoSave {
		m.autosave.d.Flush()
		return
	}
	m.autosave.d.Stop()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil
	case copyResultMsg:
		return m, m.handleCopyResult(msg)
	case copyResetMsg:
		if msg.gen == m.copyGen {
			m.copied = false
		}
		return m, nil
	case importResultMsg:
		m.handleImportResult(msg)
		return m, nil
	case tea.KeyMsg:
		m.status = ""
		switch m.mode {
		case modeNotes:
			return m, m.updateNotes(msg)
		case modeImport:
			return m, m.updateImport(msg)
		default:
			return m, m.updateEdit(msg)
		}
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *Model) updateEdit(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return tea.Quit
	case key.Matches(msg, m.keys.New):
		m.newDraft()
		return nil
	case key.Matches(msg, m.keys.Save):
		m.saveNote()
		return nil
	case key.Matches(msg, m.keys.Notes):
		m.openNotes()
		return nil
	case key.Matches(msg, m.keys.Export):
		m.exportDraft()
		return nil
	case key.Matches(msg, m.keys.Import):
		m.mode = modeImport
		m.pathInput.Reset()
		m.editor.Blur()
		return m.pathInput.Focus()
	case key.Matches(msg, m.keys.Copy):
		return m.copyDraft()
	case key.Matches(msg, m.keys.DarkMode):
		m.updateSettings(func(s *model.Settings) { s.DarkMode = !s.DarkMode })
		return nil
	case key.Matches(msg, m.keys.FocusMode):
		m.updateSettings(func(s *model.Settings) { s.FocusMode = !s.FocusMode })
		return nil
	case key.Matches(msg, m.keys.AutoSave):
		m.toggleAutoSave()
		return nil
	case key.Matches(msg, m.keys.FontUp):
		m.updateSettings(func(s *model.Settings) { s.FontSize = model.ClampFontSize(s.FontSize + 1) })
		return nil
	case key.Matches(msg, m.keys.FontDown):
		m.updateSettings(func(s *model.Settings) { s.FontSize = model.ClampFontSize(s.FontSize - 1) })
		return nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if value := m.editor.Value(); value != m.shown {
		m.shown = value
		m.textChanged(value)
	}
	return cmd
}

func (m *Model) updateNotes(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.Close()
		return tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.closeNotes()
		return nil
	case key.Matches(msg, m.keys.Load):
		if note, ok := m.selectedNote(); ok {
			m.loadNote(note)
		}
		m.closeNotes()
		return nil
	case key.Matches(msg, m.keys.Delete):
		if note, ok := m.selectedNote(); ok {
			m.deleteNote(note.ID)
		}
		return nil
	}
	var cmd tea.Cmd
	m.noteTable, cmd = m.noteTable.Update(msg)
	return cmd
}

func (m *Model) updateImport(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.Close()
		return tea.Quit
	case msg.Type == tea.KeyEsc:
		m.closeImport()
		return nil
	case key.Matches(msg, m.keys.Submit):
		path := m.pathInput.Value()
		m.closeImport()
		if path == "" {
			return nil
		}
		return importFile(path)
	}
	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return cmd
}

func (m *Model) closeImport() {
	m.mode = modeEdit
	m.pathInput.Blur()
	m.editor.Focus()
}

func (m *Model) openNotes() {
	m.refreshNoteRows()
	m.mode = modeNotes
	m.editor.Blur()
	m.noteTable.Focus()
}

func (m *Model) closeNotes() {
	m.mode = modeEdit
	m.noteTable.Blur()
	m.editor.Focus()
}

// setText replaces the editor content without scheduling an autosave.
// The draft keeps text verbatim until the user edits it, even where the
// textarea renders it differently (tabs expand to spaces).
func (m *Model) setText(text string) {
	m.editor.SetValue(text)
	m.shown = m.editor.Value()
	m.text = text
	m.stats = stats.Compute(text)
}

func (m *Model) textChanged(text string) {
	m.text = text
	m.stats = stats.Compute(text)
	if m.settings.AutoSave {
		m.autosave.schedule(text)
	}
}

func (m *Model) replaceText(text string) {
	m.setText(text)
	if m.settings.AutoSave {
		m.autosave.schedule(m.text)
	}
}

func (m *Model) persistDraft(text string) {
	if err := m.notes.PersistDraft(context.Background(), text); err != nil {
		m.logger.Warn("autosave failed", zap.Error(err))
		return
	}
	m.logger.Debug("draft autosaved", zap.Int("chars", len(text)))
}

func (m *Model) setCurrentID(id string) {
	m.currentID = id
	if err := m.notes.PersistCurrentID(context.Background(), id); err != nil {
		m.logger.Warn("failed to persist current note", zap.Error(err))
	}
}

func (m *Model) newDraft() {
	m.replaceText("")
	m.setCurrentID("")
	m.status = "New draft"
}

func (m *Model) saveNote() {
	res, err := m.notes.Save(context.Background(), m.text, m.currentID, m.savedNotes)
	if !res.Saved {
		return
	}
	m.savedNotes = res.Notes
	m.setCurrentID(res.ID)
	m.refreshNoteRows()
	if err != nil {
		m.logger.Error("failed to save note", zap.String("id", res.ID), zap.Error(err))
		m.status = "Save failed"
		return
	}
	m.logger.Info("note saved", zap.String("id", res.ID), zap.Int("words", res.Note.WordCount))
	m.status = fmt.Sprintf("Saved %q", res.Note.Title)
}

func (m *Model) loadNote(note model.SavedNote) {
	content, id := notes.Load(note)
	m.replaceText(content)
	m.setCurrentID(id)
	m.status = fmt.Sprintf("Opened %q", note.Title)
}

func (m *Model) deleteNote(id string) {
	res, err := m.notes.Delete(context.Background(), id, m.savedNotes, m.currentID)
	m.savedNotes = res.Notes
	m.currentID = res.CurrentID
	m.refreshNoteRows()
	if err != nil {
		m.logger.Error("failed to delete note", zap.String("id", id), zap.Error(err))
		m.status = "Delete failed"
		return
	}
	m.logger.Info("note deleted", zap.String("id", id))
	m.status = "Note deleted"
}

func (m *Model) exportDraft() {
	path, err := textfile.Export(m.config.ExportDir, m.text, m.now())
	if errors.Is(err, textfile.ErrEmptyText) {
		return
	}
	if err != nil {
		m.logger.Error("export failed", zap.Error(err))
		m.status = "Export failed"
		return
	}
	m.logger.Info("draft exported", zap.String("path", path))
	m.status = "Exported to " + path
}

func (m *Model) copyDraft() tea.Cmd {
	if m.stats.Words == 0 {
		return nil
	}
	text := m.text
	return func() tea.Msg {
		return copyResultMsg{err: clipboardWrite(text)}
	}
}

func (m *Model) handleCopyResult(msg copyResultMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Warn("failed to copy to clipboard", zap.Error(msg.err))
		return nil
	}
	m.copied = true
	m.copyGen++
	gen := m.copyGen
	return tea.Tick(copiedFor, func(time.Time) tea.Msg {
		return copyResetMsg{gen: gen}
	})
}

func importFile(path string) tea.Cmd {
	return func() tea.Msg {
		text, err := textfile.Import(path)
		return importResultMsg{path: path, text: text, err: err}
	}
}

func (m *Model) handleImportResult(msg importResultMsg) {
	if msg.err != nil {
		m.logger.Warn("import failed", zap.String("path", msg.path), zap.Error(msg.err))
		m.status = fmt.Sprintf("Import failed: %v", msg.err)
		return
	}
	m.replaceText(msg.text)
	// Imported text is a new document, so it must not overwrite the previous note on save.
	m.setCurrentID("")
	m.status = "Imported " + msg.path
}

func (m *Model) updateSettings(change func(*model.Settings)) {
	change(&m.settings)
	if err := m.notes.PersistSettings(context.Background(), m.settings); err != nil {
		m.logger.Warn("failed to persist settings", zap.Error(err))
	}
	m.applyTheme()
	m.layout()
}

func (m *Model) toggleAutoSave() {
	m.updateSettings(func(s *model.Settings) { s.AutoSave = !s.AutoSave })
	if !m.settings.AutoSave {
		m.autosave.d.Stop()
		return
	}
	m.autosave.schedule(m.text)
}

func (m *Model) selectedNote() (model.SavedNote, bool) {
	idx := m.noteTable.Cursor()
	if idx < 0 || idx >= len(m.savedNotes) {
		return model.SavedNote{}, false
	}
	return m.savedNotes[idx], true
}

func (m *Model) currentNote() (model.SavedNote, bool) {
	if m.currentID == "" {
		return model.SavedNote{}, false
	}
	return notes.Find(m.savedNotes, m.currentID)
}
