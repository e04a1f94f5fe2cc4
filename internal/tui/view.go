package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuiwrite/internal/model"
	"github.com/verte-zerg/tuiwrite/internal/stats"
)

type theme struct {
	text       lipgloss.Color
	muted      lipgloss.Color
	accent     lipgloss.Color
	background lipgloss.Color
}

var (
	lightTheme = theme{
		text:       lipgloss.Color("#1F1F1F"),
		muted:      lipgloss.Color("#6E6E6E"),
		accent:     lipgloss.Color("#A67C26"),
		background: lipgloss.Color("#F7F5F0"),
	}
	darkTheme = theme{
		text:       lipgloss.Color("#F0F0F0"),
		muted:      lipgloss.Color("#8C8C8C"),
		accent:     lipgloss.Color("#C89A3A"),
		background: lipgloss.Color("#1B1B1B"),
	}
)

const (
	minEditorWidth = 20
	titleColWidth  = 40
)

func (m *Model) theme() theme {
	if m.settings.DarkMode {
		return darkTheme
	}
	return lightTheme
}

func (m *Model) applyTheme() {
	t := m.theme()
	base := lipgloss.NewStyle().Foreground(t.text).Background(t.background)
	m.editor.FocusedStyle.Base = base
	m.editor.FocusedStyle.Text = base
	m.editor.FocusedStyle.CursorLine = base
	m.editor.FocusedStyle.EndOfBuffer = base
	m.editor.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(t.muted).Background(t.background)
	m.editor.BlurredStyle = m.editor.FocusedStyle

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.muted).
		BorderBottom(true).
		Foreground(t.muted).
		Bold(false)
	styles.Selected = styles.Selected.Foreground(t.accent).Bold(true)
	styles.Cell = styles.Cell.Foreground(t.text)
	m.noteTable.SetStyles(styles)
}

// chromeHeight is the number of lines used around the editor body.
func (m *Model) chromeHeight() int {
	if m.settings.FocusMode {
		if m.mode == modeImport {
			return 1
		}
		return 0
	}
	return 3
}

func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	bodyHeight := m.height - m.chromeHeight()
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	width := editorWidth(m.width, m.settings.FontSize)
	m.editor.SetWidth(width)
	m.editor.SetHeight(bodyHeight)
	m.noteTable.SetColumns(noteColumns(width))
	m.noteTable.SetWidth(width)
	m.noteTable.SetHeight(bodyHeight)
	m.pathInput.Width = width - lipgloss.Width(m.pathInput.Prompt) - 1
}

// editorWidth scales the writing column: larger font sizes give fewer columns.
func editorWidth(termWidth, fontSize int) int {
	if fontSize <= 0 {
		fontSize = model.DefaultFontSize
	}
	base := int(float64(termWidth) * 0.70)
	width := base * model.DefaultFontSize / fontSize
	if width > termWidth-2 {
		width = termWidth - 2
	}
	if width < minEditorWidth {
		width = minEditorWidth
	}
	return width
}

func noteColumns(width int) []table.Column {
	fixed := 8 + 6 + 16 + 6
	title := width - fixed
	if title < 10 {
		title = 10
	}
	return []table.Column{
		{Title: "Title", Width: title},
		{Title: "Words", Width: 8},
		{Title: "Read", Width: 6},
		{Title: "Updated", Width: 16},
	}
}

func (m *Model) refreshNoteRows() {
	rows := make([]table.Row, 0, len(m.savedNotes))
	for _, n := range m.savedNotes {
		rows = append(rows, table.Row{
			stats.Truncate(n.Title, titleColWidth),
			strconv.Itoa(n.WordCount),
			fmt.Sprintf("%dm", n.ReadingTime),
			n.UpdatedAt.Local().Format(stats.DateLayout),
		})
	}
	m.noteTable.SetRows(rows)
	if m.noteTable.Cursor() >= len(rows) && len(rows) > 0 {
		m.noteTable.SetCursor(len(rows) - 1)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	body := m.editor.View()
	if m.mode == modeNotes {
		body = m.renderNotes()
	}
	if m.width == 0 || m.height == 0 {
		return body
	}
	t := m.theme()
	bg := lipgloss.WithWhitespaceBackground(t.background)
	bodyHeight := m.height - m.chromeHeight()
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	lines := make([]string, 0, 4)
	if !m.settings.FocusMode {
		lines = append(lines, lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.renderHeader(), bg))
	}
	lines = append(lines, lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Top, body, bg))
	if m.mode == modeImport {
		lines = append(lines, lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.pathInput.View(), bg))
	} else if !m.settings.FocusMode {
		lines = append(lines, lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.renderStatus(), bg))
	}
	if !m.settings.FocusMode {
		lines = append(lines, lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.renderFooter(), bg))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderNotes() string {
	if len(m.savedNotes) == 0 {
		return m.mutedStyle().Render("No saved notes yet. Press esc to go back.")
	}
	return m.noteTable.View()
}

func (m *Model) mutedStyle() lipgloss.Style {
	t := m.theme()
	return lipgloss.NewStyle().Foreground(t.muted).Background(t.background)
}

func (m *Model) renderHeader() string {
	t := m.theme()
	title := "New draft"
	if note, ok := m.currentNote(); ok {
		title = fmt.Sprintf("%s · updated %s", stats.Truncate(note.Title, titleColWidth), note.UpdatedAt.Local().Format(stats.DateLayout))
	}
	style := lipgloss.NewStyle().Foreground(t.accent).Background(t.background)
	return style.Render(title)
}

func (m *Model) renderStatus() string {
	if m.status != "" {
		return m.mutedStyle().Render(m.status)
	}
	if m.mode == modeNotes {
		return m.mutedStyle().Render(helpLine(m.keys.Load, m.keys.Delete, m.keys.Back))
	}
	return m.mutedStyle().Render(helpLine(
		m.keys.Save, m.keys.Notes, m.keys.New, m.keys.Export, m.keys.Import,
		m.keys.Copy, m.keys.DarkMode, m.keys.FocusMode, m.keys.AutoSave,
	))
}

func (m *Model) renderFooter() string {
	s := m.stats
	segments := []string{
		fmt.Sprintf("%d words", s.Words),
		fmt.Sprintf("%d chars", s.Characters),
		fmt.Sprintf("%d no spaces", s.CharactersNoSpaces),
		fmt.Sprintf("%d sentences", s.Sentences),
		fmt.Sprintf("%d paragraphs", s.Paragraphs),
		fmt.Sprintf("%d min read", s.ReadingTime),
	}
	if m.settings.AutoSave {
		segments = append(segments, "autosave on")
	} else {
		segments = append(segments, "autosave off")
	}
	segments = append(segments, fmt.Sprintf("font %d", m.settings.FontSize))
	if m.copied {
		segments = append(segments, "Copied!")
	}
	return m.mutedStyle().Render(strings.Join(segments, "  "))
}
