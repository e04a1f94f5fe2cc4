package stats

import (
	"fmt"
	"io"
	"strconv"

	"github.com/verte-zerg/tuiwrite/internal/model"
)

// DateLayout is the day/month/year display format for note timestamps.
const DateLayout = "02/01/2006 15:04"

const listTitleWidth = 40

// RenderStats prints a metric table for a single text.
func RenderStats(w io.Writer, s model.WritingStats) error {
	rows := [][]string{
		{"Words", strconv.Itoa(s.Words)},
		{"Characters", strconv.Itoa(s.Characters)},
		{"Characters (no spaces)", strconv.Itoa(s.CharactersNoSpaces)},
		{"Sentences", strconv.Itoa(s.Sentences)},
		{"Paragraphs", strconv.Itoa(s.Paragraphs)},
		{"Reading time", fmt.Sprintf("%d min", s.ReadingTime)},
	}
	return writeLines(w, formatTable([]string{"Metric", "Value"}, rows, map[int]bool{1: true}))
}

// RenderNotes prints saved notes in stored order, most recently saved first.
func RenderNotes(w io.Writer, notes []model.SavedNote) error {
	if len(notes) == 0 {
		_, err := fmt.Fprintln(w, "No saved notes.")
		return err
	}
	rows := make([][]string, 0, len(notes))
	for _, n := range notes {
		rows = append(rows, []string{
			n.ID,
			Truncate(n.Title, listTitleWidth),
			strconv.Itoa(n.WordCount),
			fmt.Sprintf("%d min", n.ReadingTime),
			n.UpdatedAt.Local().Format(DateLayout),
		})
	}
	headers := []string{"ID", "Title", "Words", "Read", "Updated"}
	return writeLines(w, formatTable(headers, rows, map[int]bool{2: true, 3: true}))
}

// RenderNotesSummary prints aggregate figures for the saved notes.
func RenderNotesSummary(w io.Writer, notes []model.SavedNote) error {
	if len(notes) == 0 {
		return nil
	}
	totalWords := 0
	counts := make([]float64, 0, len(notes))
	// Oldest first so the sparkline reads left to right.
	for i := len(notes) - 1; i >= 0; i-- {
		totalWords += notes[i].WordCount
		counts = append(counts, float64(notes[i].WordCount))
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Notes: %d\n", len(notes)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total words: %d\n", totalWords); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg words: %.1f\n", float64(totalWords)/float64(len(notes))); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total reading time: %d min\n", ReadingTimeFor(totalWords)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Words per note: %s\n", Sparkline(counts))
	return err
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
