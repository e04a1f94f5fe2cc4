// Package stats contains text statistics calculations and reporting.
package stats

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/tuiwrite/internal/model"
)

// WordsPerMinute is the assumed reading speed.
const WordsPerMinute = 200

const sparkChars = " .:-=+*#%@"

var (
	paragraphSep = regexp.MustCompile(`\n\s*\n`)
	sentenceSep  = regexp.MustCompile(`[.!?]+`)
)

// Compute derives writing statistics from text. Whitespace-only text yields
// the zero value.
func Compute(text string) model.WritingStats {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return model.WritingStats{}
	}
	words := len(strings.Fields(trimmed))
	return model.WritingStats{
		Words:              words,
		Characters:         utf8.RuneCountInString(text),
		CharactersNoSpaces: countNonSpace(text),
		Paragraphs:         countNonBlank(paragraphSep.Split(trimmed, -1)),
		Sentences:          countNonBlank(sentenceSep.Split(trimmed, -1)),
		ReadingTime:        ReadingTimeFor(words),
	}
}

// ReadingTimeFor returns the reading time in whole minutes, rounded up.
func ReadingTimeFor(words int) int {
	if words <= 0 {
		return 0
	}
	return (words + WordsPerMinute - 1) / WordsPerMinute
}

func countNonSpace(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

func countNonBlank(parts []string) int {
	n := 0
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			n++
		}
	}
	return n
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
