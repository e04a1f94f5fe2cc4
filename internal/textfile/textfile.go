// Package textfile imports and exports plain-text documents.
package textfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/tuiwrite/internal/model"
)

// ExportTimeLayout is embedded in export file names.
const ExportTimeLayout = "2006-01-02T15-04-05"

var (
	// ErrUnsupportedExtension is returned when importing anything but .txt or .md.
	ErrUnsupportedExtension = errors.New("only .txt and .md files can be imported")
	// ErrEmptyText is returned when exporting blank text.
	ErrEmptyText = errors.New("nothing to export")
)

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Import reads a .txt or .md file in full. Line endings are converted to \n.
func Import(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
	default:
		return "", fmt.Errorf("failed to import %s: %w", path, ErrUnsupportedExtension)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return newlines.Replace(string(data)), nil
}

// ExportName returns the file name for a draft exported at now.
func ExportName(now time.Time) string {
	return "writing-" + now.Format(ExportTimeLayout) + ".txt"
}

// Export writes text to a timestamped file in dir and returns its path.
func Export(dir, text string, now time.Time) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	path := filepath.Join(dir, ExportName(now))
	if err := writeFileAtomic(path, []byte(text)); err != nil {
		return "", err
	}
	return path, nil
}

type frontMatter struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Created     string `yaml:"created"`
	Updated     string `yaml:"updated"`
	Words       int    `yaml:"words"`
	ReadingTime int    `yaml:"reading_time"`
}

// ExportMarkdown writes a saved note as markdown with YAML front matter.
func ExportMarkdown(dir string, note model.SavedNote) (string, error) {
	if strings.TrimSpace(note.Content) == "" {
		return "", ErrEmptyText
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	meta := frontMatter{
		ID:          note.ID,
		Title:       note.Title,
		Created:     note.CreatedAt.UTC().Format(time.RFC3339),
		Updated:     note.UpdatedAt.UTC().Format(time.RFC3339),
		Words:       note.WordCount,
		ReadingTime: note.ReadingTime,
	}
	if err := encoder.Encode(meta); err != nil {
		return "", fmt.Errorf("failed to encode front matter: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("failed to encode front matter: %w", err)
	}
	buf.WriteString("---\n")
	buf.WriteString(note.Content)
	if !strings.HasSuffix(note.Content, "\n") {
		buf.WriteByte('\n')
	}

	path := filepath.Join(dir, Slug(note.Title, note.ID)+".md")
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}

// Slug builds a file-name-safe name from a title, falling back to id.
func Slug(title, id string) string {
	slug := strings.Trim(slugUnsafe.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		slug = "note"
	}
	if len(id) >= 8 {
		id = id[:8]
	}
	if id == "" {
		return slug
	}
	return slug + "-" + id
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "export-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close export: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}
