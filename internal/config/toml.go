// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/tuiwrite/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Editor EditorConfig `toml:"editor"`
}

// EditorConfig maps editor-related settings.
type EditorConfig struct {
	AutoSaveDelayMs *int    `toml:"autosave-delay"`
	ExportDir       *string `toml:"export-dir"`
	AutoSave        *bool   `toml:"autosave"`
	DarkMode        *bool   `toml:"dark-mode"`
	FontSize        *int    `toml:"font-size"`
	FocusMode       *bool   `toml:"focus-mode"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// InitialSettings overlays file values on the default settings. It seeds
// settings only when nothing has been stored yet.
func (c FileConfig) InitialSettings() model.Settings {
	s := model.DefaultSettings()
	if c.Editor.AutoSave != nil {
		s.AutoSave = *c.Editor.AutoSave
	}
	if c.Editor.DarkMode != nil {
		s.DarkMode = *c.Editor.DarkMode
	}
	if c.Editor.FontSize != nil {
		s.FontSize = model.ClampFontSize(*c.Editor.FontSize)
	}
	if c.Editor.FocusMode != nil {
		s.FocusMode = *c.Editor.FocusMode
	}
	return s
}
