package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	New       key.Binding
	Save      key.Binding
	Notes     key.Binding
	Export    key.Binding
	Import    key.Binding
	Copy      key.Binding
	DarkMode  key.Binding
	FocusMode key.Binding
	AutoSave  key.Binding
	FontUp    key.Binding
	FontDown  key.Binding
	Quit      key.Binding
	Load      key.Binding
	Delete    key.Binding
	Back      key.Binding
	Submit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		New:       key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Notes:     key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "notes")),
		Export:    key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "export")),
		Import:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "import")),
		Copy:      key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
		DarkMode:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
		FocusMode: key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "focus")),
		AutoSave:  key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "autosave")),
		FontUp:    key.NewBinding(key.WithKeys("ctrl+up"), key.WithHelp("ctrl+↑", "font+")),
		FontDown:  key.NewBinding(key.WithKeys("ctrl+down"), key.WithHelp("ctrl+↓", "font-")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
		Load:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Delete:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Back:      key.NewBinding(key.WithKeys("esc", "ctrl+o"), key.WithHelp("esc", "back")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "import")),
	}
}

func helpLine(bindings ...key.Binding) string {
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += " · "
		}
		h := b.Help()
		out += h.Key + " " + h.Desc
	}
	return out
}
