// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection.
	Select key.Binding

	// Cancel cancels the current operation.
	Cancel key.Binding

	// Edit opens the input for the selected field or item.
	Edit key.Binding

	// RateGood answers the selected rated item as good.
	RateGood key.Binding

	// RateFair answers the selected rated item as fair.
	RateFair key.Binding

	// RateReplace answers the selected rated item as needs replacement.
	RateReplace key.Binding

	// Clear removes the answer of the selected item.
	Clear key.Binding

	// Format cycles the report format.
	Format key.Binding

	// Generate renders the report.
	Generate key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter", "edit"),
		),
		RateGood: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "good"),
		),
		RateFair: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "fair"),
		),
		RateReplace: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "replace"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "clear"),
		),
		Format: key.NewBinding(
			key.WithKeys("f", "tab"),
			key.WithHelp("f", "format"),
		),
		Generate: key.NewBinding(
			key.WithKeys("g", "enter"),
			key.WithHelp("g", "generate"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// ChecklistHelp returns keybindings for the checklist view.
func (k *KeyMap) ChecklistHelp() []key.Binding {
	return []key.Binding{k.RateGood, k.RateFair, k.RateReplace, k.Edit, k.Clear, k.Back}
}

// ReportHelp returns keybindings for the report view.
func (k *KeyMap) ReportHelp() []key.Binding {
	return []key.Binding{k.Format, k.Generate, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.RateGood, k.RateFair, k.RateReplace, k.Clear},
		{k.Edit, k.Back, k.Cancel},
		{k.Format, k.Generate},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
