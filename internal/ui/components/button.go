package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathquiz/internal/ui/theme"
)

// Button is a labelled action with its shortcut key shown next to it.
type Button struct {
	Label    string
	Shortcut string
	Active   bool
}

// NewButton creates a new button.
func NewButton(label, shortcut string, active bool) Button {
	return Button{Label: label, Shortcut: shortcut, Active: active}
}

// View renders the button.
func (b Button) View() string {
	label := b.Label
	if b.Shortcut != "" {
		label += " [" + b.Shortcut + "]"
	}
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}

// ButtonRow renders buttons side by side.
func ButtonRow(buttons ...Button) string {
	views := make([]string, len(buttons))
	for i, b := range buttons {
		views[i] = b.View()
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, views...)
}
