package components

import (
	"strings"

	"github.com/abhisek/circlet/internal/ui/theme"
)

// KeyButton is a key-labelled action shown in the tutorial overlay.
type KeyButton struct {
	Key    string
	Label  string
	Active bool
}

// View renders the button.
func (b KeyButton) View() string {
	label := "[" + b.Key + "] " + b.Label
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}

// ButtonRow renders buttons separated by a space.
func ButtonRow(buttons ...KeyButton) string {
	parts := make([]string, len(buttons))
	for i, b := range buttons {
		parts[i] = b.View()
	}
	return strings.Join(parts, " ")
}
