package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/circlet/internal/ui/theme"
)

// Choice is a single-answer question with lettered options.
type Choice struct {
	Question    string
	Options     []string
	Selected    int
	Submitted   bool
	ChosenIndex int
}

// NewChoice creates a choice with the cursor on the first option.
func NewChoice(question string, options []string) Choice {
	return Choice{
		Question:    question,
		Options:     options,
		ChosenIndex: -1,
	}
}

// Update handles keyboard navigation and selection.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	if c.Submitted {
		return c, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter":
		c.Submitted = true
		c.ChosenIndex = c.Selected
	default:
		// Letter shortcuts select directly.
		if len(key) == 1 {
			if i := int(strings.ToLower(key)[0] - 'a'); i >= 0 && i < len(c.Options) {
				c.Selected = i
			}
		}
	}

	return c, nil
}

// Chosen returns the submitted option.
func (c Choice) Chosen() (string, bool) {
	if !c.Submitted || c.ChosenIndex < 0 || c.ChosenIndex >= len(c.Options) {
		return "", false
	}
	return c.Options[c.ChosenIndex], true
}

// View renders the question and its options.
func (c Choice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Question))
	b.WriteString("\n\n")

	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected && !c.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+i, opt)

		switch {
		case c.Submitted && i == c.ChosenIndex:
			line = theme.Chosen.Render(line)
		case c.Submitted:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)
		case i == c.Selected:
			line = theme.Selected.Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
