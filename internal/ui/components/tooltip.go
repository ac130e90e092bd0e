package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/circlet/internal/ui/theme"
)

// Tooltip alignments. They match the values stored on tutorial steps.
const (
	AlignTop    = "top"
	AlignBottom = "bottom"
	AlignLeft   = "left"
	AlignRight  = "right"
	AlignCenter = "center"
)

// Tooltip renders one tutorial step as an overlay box.
type Tooltip struct {
	FlowTitle   string
	Title       string
	Description string
	Message     string
	Index       int
	Total       int
	Interactive bool
	// AwaitHint tells the member what to do on an interactive step.
	AwaitHint string
}

// Width returns the box width for the alignment within a frame width.
func (t Tooltip) Width(align string, frameWidth int) int {
	switch align {
	case AlignLeft, AlignRight:
		return min(max(frameWidth/3, 24), 40)
	default:
		return min(frameWidth-4, 64)
	}
}

// View renders the box at width w.
func (t Tooltip) View(w int) string {
	inner := max(w-4, 10) // border + padding

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(t.FlowTitle))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(t.Title))
	b.WriteString("\n\n")

	body := lipgloss.NewStyle().Foreground(theme.Text).Width(inner)
	b.WriteString(body.Render(t.Description))
	if t.Message != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Width(inner).Render(t.Message))
	}
	b.WriteString("\n\n")
	b.WriteString(StepProgress(t.Index, t.Total, inner).View())
	b.WriteString("\n")

	next := KeyButton{Key: "n", Label: "Next", Active: !t.Interactive}
	if t.Index == t.Total-1 {
		next.Label = "Finish"
	}
	buttons := []KeyButton{
		{Key: "p", Label: "Back", Active: false},
		next,
		{Key: "s", Label: "Skip", Active: false},
	}
	if t.Index == 0 {
		buttons = buttons[1:]
	}
	b.WriteString(ButtonRow(buttons...))
	if t.Interactive && t.AwaitHint != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Width(inner).Render(t.AwaitHint))
	}

	return theme.Tooltip.Width(w - 2).Render(b.String())
}

// Compose lays box out against the screen content for align. render draws
// the underlying screen into the space that remains. A center box replaces
// the content.
func Compose(align, box string, width, height int, render func(w, h int) string) string {
	bw, bh := lipgloss.Width(box), lipgloss.Height(box)

	switch align {
	case AlignTop:
		return box + "\n" + render(width, max(height-bh-1, 0))
	case AlignBottom:
		return render(width, max(height-bh-1, 0)) + "\n" + box
	case AlignLeft:
		return lipgloss.JoinHorizontal(lipgloss.Top, box, " ", render(max(width-bw-1, 0), height))
	case AlignRight:
		return lipgloss.JoinHorizontal(lipgloss.Top, render(max(width-bw-1, 0), height), " ", box)
	default:
		return Centered(box, width, height)
	}
}
