package layout

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(MinWidth-1, MinHeight))
	assert.True(t, IsTooSmall(MinWidth, MinHeight-1))
	assert.False(t, IsTooSmall(MinWidth, MinHeight))
}

func TestContentHeight(t *testing.T) {
	assert.Equal(t, 24-HeaderHeight-FooterHeight, ContentHeight(24))
	assert.Equal(t, 0, ContentHeight(2))
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Network", "Mentor", 80)
	assert.Contains(t, h, "Circlet")
	assert.Contains(t, h, "Network")
	assert.Contains(t, h, "Mentor")
	assert.Equal(t, HeaderHeight, lipgloss.Height(h))

	assert.NotContains(t, RenderHeader("Home", "", 80), "●")
}

func TestRenderFrame(t *testing.T) {
	header := RenderHeader("Home", "", 60)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 60)
	frame := RenderFrame(header, "hello", footer, 60, 20)
	assert.Equal(t, 20, lipgloss.Height(frame))
	assert.Contains(t, frame, "Back")
}
