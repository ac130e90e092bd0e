package home

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/circlet/internal/catalog"
	"github.com/abhisek/circlet/internal/usertype"
)

func selectItem(t *testing.T, h *Screen, index int) tea.Msg {
	t.Helper()
	for i := 0; i < index; i++ {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	return cmd()
}

func TestMenuOpensSections(t *testing.T) {
	for i, r := range menuRoutes {
		h := New(Status{UserType: usertype.Mentor})
		assert.Equal(t, OpenRouteMsg{Route: r}, selectItem(t, h, i), r)
	}
}

func TestTourItems(t *testing.T) {
	h := New(Status{})
	assert.Equal(t, TourMsg{Restart: false}, selectItem(t, h, len(menuRoutes)))

	h = New(Status{})
	assert.Equal(t, TourMsg{Restart: true}, selectItem(t, h, len(menuRoutes)+1))
}

func TestViewShowsStatus(t *testing.T) {
	h := New(Status{UserType: usertype.StudentEntrepreneur, TourCompleted: true})
	out := h.View(80, 30)
	assert.Contains(t, out, "Take the tour")
	assert.Contains(t, out, "completed")
	assert.Equal(t, catalog.RouteDashboard, h.Route())
}
