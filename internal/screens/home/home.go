// Package home is the dashboard: the section menu plus tour controls.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/circlet/internal/catalog"
	"github.com/abhisek/circlet/internal/screen"
	"github.com/abhisek/circlet/internal/screens/section"
	"github.com/abhisek/circlet/internal/ui/components"
	"github.com/abhisek/circlet/internal/ui/layout"
	"github.com/abhisek/circlet/internal/ui/theme"
	"github.com/abhisek/circlet/internal/usertype"
)

// OpenRouteMsg asks the app to show a section.
type OpenRouteMsg struct {
	Route string
}

// TourMsg asks the app to start the tour. Restart clears earlier progress
// first.
type TourMsg struct {
	Restart bool
}

// Status is what the dashboard shows about the member.
type Status struct {
	UserType      usertype.Type
	TourCompleted bool
}

// menuRoutes are the sections reachable from the dashboard, in menu order.
var menuRoutes = []string{
	catalog.RouteFeed,
	catalog.RouteCircles,
	catalog.RouteChat,
	catalog.RouteNetwork,
	catalog.RouteProfile,
	catalog.RouteDiscover,
}

// Screen is the dashboard.
type Screen struct {
	menu   components.Menu
	status Status
}

var _ screen.Screen = (*Screen)(nil)

func New(status Status) *Screen {
	items := make([]components.MenuItem, 0, len(menuRoutes)+3)
	for _, r := range menuRoutes {
		info, _ := section.Lookup(r)
		items = append(items, components.MenuItem{
			Label:  info.Title,
			Action: openRoute(r),
		})
	}

	tourHint := ""
	if status.TourCompleted {
		tourHint = "completed"
	}
	items = append(items,
		components.MenuItem{Label: "Take the tour", Hint: tourHint, Action: tour(false)},
		components.MenuItem{Label: "Restart tour", Action: tour(true)},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	)

	return &Screen{
		menu:   components.NewMenu(items),
		status: status,
	}
}

func openRoute(route string) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return OpenRouteMsg{Route: route} }
	}
}

func tour(restart bool) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return TourMsg{Restart: restart} }
	}
}

func (h *Screen) Init() tea.Cmd {
	return nil
}

func (h *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, theme.Title.Width(cw-6).Render("Welcome back"))
	if h.status.UserType != "" {
		sections = append(sections, theme.Subtitle.Width(cw-6).Render(
			"Joined as "+h.status.UserType.DisplayName()))
	}
	if !layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Width(cw-6).
			Render("Pick a section, or take the tour to see how Circlet works for you."))
	}
	sections = append(sections, strings.TrimRight(h.menu.View(), "\n"))

	return components.Centered(components.Card(strings.Join(sections, "\n\n"), cw), width, height)
}

func (h *Screen) Title() string {
	return "Home"
}

func (h *Screen) Route() string {
	return catalog.RouteDashboard
}
