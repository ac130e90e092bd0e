// Package section renders the placeholder pages the tutorial points at.
package section

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/circlet/internal/catalog"
	"github.com/abhisek/circlet/internal/screen"
	"github.com/abhisek/circlet/internal/ui/components"
	"github.com/abhisek/circlet/internal/ui/layout"
	"github.com/abhisek/circlet/internal/ui/theme"
)

// Info describes one section.
type Info struct {
	Title string
	Blurb string
}

var sections = map[string]Info{
	catalog.RouteDashboard: {"Home", "Your dashboard."},
	catalog.RouteFeed:      {"Feed", "Posts, wins and questions from the people you follow."},
	catalog.RouteCircles:   {"Circles", "Small groups built around a goal, an industry or a city."},
	catalog.RouteChat:      {"Chat", "Direct conversations with your connections and circles."},
	catalog.RouteNetwork:   {"Network", "People you know and people you should meet."},
	catalog.RouteProfile:   {"Profile", "How the community sees you: your story, skills and asks."},
	catalog.RouteDiscover:  {"Discover", "Events, opportunities and members picked for you."},
}

// Lookup returns the section shown for route.
func Lookup(route string) (Info, bool) {
	info, ok := sections[route]
	return info, ok
}

// Screen is a placeholder page for one route.
type Screen struct {
	route string
	info  Info
}

var _ screen.Screen = (*Screen)(nil)

// New creates the screen for route. Unknown routes get a generic page.
func New(route string) *Screen {
	info, ok := Lookup(route)
	if !ok {
		info = Info{Title: strings.TrimPrefix(route, "/"), Blurb: "Nothing here yet."}
	}
	return &Screen{route: route, info: info}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return s, nil
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	content := theme.Title.Width(cw - 6).Render(s.info.Title) + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Width(cw-6).Render(s.info.Blurb) + "\n\n" +
		theme.Hint.Render("╌╌ Coming Soon ╌╌")
	return components.Centered(components.Card(content, cw), width, height)
}

func (s *Screen) Title() string {
	return s.info.Title
}

func (s *Screen) Route() string {
	return s.route
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
