// Package onboarding is the questionnaire shown before a user type is
// known. It asks three questions and hands the answers back to the app.
package onboarding

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/circlet/internal/classifier"
	"github.com/abhisek/circlet/internal/screen"
	"github.com/abhisek/circlet/internal/ui/components"
	"github.com/abhisek/circlet/internal/ui/layout"
	"github.com/abhisek/circlet/internal/ui/theme"
)

// Route of the onboarding screen.
const Route = "/onboarding"

// UsageOptions is the fixed vocabulary for the first question.
var UsageOptions = []string{
	"Start Your Business",
	"Scale Your Business",
	"Network With Entrepreneurs",
	"Find Co-Founder",
	"Find Mentors",
	"Find Investors",
	"Sell a Skill",
	"Make Investments",
	"Share Knowledge",
	"Be Part of the Community",
	"I'm a Student",
	"Student, Start Your Business",
}

// IndustryOptions is the vocabulary for the second question.
var IndustryOptions = []string{
	"Technology",
	"Finance & Investing",
	"Education & Coaching",
	"Creative & Media",
	"Community & Nonprofit",
	"Other",
}

// CompletedMsg carries the answers once the last question is submitted.
type CompletedMsg struct {
	Answers classifier.Answers
}

type stage int

const (
	stageUsage stage = iota
	stageIndustry
	stageLocation
	stageDone
)

// Screen is the onboarding questionnaire.
type Screen struct {
	stage    stage
	usage    components.Choice
	industry components.Choice
	location components.TextInput
}

var _ screen.Screen = (*Screen)(nil)

func New() *Screen {
	return &Screen{
		usage:    components.NewChoice("What brings you to Circlet?", UsageOptions),
		industry: components.NewChoice("Which industry interests you most?", IndustryOptions),
		location: components.NewTextInput("City, Country", 64),
	}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch s.stage {
	case stageUsage:
		s.usage, cmd = s.usage.Update(msg)
		if s.usage.Submitted {
			s.stage = stageIndustry
		}
	case stageIndustry:
		s.industry, cmd = s.industry.Update(msg)
		if s.industry.Submitted {
			s.stage = stageLocation
			cmd = s.location.Init()
		}
	case stageLocation:
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "enter" {
			s.stage = stageDone
			answers := s.Answers()
			return s, func() tea.Msg { return CompletedMsg{Answers: answers} }
		}
		s.location, cmd = s.location.Update(msg)
	}
	return s, cmd
}

// Answers returns what has been answered so far.
func (s *Screen) Answers() classifier.Answers {
	usage, _ := s.usage.Chosen()
	industry, _ := s.industry.Chosen()
	return classifier.Answers{
		UsageInterest:    usage,
		IndustryInterest: industry,
		Location:         s.location.Value(),
	}
}

func (s *Screen) View(width, height int) string {
	var body string
	switch s.stage {
	case stageUsage:
		body = s.usage.View()
	case stageIndustry:
		body = s.industry.View()
	default:
		body = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Where are you based?") +
			"\n\n" + s.location.View() + "\n\n" +
			theme.Hint.Render("Press Enter to finish")
	}

	progress := components.StepProgress(int(min(s.stage, stageLocation)), 3, components.ContentWidth(width)-6).View()
	content := strings.Join([]string{
		theme.Title.Render("Let's get you connected"),
		progress,
		body,
	}, "\n\n")

	return components.Centered(components.Card(content, components.ContentWidth(width)), width, height)
}

func (s *Screen) Title() string {
	return "Welcome"
}

func (s *Screen) Route() string {
	return Route
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.stage == stageLocation {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Finish"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "A-Z", Description: "Jump"},
		{Key: "Enter", Description: "Confirm"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
