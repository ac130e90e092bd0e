package catalog

import (
	"time"

	"github.com/abhisek/circlet/internal/usertype"
)

// Alignment places the step tooltip relative to the host content.
type Alignment string

const (
	AlignTop    Alignment = "top"
	AlignBottom Alignment = "bottom"
	AlignLeft   Alignment = "left"
	AlignRight  Alignment = "right"
	AlignCenter Alignment = "center"
)

// Host routes a step may send the member to.
const (
	RouteDashboard = "/dashboard"
	RouteFeed      = "/feed"
	RouteCircles   = "/circles"
	RouteChat      = "/chat"
	RouteNetwork   = "/network"
	RouteProfile   = "/profile"
	RouteDiscover  = "/discover"
)

// Routes returns every route the host knows how to display.
func Routes() []string {
	return []string{
		RouteDashboard,
		RouteFeed,
		RouteCircles,
		RouteChat,
		RouteNetwork,
		RouteProfile,
		RouteDiscover,
	}
}

// Step is one screen of guidance.
type Step struct {
	ID          string `validate:"required"`
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Message     string `validate:"required"`

	// NavigationDestination is the route the host switches to when this step
	// becomes current. Empty means the host stays where it is.
	NavigationDestination string `validate:"omitempty,startswith=/"`

	TooltipAlignment Alignment `validate:"required,oneof=top bottom left right center"`

	// IsInteractive steps wait for the member to act in the host instead of
	// pressing Next.
	IsInteractive bool

	// AwaitRoute is the route whose arrival satisfies an interactive step.
	AwaitRoute string `validate:"omitempty,startswith=/"`
}

// Flow is the ordered tutorial program for one user type.
type Flow struct {
	ID                string        `validate:"required"`
	UserType          usertype.Type `validate:"required"`
	Title             string        `validate:"required"`
	Description       string        `validate:"required"`
	Steps             []Step        `validate:"required,min=1,dive"`
	EstimatedDuration time.Duration `validate:"gt=0"`
	IsRequired        bool
}

// StepCount returns the number of steps in the flow.
func (f Flow) StepCount() int {
	return len(f.Steps)
}

// LastIndex returns the index of the final step, or -1 for an empty flow.
func (f Flow) LastIndex() int {
	return len(f.Steps) - 1
}

// Step returns the step at index i.
func (f Flow) Step(i int) (Step, bool) {
	if i < 0 || i >= len(f.Steps) {
		return Step{}, false
	}
	return f.Steps[i], true
}

// StepIDsBefore returns the ids of all steps strictly before index i.
func (f Flow) StepIDsBefore(i int) []string {
	if i > len(f.Steps) {
		i = len(f.Steps)
	}
	ids := make([]string, 0, max(i, 0))
	for j := 0; j < i; j++ {
		ids = append(ids, f.Steps[j].ID)
	}
	return ids
}
