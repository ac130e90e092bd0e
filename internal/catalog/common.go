package catalog

// Every flow ends with the same two steps so the tail of the tour is uniform
// regardless of user type.

const (
	rediscoveryStepID = "tutorial-rediscovery"
	closingStepID     = "community-welcome"
)

// RediscoveryStep tells the member the tour can be replayed later.
func RediscoveryStep() Step {
	return Step{
		ID:               rediscoveryStepID,
		Title:            "This tour is always here",
		Description:      "Replay the guided tour whenever you need a refresher.",
		Message:          "Pick \"Restart tour\" from your dashboard any time to walk through these steps again.",
		TooltipAlignment: AlignCenter,
	}
}

// ClosingStep is the final "you're ready" message of every flow.
func ClosingStep() Step {
	return Step{
		ID:               closingStepID,
		Title:            "You're ready",
		Description:      "Welcome to the community.",
		Message:          "That's the tour. Say hello, join a circle, and make your first connection. We're glad you're here.",
		TooltipAlignment: AlignCenter,
	}
}

// CommonTail returns the trailing steps appended to every flow, in order.
func CommonTail() []Step {
	return []Step{RediscoveryStep(), ClosingStep()}
}

// withTail appends the common tail to type-specific steps.
func withTail(steps ...Step) []Step {
	out := make([]Step, 0, len(steps)+2)
	out = append(out, steps...)
	return append(out, CommonTail()...)
}

// visitNetworkStep is the single interactive step in every flow. The member
// must open their network themselves before the tour continues.
func visitNetworkStep(message string) Step {
	return Step{
		ID:               "visit-network",
		Title:            "Visit your network",
		Description:      "Open the Network tab to see the people around you.",
		Message:          message,
		TooltipAlignment: AlignBottom,
		IsInteractive:    true,
		AwaitRoute:       RouteNetwork,
	}
}
