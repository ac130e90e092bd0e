package tutorial

import (
	"fmt"

	"github.com/abhisek/circlet/internal/catalog"
	"github.com/abhisek/circlet/internal/usertype"
)

// Phase is the session-level state of the engine.
type Phase int

const (
	NotStarted Phase = iota
	InProgress
	Completed
	Skipped
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not-started"
	case InProgress:
		return "in-progress"
	case Completed:
		return "completed"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is the tutorial state. StepIndex is meaningful only while
// InProgress.
type State struct {
	Phase     Phase
	StepIndex int
}

func (s State) String() string {
	if s.Phase == InProgress {
		return fmt.Sprintf("%s(%d)", s.Phase, s.StepIndex)
	}
	return s.Phase.String()
}

// Snapshot is what the host renders.
type Snapshot struct {
	// Flow is a copy of the current flow, nil between sessions.
	Flow      *catalog.Flow
	StepIndex int
	IsShowing bool
	State     State
	UserType  usertype.Type
	SessionID string
}
