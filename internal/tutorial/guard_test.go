package tutorial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartGuard(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := startGuard{window: time.Second}

	assert.False(t, g.active(t0))
	assert.True(t, g.enter(t0))
	assert.True(t, g.active(t0.Add(500*time.Millisecond)))
	assert.False(t, g.enter(t0.Add(500*time.Millisecond)))

	assert.False(t, g.active(t0.Add(time.Second)), "settles at the window boundary")
	assert.Equal(t, guardIdle, g.phase)

	assert.True(t, g.enter(t0.Add(2*time.Second)))
	g.settle()
	assert.True(t, g.enter(t0.Add(2*time.Second)), "settled guard admits immediately")
}

func TestZeroWindowNeverBlocks(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := startGuard{}
	assert.True(t, g.enter(t0))
	assert.True(t, g.enter(t0))
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{State{Phase: NotStarted}, "not-started"},
		{State{Phase: InProgress, StepIndex: 3}, "in-progress(3)"},
		{State{Phase: Completed}, "completed"},
		{State{Phase: Skipped}, "skipped"},
		{State{Phase: Phase(9)}, "Phase(9)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
}
