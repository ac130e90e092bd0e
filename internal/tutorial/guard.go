package tutorial

import "time"

// DefaultStartGuardWindow is how long a start blocks further starts unless
// the host settles it sooner.
const DefaultStartGuardWindow = time.Second

type guardPhase int

const (
	guardIdle guardPhase = iota
	guardStarting
)

// startGuard drops a start that arrives while an earlier one is still
// settling. It is driven by the caller's clock so tests can step time.
type startGuard struct {
	phase  guardPhase
	since  time.Time
	window time.Duration
}

// enter moves the guard to starting. It reports false, leaving the guard
// untouched, when a start is already in flight at now.
func (g *startGuard) enter(now time.Time) bool {
	if g.active(now) {
		return false
	}
	g.phase = guardStarting
	g.since = now
	return true
}

// active reports whether a start is in flight at now. The guard settles on
// its own once the window has elapsed.
func (g *startGuard) active(now time.Time) bool {
	if g.phase != guardStarting {
		return false
	}
	if !now.Before(g.since.Add(g.window)) {
		g.phase = guardIdle
		return false
	}
	return true
}

func (g *startGuard) settle() {
	g.phase = guardIdle
}
