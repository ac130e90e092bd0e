package tutorial

import (
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/circlet/internal/metrics"
	"github.com/abhisek/circlet/internal/store"
)

// Option configures an Engine.
type Option func(*Engine)

// WithNavigator sets the host navigator. Without one, destinations are
// ignored.
func WithNavigator(n Navigator) Option {
	return func(e *Engine) { e.nav = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithEventLog records every transition to log.
func WithEventLog(log store.EventLog) Option {
	return func(e *Engine) { e.events = log }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithStartGuardWindow sets how long a start blocks further starts.
func WithStartGuardWindow(d time.Duration) Option {
	return func(e *Engine) { e.guard.window = d }
}

// WithSessionIDs sets the session id generator.
func WithSessionIDs(gen func() string) Option {
	return func(e *Engine) {
		if gen != nil {
			e.newSessionID = gen
		}
	}
}
