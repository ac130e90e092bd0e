// Package tutorial drives a member through the guided-onboarding flow for
// their user type.
//
// The engine is a small state machine: NotStarted, InProgress(i), and the
// session-terminal Completed and Skipped. It persists through a
// progress.Store after every forward transition and asks the host to
// navigate when the current step carries a destination. No operation
// returns an error: unmet preconditions are no-ops and storage failures are
// logged and otherwise ignored.
//
// An Engine is not safe for concurrent use. It expects to be driven from a
// single UI event loop.
package tutorial

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/circlet/internal/catalog"
	"github.com/abhisek/circlet/internal/metrics"
	"github.com/abhisek/circlet/internal/progress"
	"github.com/abhisek/circlet/internal/store"
	"github.com/abhisek/circlet/internal/usertype"
)

// Event log actions.
const (
	ActionStart    = "start"
	ActionResume   = "resume"
	ActionNext     = "next"
	ActionPrevious = "previous"
	ActionSkip     = "skip"
	ActionComplete = "complete"
)

// Engine owns the current tutorial session.
type Engine struct {
	progress     *progress.Store
	catalog      Catalog
	nav          Navigator
	logger       *zap.Logger
	metrics      *metrics.Metrics
	events       store.EventLog
	now          func() time.Time
	newSessionID func() string
	guard        startGuard

	userType  usertype.Type
	flow      *catalog.Flow
	stepIndex int
	showing   bool
	state     State
	sessionID string
	startedAt time.Time
}

// New creates an engine over p and cat. The user type starts as the
// classifier default until Load or SetUserType runs.
func New(p *progress.Store, cat Catalog, opts ...Option) *Engine {
	e := &Engine{
		progress:     p,
		catalog:      cat,
		logger:       zap.NewNop(),
		now:          time.Now,
		newSessionID: uuid.NewString,
		guard:        startGuard{window: DefaultStartGuardWindow},
		userType:     usertype.Default,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load reads the persisted user type. Absent or unreadable values leave the
// default in place.
func (e *Engine) Load(ctx context.Context) {
	t, ok, err := e.progress.UserType(ctx)
	if err != nil {
		e.logger.Warn("load user type", zap.Error(err))
		return
	}
	if ok {
		e.userType = t
	}
}

// UserType returns the in-memory user type.
func (e *Engine) UserType() usertype.Type {
	return e.userType
}

// Snapshot returns the state the host renders.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		StepIndex: e.stepIndex,
		IsShowing: e.showing,
		State:     e.state,
		UserType:  e.userType,
		SessionID: e.sessionID,
	}
	if e.flow != nil {
		f := *e.flow
		f.Steps = append([]catalog.Step(nil), e.flow.Steps...)
		s.Flow = &f
	}
	return s
}

// CurrentStep returns the step the overlay shows, if any.
func (e *Engine) CurrentStep() (catalog.Step, bool) {
	if e.flow == nil || !e.showing {
		return catalog.Step{}, false
	}
	return e.flow.Step(e.stepIndex)
}

// StartGuardActive reports whether a start is still settling.
func (e *Engine) StartGuardActive() bool {
	return e.guard.active(e.now())
}

// SettleStart ends the start guard early. Hosts call it once the start
// has rendered.
func (e *Engine) SettleStart() {
	e.guard.settle()
}

// Start begins a session. An empty target uses the engine's user type and
// is ignored when that type's tutorial is already completed. A start for a
// type without a flow, or while an earlier start is settling, is ignored.
// Only a start that begins a session arms the guard. Start reports whether
// a session began.
func (e *Engine) Start(ctx context.Context, target usertype.Type) bool {
	t := target
	if t == "" {
		t = e.userType
		done, err := e.progress.IsCompleted(ctx, t)
		if err != nil {
			e.logger.Warn("read completed flows", zap.Error(err))
		}
		if done {
			e.dropStart(metrics.DropCompleted, t)
			return false
		}
	}

	flow, ok := e.catalog.Flow(t)
	if !ok {
		e.dropStart(metrics.DropNoFlow, t)
		return false
	}

	now := e.now()
	if !e.guard.enter(now) {
		e.dropStart(metrics.DropGuard, t)
		return false
	}

	e.flow = &flow
	e.stepIndex = 0
	e.state = State{Phase: InProgress}
	e.showing = true
	e.sessionID = e.newSessionID()
	e.startedAt = now

	e.saveProgress(ctx)
	e.metrics.StartAccepted(string(t))
	e.logger.Debug("tutorial started",
		zap.String("flow", flow.ID),
		zap.String("user_type", string(t)),
		zap.Bool("override", target != ""),
		zap.String("session", e.sessionID),
	)
	e.record(ctx, ActionStart)
	e.navigateToCurrent()
	return true
}

// Resume restores a session from the persisted progress record. It is a
// no-op while a session is active, when no valid record exists, or when the
// record's flow is already completed. The restored index is the last one
// written, which is the furthest step reached by NextStep.
func (e *Engine) Resume(ctx context.Context) bool {
	if e.flow != nil {
		return false
	}
	p, ok, err := e.progress.LoadProgress(ctx)
	if err != nil {
		e.logger.Warn("load progress", zap.Error(err))
		return false
	}
	if !ok {
		return false
	}

	flow, ok := e.catalog.ByID(p.FlowID)
	if !ok || p.CurrentStepIndex > flow.LastIndex() {
		e.logger.Warn("discarding stale tutorial progress",
			zap.String("flow", p.FlowID),
			zap.Int("step", p.CurrentStepIndex),
		)
		e.clearProgress(ctx)
		return false
	}
	done, err := e.progress.IsCompleted(ctx, flow.UserType)
	if err != nil {
		e.logger.Warn("read completed flows", zap.Error(err))
	}
	if done {
		e.clearProgress(ctx)
		return false
	}

	now := e.now()
	if !e.guard.enter(now) {
		e.dropStart(metrics.DropGuard, flow.UserType)
		return false
	}

	e.flow = &flow
	e.stepIndex = p.CurrentStepIndex
	e.state = State{Phase: InProgress, StepIndex: p.CurrentStepIndex}
	e.showing = true
	e.sessionID = e.newSessionID()
	e.startedAt = p.StartedAt
	if e.startedAt.IsZero() {
		e.startedAt = now
	}

	e.saveProgress(ctx)
	e.logger.Debug("tutorial resumed",
		zap.String("flow", flow.ID),
		zap.Int("step", e.stepIndex),
		zap.String("session", e.sessionID),
	)
	e.record(ctx, ActionResume)
	e.navigateToCurrent()
	return true
}

// NextStep advances one step, or completes the session from the last step.
func (e *Engine) NextStep(ctx context.Context) {
	if e.flow == nil {
		return
	}
	if e.stepIndex >= e.flow.LastIndex() {
		e.Complete(ctx)
		return
	}

	e.stepIndex++
	e.state = State{Phase: InProgress, StepIndex: e.stepIndex}
	e.saveProgress(ctx)
	e.metrics.StepChanged(metrics.DirectionNext)
	e.logger.Debug("tutorial step", zap.String("flow", e.flow.ID), zap.Int("step", e.stepIndex))
	e.record(ctx, ActionNext)
	e.navigateToCurrent()
}

// PreviousStep steps back one step. Only memory changes: a reload resumes
// at the last step reached going forward.
func (e *Engine) PreviousStep(ctx context.Context) {
	if e.flow == nil || e.stepIndex == 0 {
		return
	}

	e.stepIndex--
	e.state = State{Phase: InProgress, StepIndex: e.stepIndex}
	e.metrics.StepChanged(metrics.DirectionPrevious)
	e.logger.Debug("tutorial step back", zap.String("flow", e.flow.ID), zap.Int("step", e.stepIndex))
	e.record(ctx, ActionPrevious)
	e.navigateToCurrent()
}

// RouteVisited advances an interactive step whose AwaitRoute is route. It
// reports whether the step was satisfied.
func (e *Engine) RouteVisited(ctx context.Context, route string) bool {
	step, ok := e.CurrentStep()
	if !ok || !step.IsInteractive || step.AwaitRoute != route {
		return false
	}
	e.NextStep(ctx)
	return true
}

// Skip dismisses the session. The type is not marked completed, so a later
// automatic start still runs. Besides setting the skip flag, Skip deletes the
// in-flight progress record so that Resume cannot bring a skipped tour back.
func (e *Engine) Skip(ctx context.Context) {
	if e.flow == nil {
		return
	}
	flow := e.flow
	e.record(ctx, ActionSkip)
	e.metrics.Skipped(string(flow.UserType), e.now().Sub(e.startedAt))

	if err := e.progress.SetSkipped(ctx, true); err != nil {
		e.logger.Warn("persist skip", zap.Error(err))
	}
	e.clearProgress(ctx)
	e.endSession(Skipped)
	e.logger.Debug("tutorial skipped", zap.String("flow", flow.ID))
}

// Complete finishes the session and adds the flow's user type to the
// completed set.
func (e *Engine) Complete(ctx context.Context) {
	if e.flow == nil {
		return
	}
	flow := e.flow
	e.record(ctx, ActionComplete)
	e.metrics.Completed(string(flow.UserType), e.now().Sub(e.startedAt))

	if err := e.progress.MarkCompleted(ctx, flow.UserType); err != nil {
		e.logger.Warn("persist completion", zap.Error(err))
	}
	e.clearProgress(ctx)
	e.endSession(Completed)
	e.logger.Debug("tutorial completed", zap.String("flow", flow.ID))
}

// Restart clears the completed set, skip flag and in-flight progress, then
// starts for target (or the engine's user type when empty). It is the only
// way to re-show a completed tutorial. Restart is always a deliberate
// request, so it settles the start guard rather than being dropped by it.
func (e *Engine) Restart(ctx context.Context, target usertype.Type) bool {
	if err := e.progress.ClearTutorialData(ctx); err != nil {
		e.logger.Warn("clear tutorial data", zap.Error(err))
	}
	if e.flow != nil {
		e.endSession(NotStarted)
	}
	e.guard.settle()
	return e.Start(ctx, target)
}

// SetUserType updates and persists the user type. The current session is
// left alone.
func (e *Engine) SetUserType(ctx context.Context, t usertype.Type) {
	if !t.Valid() {
		e.logger.Warn("ignoring unknown user type", zap.String("user_type", string(t)))
		return
	}
	e.userType = t
	if err := e.progress.SetUserType(ctx, t); err != nil {
		e.logger.Warn("persist user type", zap.Error(err))
	}
}

// CheckAndTriggerTutorial consumes the onboarding trigger and, when it was
// set, starts without an override. The trigger is consumed whether or not
// a session begins.
func (e *Engine) CheckAndTriggerTutorial(ctx context.Context) bool {
	set, err := e.progress.ConsumeOnboardingCompleted(ctx)
	if err != nil {
		e.logger.Warn("consume onboarding trigger", zap.Error(err))
		return false
	}
	if !set {
		return false
	}
	return e.Start(ctx, "")
}

// ClearAllTutorialData wipes every persisted tutorial key and resets the
// engine to NotStarted with the default user type.
func (e *Engine) ClearAllTutorialData(ctx context.Context) {
	if err := e.progress.ClearAll(ctx); err != nil {
		e.logger.Warn("clear all tutorial data", zap.Error(err))
	}
	e.endSession(NotStarted)
	e.userType = usertype.Default
	e.guard.settle()
}

func (e *Engine) endSession(phase Phase) {
	e.flow = nil
	e.stepIndex = 0
	e.showing = false
	e.state = State{Phase: phase}
}

func (e *Engine) saveProgress(ctx context.Context) {
	p := progress.Progress{
		FlowID:           e.flow.ID,
		CurrentStepIndex: e.stepIndex,
		CompletedSteps:   e.flow.StepIDsBefore(e.stepIndex),
		StartedAt:        e.startedAt,
		LastAccessed:     e.now(),
	}
	if err := e.progress.SaveProgress(ctx, p); err != nil {
		e.logger.Warn("persist progress", zap.Error(err))
	}
}

func (e *Engine) clearProgress(ctx context.Context) {
	if err := e.progress.ClearProgress(ctx); err != nil {
		e.logger.Warn("clear progress", zap.Error(err))
	}
}

func (e *Engine) navigateToCurrent() {
	if e.nav == nil {
		return
	}
	step, ok := e.flow.Step(e.stepIndex)
	if !ok || step.NavigationDestination == "" {
		return
	}
	e.nav.Navigate(step.NavigationDestination)
}

func (e *Engine) dropStart(reason string, t usertype.Type) {
	e.metrics.StartDropped(reason)
	e.logger.Warn("tutorial start ignored",
		zap.String("reason", reason),
		zap.String("user_type", string(t)),
	)
}

func (e *Engine) record(ctx context.Context, action string) {
	if e.events == nil || e.flow == nil {
		return
	}
	ev := store.TutorialEvent{
		Timestamp: e.now(),
		SessionID: e.sessionID,
		UserType:  string(e.flow.UserType),
		FlowID:    e.flow.ID,
		Action:    action,
		StepIndex: e.stepIndex,
	}
	if err := e.events.AppendTutorialEvent(ctx, ev); err != nil {
		e.logger.Warn("record tutorial event", zap.String("action", action), zap.Error(err))
	}
}
