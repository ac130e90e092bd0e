package tutorial

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/abhisek/circlet/internal/catalog"
	"github.com/abhisek/circlet/internal/metrics"
	"github.com/abhisek/circlet/internal/progress"
	"github.com/abhisek/circlet/internal/store"
	"github.com/abhisek/circlet/internal/usertype"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type navRecorder struct {
	routes []string
}

func (n *navRecorder) Navigate(dest string) { n.routes = append(n.routes, dest) }

type eventRecorder struct {
	events []store.TutorialEvent
}

func (r *eventRecorder) AppendTutorialEvent(_ context.Context, ev store.TutorialEvent) error {
	r.events = append(r.events, ev)
	return nil
}

func (r *eventRecorder) RecentTutorialEvents(context.Context, store.QueryOpts) ([]store.TutorialEvent, error) {
	return r.events, nil
}

func (r *eventRecorder) actions() []string {
	out := make([]string, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Action
	}
	return out
}

// failingKV fails every operation.
type failingKV struct{}

var errBroken = errors.New("disk on fire")

func (failingKV) Get(context.Context, string) (string, bool, error) { return "", false, errBroken }
func (failingKV) Set(context.Context, string, string) error         { return errBroken }
func (failingKV) Delete(context.Context, ...string) error           { return errBroken }

// mentorFlow is a two-step synthetic flow. The first step navigates.
func mentorFlow() catalog.Flow {
	return catalog.Flow{
		ID:       "mentor-mini",
		UserType: usertype.Mentor,
		Title:    "Mentor mini",
		Steps: []catalog.Step{
			{ID: "m1", Title: "One", NavigationDestination: catalog.RouteFeed, TooltipAlignment: catalog.AlignTop},
			{ID: "m2", Title: "Two", TooltipAlignment: catalog.AlignCenter},
		},
		EstimatedDuration: time.Minute,
		IsRequired:        true,
	}
}

// studentFlow is a three-step synthetic flow with an interactive middle step.
func studentFlow() catalog.Flow {
	return catalog.Flow{
		ID:       "student-mini",
		UserType: usertype.Student,
		Title:    "Student mini",
		Steps: []catalog.Step{
			{ID: "s1", Title: "Hello", TooltipAlignment: catalog.AlignCenter},
			{ID: "s2", Title: "Network", IsInteractive: true, AwaitRoute: catalog.RouteNetwork, TooltipAlignment: catalog.AlignBottom},
			{ID: "s3", Title: "Profile", NavigationDestination: catalog.RouteProfile, TooltipAlignment: catalog.AlignLeft},
		},
		EstimatedDuration: 2 * time.Minute,
		IsRequired:        true,
	}
}

type harness struct {
	engine   *Engine
	progress *progress.Store
	kv       *store.Memory
	nav      *navRecorder
	clock    *fakeClock
	events   *eventRecorder
	registry *prometheus.Registry
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	reg, err := catalog.New(mentorFlow(), studentFlow())
	require.NoError(t, err)

	h := &harness{
		kv:     store.NewMemory(),
		nav:    &navRecorder{},
		clock:  newFakeClock(),
		events: &eventRecorder{},
	}
	h.registry = prometheus.NewRegistry()
	m, err := metrics.New(h.registry)
	require.NoError(t, err)
	h.progress = progress.New(h.kv, zaptest.NewLogger(t))

	n := 0
	base := []Option{
		WithNavigator(h.nav),
		WithLogger(zaptest.NewLogger(t)),
		WithMetrics(m),
		WithEventLog(h.events),
		WithClock(h.clock.Now),
		WithSessionIDs(func() string { n++; return fmt.Sprintf("session-%d", n) }),
	}
	h.engine = New(h.progress, reg, append(base, opts...)...)
	return h
}

// counter reads the value of the series of name whose label matches.
func (h *harness) counter(t *testing.T, name, label, value string) float64 {
	t.Helper()
	families, err := h.registry.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func (h *harness) completed(t *testing.T) []usertype.Type {
	t.Helper()
	c, err := h.progress.CompletedFlows(context.Background())
	require.NoError(t, err)
	return c
}

func (h *harness) savedProgress(t *testing.T) (progress.Progress, bool) {
	t.Helper()
	p, ok, err := h.progress.LoadProgress(context.Background())
	require.NoError(t, err)
	return p, ok
}

func TestNewEngineDefaults(t *testing.T) {
	h := newHarness(t)
	s := h.engine.Snapshot()
	assert.Equal(t, State{Phase: NotStarted}, s.State)
	assert.Nil(t, s.Flow)
	assert.False(t, s.IsShowing)
	assert.Equal(t, usertype.CommunityBuilder, s.UserType)
	_, ok := h.engine.CurrentStep()
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.engine.Load(ctx)
	assert.Equal(t, usertype.Default, h.engine.UserType(), "absent key keeps the default")

	require.NoError(t, h.progress.SetUserType(ctx, usertype.Student))
	h.engine.Load(ctx)
	assert.Equal(t, usertype.Student, h.engine.UserType())
}

func TestStartBeginsSession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.engine.SetUserType(ctx, usertype.Mentor)

	require.True(t, h.engine.Start(ctx, ""))

	s := h.engine.Snapshot()
	assert.Equal(t, State{Phase: InProgress, StepIndex: 0}, s.State)
	assert.True(t, s.IsShowing)
	require.NotNil(t, s.Flow)
	assert.Equal(t, "mentor-mini", s.Flow.ID)
	assert.Equal(t, "session-1", s.SessionID)

	step, ok := h.engine.CurrentStep()
	require.True(t, ok)
	assert.Equal(t, "m1", step.ID)

	p, ok := h.savedProgress(t)
	require.True(t, ok)
	assert.Equal(t, "mentor-mini", p.FlowID)
	assert.Equal(t, 0, p.CurrentStepIndex)
	assert.Empty(t, p.CompletedSteps)
	assert.True(t, p.StartedAt.Equal(h.clock.Now()))

	assert.Equal(t, []string{catalog.RouteFeed}, h.nav.routes)
	assert.Equal(t, 1.0, h.counter(t, "circlet_tutorial_starts_total", "user_type", "mentor"))
}

func TestStartWithoutDestinationDoesNotNavigate(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.engine.Start(context.Background(), usertype.Student))
	assert.Empty(t, h.nav.routes)
}

func TestStartIsNoopWhenTypeCompleted(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.engine.SetUserType(ctx, usertype.Mentor)
	require.NoError(t, h.progress.MarkCompleted(ctx, usertype.Mentor))

	before := h.engine.Snapshot()
	assert.False(t, h.engine.Start(ctx, ""))
	assert.Equal(t, before, h.engine.Snapshot())
	_, ok := h.savedProgress(t)
	assert.False(t, ok)
	assert.False(t, h.engine.StartGuardActive(), "a dropped start does not arm the guard")
}

func TestStartIsNoopWhenCompletedLeavesRunningSession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.engine.SetUserType(ctx, usertype.Mentor)

	require.True(t, h.engine.Start(ctx, usertype.Student))
	h.engine.NextStep(ctx)
	h.engine.SettleStart()
	require.NoError(t, h.progress.MarkCompleted(ctx, usertype.Mentor))

	before := h.engine.Snapshot()
	assert.False(t, h.engine.Start(ctx, ""))
	assert.Equal(t, before, h.engine.Snapshot())
	assert.Equal(t, State{Phase: InProgress, StepIndex: 1}, h.engine.Snapshot().State)
}

func TestStartWithOverrideIgnoresCompletedSet(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.progress.MarkCompleted(ctx, usertype.Mentor))

	assert.True(t, h.engine.Start(ctx, usertype.Mentor))
	assert.Equal(t, "mentor-mini", h.engine.Snapshot().Flow.ID)
}

func TestStartWithoutFlowIsNoop(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	assert.False(t, h.engine.Start(ctx, usertype.Investor))
	assert.Equal(t, State{Phase: NotStarted}, h.engine.Snapshot().State)
	assert.False(t, h.engine.StartGuardActive())

	// Default user type has no synthetic flow either.
	assert.False(t, h.engine.Start(ctx, ""))
}

func TestStartGuardDropsReentrantStart(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.True(t, h.engine.Start(ctx, usertype.Student))
	assert.True(t, h.engine.StartGuardActive())

	assert.False(t, h.engine.Start(ctx, usertype.Mentor), "second start inside the window is dropped")
	s := h.engine.Snapshot()
	assert.Equal(t, "student-mini", s.Flow.ID)
	assert.Equal(t, "session-1", s.SessionID)

	h.clock.Advance(DefaultStartGuardWindow - time.Millisecond)
	assert.False(t, h.engine.Start(ctx, usertype.Mentor))

	h.clock.Advance(time.Millisecond)
	assert.False(t, h.engine.StartGuardActive(), "guard settles once the window elapses")
	assert.True(t, h.engine.Start(ctx, usertype.Mentor))
	assert.Equal(t, "mentor-mini", h.engine.Snapshot().Flow.ID)

	assert.Equal(t, 2.0, h.counter(t, "circlet_tutorial_starts_dropped_total", "reason", metrics.DropGuard))
}

func TestSettleStartEndsGuardEarly(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.True(t, h.engine.Start(ctx, usertype.Student))
	h.engine.SettleStart()
	assert.False(t, h.engine.StartGuardActive())
	assert.True(t, h.engine.Start(ctx, usertype.Mentor))
}

func TestCustomStartGuardWindow(t *testing.T) {
	h := newHarness(t, WithStartGuardWindow(5*time.Second))
	ctx := context.Background()

	require.True(t, h.engine.Start(ctx, usertype.Student))
	h.clock.Advance(4 * time.Second)
	assert.False(t, h.engine.Start(ctx, usertype.Mentor))
	h.clock.Advance(time.Second)
	assert.True(t, h.engine.Start(ctx, usertype.Mentor))
}

func TestRoundTripCompletes(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.engine.SetUserType(ctx, usertype.Student)

	require.True(t, h.engine.Start(ctx, ""))
	n := studentFlow().StepCount()

	for i := 1; i < n; i++ {
		h.engine.NextStep(ctx)
		assert.Equal(t, State{Phase: InProgress, StepIndex: i}, h.engine.Snapshot().State)

		p, ok := h.savedProgress(t)
		require.True(t, ok)
		assert.Equal(t, i, p.CurrentStepIndex)
		assert.Equal(t, studentFlow().StepIDsBefore(i), p.CompletedSteps)
	}

	h.engine.NextStep(ctx)
	s := h.engine.Snapshot()
	assert.Equal(t, State{Phase: Completed}, s.State)
	assert.False(t, s.IsShowing)
	assert.Nil(t, s.Flow)
	assert.Equal(t, []usertype.Type{usertype.Student}, h.completed(t))

	_, ok := h.savedProgress(t)
	assert.False(t, ok, "in-flight progress is cleared on completion")

	assert.Equal(t, []string{ActionStart, ActionNext, ActionNext, ActionComplete}, h.events.actions())
	assert.Equal(t, 1.0, h.counter(t, "circlet_tutorial_completions_total", "user_type", "student"))
}

func TestNextStepWithoutSessionIsNoop(t *testing.T) {
	h := newHarness(t)
	h.engine.NextStep(context.Background())
	assert.Equal(t, State{Phase: NotStarted}, h.engine.Snapshot().State)
	assert.Empty(t, h.completed(t))
}

func TestNextStepAtLastIndexEqualsComplete(t *testing.T) {
	viaNext := newHarness(t)
	viaComplete := newHarness(t)
	ctx := context.Background()

	for _, h := range []*harness{viaNext, viaComplete} {
		require.True(t, h.engine.Start(ctx, usertype.Mentor))
		h.engine.NextStep(ctx)
	}
	viaNext.engine.NextStep(ctx)
	viaComplete.engine.Complete(ctx)

	a, b := viaNext.engine.Snapshot(), viaComplete.engine.Snapshot()
	assert.Equal(t, a.State, b.State)
	assert.Equal(t, a.IsShowing, b.IsShowing)
	assert.Equal(t, viaNext.completed(t), viaComplete.completed(t))
}

func TestPreviousStep(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.True(t, h.engine.Start(ctx, usertype.Student))
	h.engine.PreviousStep(ctx)
	assert.Equal(t, State{Phase: InProgress, StepIndex: 0}, h.engine.Snapshot().State, "no-op at index 0")

	h.engine.NextStep(ctx)
	h.engine.NextStep(ctx)
	h.engine.PreviousStep(ctx)
	assert.Equal(t, State{Phase: InProgress, StepIndex: 1}, h.engine.Snapshot().State)

	p, ok := h.savedProgress(t)
	require.True(t, ok)
	assert.Equal(t, 2, p.CurrentStepIndex, "stepping back is not persisted")

	h.engine.NextStep(ctx)
	p, _ = h.savedProgress(t)
	assert.Equal(t, 2, p.CurrentStepIndex)
	assert.Equal(t, []string{"s1", "s2"}, p.CompletedSteps, "completed steps are recomputed from the index")
}

func TestPreviousStepNavigatesToDestination(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.True(t, h.engine.Start(ctx, usertype.Mentor))
	h.engine.NextStep(ctx)
	h.engine.PreviousStep(ctx)
	assert.Equal(t, []string{catalog.RouteFeed, catalog.RouteFeed}, h.nav.routes)
}

func TestSkip(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.engine.SetUserType(ctx, usertype.Student)

	require.True(t, h.engine.Start(ctx, ""))
	h.engine.NextStep(ctx)
	h.engine.Skip(ctx)

	s := h.engine.Snapshot()
	assert.Equal(t, State{Phase: Skipped}, s.State)
	assert.False(t, s.IsShowing)
	assert.Nil(t, s.Flow)
	assert.Empty(t, h.completed(t), "skipping never marks a type completed")

	skipped, err := h.progress.Skipped(ctx)
	require.NoError(t, err)
	assert.True(t, skipped)
	_, ok := h.savedProgress(t)
	assert.False(t, ok)

	h.engine.SettleStart()
	assert.True(t, h.engine.Start(ctx, ""), "a skipped type can still start automatically")
	assert.Equal(t, 1.0, h.counter(t, "circlet_tutorial_skips_total", "user_type", "student"))
}

func TestSkipWithoutSessionIsNoop(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.engine.Skip(ctx)

	assert.Equal(t, State{Phase: NotStarted}, h.engine.Snapshot().State)
	skipped, err := h.progress.Skipped(ctx)
	require.NoError(t, err)
	assert.False(t, skipped)
}

func TestRestartReshowsCompletedTutorial(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.engine.SetUserType(ctx, usertype.Mentor)

	require.True(t, h.engine.Start(ctx, ""))
	h.engine.Complete(ctx)
	h.engine.SettleStart()
	require.Equal(t, []usertype.Type{usertype.Mentor}, h.completed(t))
	require.False(t, h.engine.Start(ctx, ""))

	require.NoError(t, h.progress.SetSkipped(ctx, true))
	require.True(t, h.engine.Restart(ctx, ""))
	assert.Equal(t, State{Phase: InProgress}, h.engine.Snapshot().State)
	assert.Empty(t, h.completed(t))
	skipped, err := h.progress.Skipped(ctx)
	require.NoError(t, err)
	assert.False(t, skipped)

	h.engine.NextStep(ctx)
	h.engine.NextStep(ctx)
	assert.Equal(t, []usertype.Type{usertype.Mentor}, h.completed(t))
}

func TestRestartWhileStartIsSettling(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.engine.SetUserType(ctx, usertype.Mentor)

	require.True(t, h.engine.Start(ctx, ""))
	h.engine.NextStep(ctx)
	require.True(t, h.engine.StartGuardActive())

	require.True(t, h.engine.Restart(ctx, ""))
	s := h.engine.Snapshot()
	assert.True(t, s.IsShowing)
	require.NotNil(t, s.Flow)
	assert.Equal(t, "mentor-mini", s.Flow.ID)
	assert.Equal(t, State{Phase: InProgress}, s.State)

	p, ok := h.savedProgress(t)
	require.True(t, ok, "the restarted session is persisted")
	assert.Equal(t, 0, p.CurrentStepIndex)
	assert.True(t, h.engine.StartGuardActive(), "the new start arms the guard again")
}

func TestRestartWithTarget(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.engine.SetUserType(ctx, usertype.Mentor)

	require.True(t, h.engine.Start(ctx, ""))
	h.engine.SettleStart()

	require.True(t, h.engine.Restart(ctx, usertype.Student))
	s := h.engine.Snapshot()
	assert.Equal(t, "student-mini", s.Flow.ID)
	assert.Equal(t, usertype.Mentor, s.UserType, "restart does not change the user type")
}

func TestSetUserType(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.True(t, h.engine.Start(ctx, usertype.Student))
	h.engine.SetUserType(ctx, usertype.Mentor)

	s := h.engine.Snapshot()
	assert.Equal(t, usertype.Mentor, s.UserType)
	assert.Equal(t, "student-mini", s.Flow.ID, "current session is untouched")

	stored, ok, err := h.progress.UserType(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, usertype.Mentor, stored)

	h.engine.SetUserType(ctx, usertype.Type("pirate"))
	assert.Equal(t, usertype.Mentor, h.engine.UserType(), "unknown types are ignored")
}

func TestCheckAndTriggerTutorial(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.engine.SetUserType(ctx, usertype.Mentor)

	assert.False(t, h.engine.CheckAndTriggerTutorial(ctx), "no flag, no start")
	assert.Equal(t, State{Phase: NotStarted}, h.engine.Snapshot().State)

	require.NoError(t, h.progress.SetOnboardingCompleted(ctx))
	assert.True(t, h.engine.CheckAndTriggerTutorial(ctx))
	assert.Equal(t, State{Phase: InProgress}, h.engine.Snapshot().State)
	_, found, _ := h.kv.Get(ctx, progress.KeyJustCompletedOnboarding)
	assert.False(t, found)

	h.engine.SettleStart()
	assert.False(t, h.engine.CheckAndTriggerTutorial(ctx), "flag fires once")
}

func TestCheckAndTriggerConsumesFlagWhenCompleted(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.engine.SetUserType(ctx, usertype.Mentor)
	require.NoError(t, h.progress.MarkCompleted(ctx, usertype.Mentor))
	require.NoError(t, h.progress.SetOnboardingCompleted(ctx))

	assert.False(t, h.engine.CheckAndTriggerTutorial(ctx))
	assert.Equal(t, State{Phase: NotStarted}, h.engine.Snapshot().State)
	_, found, _ := h.kv.Get(ctx, progress.KeyJustCompletedOnboarding)
	assert.False(t, found, "flag consumed even though start was a no-op")
}

func TestClearAllTutorialData(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.engine.SetUserType(ctx, usertype.Mentor)
	require.NoError(t, h.progress.SetOnboardingCompleted(ctx))
	require.NoError(t, h.progress.MarkCompleted(ctx, usertype.Student))
	require.True(t, h.engine.Start(ctx, ""))

	h.engine.ClearAllTutorialData(ctx)

	s := h.engine.Snapshot()
	assert.Equal(t, State{Phase: NotStarted}, s.State)
	assert.Nil(t, s.Flow)
	assert.False(t, s.IsShowing)
	assert.Equal(t, usertype.Default, s.UserType)
	assert.False(t, h.engine.StartGuardActive())
	assert.Equal(t, 0, h.kv.Len())
}

func TestRouteVisitedAdvancesInteractiveStep(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.True(t, h.engine.Start(ctx, usertype.Student))
	assert.False(t, h.engine.RouteVisited(ctx, catalog.RouteNetwork), "step 0 is not interactive")

	h.engine.NextStep(ctx)
	assert.False(t, h.engine.RouteVisited(ctx, catalog.RouteFeed), "wrong route")
	assert.Equal(t, 1, h.engine.Snapshot().StepIndex)

	assert.True(t, h.engine.RouteVisited(ctx, catalog.RouteNetwork))
	assert.Equal(t, 2, h.engine.Snapshot().StepIndex)
	assert.Equal(t, []string{catalog.RouteProfile}, h.nav.routes)
}

func TestResume(t *testing.T) {
	ctx := context.Background()
	first := newHarness(t)
	require.True(t, first.engine.Start(ctx, usertype.Student))
	first.engine.NextStep(ctx)
	first.engine.NextStep(ctx)
	first.engine.PreviousStep(ctx)

	// A second engine over the same store models a reload.
	reg, err := catalog.New(mentorFlow(), studentFlow())
	require.NoError(t, err)
	nav := &navRecorder{}
	second := New(first.progress, reg, WithNavigator(nav), WithClock(first.clock.Now))

	require.True(t, second.Resume(ctx))
	s := second.Snapshot()
	assert.Equal(t, State{Phase: InProgress, StepIndex: 2}, s.State, "resume uses the last forward position")
	assert.True(t, s.IsShowing)
	assert.Equal(t, []string{catalog.RouteProfile}, nav.routes)

	assert.False(t, second.Resume(ctx), "no-op while a session is active")
}

func TestResumeWithoutProgress(t *testing.T) {
	h := newHarness(t)
	assert.False(t, h.engine.Resume(context.Background()))
	assert.Equal(t, State{Phase: NotStarted}, h.engine.Snapshot().State)
}

func TestResumeDiscardsUnusableProgress(t *testing.T) {
	tests := []struct {
		name   string
		record progress.Progress
		setup  func(context.Context, *progress.Store) error
	}{
		{
			name:   "unknown flow",
			record: progress.Progress{FlowID: "gone-tour"},
		},
		{
			name:   "index past end",
			record: progress.Progress{FlowID: "mentor-mini", CurrentStepIndex: 5},
		},
		{
			name:   "flow already completed",
			record: progress.Progress{FlowID: "mentor-mini", CurrentStepIndex: 1},
			setup: func(ctx context.Context, p *progress.Store) error {
				return p.MarkCompleted(ctx, usertype.Mentor)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			ctx := context.Background()
			require.NoError(t, h.progress.SaveProgress(ctx, tt.record))
			if tt.setup != nil {
				require.NoError(t, tt.setup(ctx, h.progress))
			}

			assert.False(t, h.engine.Resume(ctx))
			assert.Equal(t, State{Phase: NotStarted}, h.engine.Snapshot().State)
			_, ok := h.savedProgress(t)
			assert.False(t, ok, "stale record is removed")
		})
	}
}

func TestResumeDiscardsMalformedRecord(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.kv.Set(ctx, progress.KeyProgress, `{"flowId": 7}`))

	assert.False(t, h.engine.Resume(ctx))
	assert.True(t, h.engine.Start(ctx, usertype.Mentor), "a malformed record never blocks a fresh start")
}

func TestSnapshotIsACopy(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.engine.Start(context.Background(), usertype.Mentor))

	s := h.engine.Snapshot()
	s.Flow.Steps[0].Title = "changed"
	step, _ := h.engine.CurrentStep()
	assert.Equal(t, "One", step.Title)
}

func TestStorageFailuresDegrade(t *testing.T) {
	reg, err := catalog.New(mentorFlow())
	require.NoError(t, err)
	e := New(progress.New(failingKV{}, nil), reg, WithLogger(zaptest.NewLogger(t)))
	ctx := context.Background()

	assert.NotPanics(t, func() {
		e.Load(ctx)
		e.SetUserType(ctx, usertype.Mentor)
		assert.True(t, e.Start(ctx, ""), "unreadable completed set counts as empty")
		e.NextStep(ctx)
		e.PreviousStep(ctx)
		e.Skip(ctx)
		e.SettleStart()
		assert.False(t, e.CheckAndTriggerTutorial(ctx))
		assert.False(t, e.Resume(ctx))
		assert.True(t, e.Restart(ctx, ""))
		e.Complete(ctx)
		e.ClearAllTutorialData(ctx)
	})
	assert.Equal(t, State{Phase: NotStarted}, e.Snapshot().State)
}

func TestEventsCarrySession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.True(t, h.engine.Start(ctx, usertype.Mentor))
	h.engine.NextStep(ctx)
	h.engine.PreviousStep(ctx)
	h.engine.Skip(ctx)

	require.Len(t, h.events.events, 4)
	for _, ev := range h.events.events {
		assert.Equal(t, "session-1", ev.SessionID)
		assert.Equal(t, "mentor-mini", ev.FlowID)
		assert.Equal(t, "mentor", ev.UserType)
	}
	assert.Equal(t, []string{ActionStart, ActionNext, ActionPrevious, ActionSkip}, h.events.actions())
	assert.Equal(t, 1, h.events.events[1].StepIndex)
}

func TestProductionFlowsRunToCompletion(t *testing.T) {
	for _, flow := range catalog.Default().All() {
		t.Run(flow.ID, func(t *testing.T) {
			kv := store.NewMemory()
			nav := &navRecorder{}
			p := progress.New(kv, nil)
			e := New(p, catalog.Default(), WithNavigator(nav))
			ctx := context.Background()
			e.SetUserType(ctx, flow.UserType)

			require.True(t, e.Start(ctx, ""))
			for i := 0; i < flow.StepCount(); i++ {
				e.NextStep(ctx)
			}
			assert.Equal(t, State{Phase: Completed}, e.Snapshot().State)

			var want []string
			for _, s := range flow.Steps {
				if s.NavigationDestination != "" {
					want = append(want, s.NavigationDestination)
				}
			}
			assert.Equal(t, want, nav.routes)

			done, err := p.IsCompleted(ctx, flow.UserType)
			require.NoError(t, err)
			assert.True(t, done)
		})
	}
}
