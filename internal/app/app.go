// Package app hosts the screens and the tutorial overlay in one Bubble Tea
// program.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/circlet/internal/catalog"
	"github.com/abhisek/circlet/internal/classifier"
	"github.com/abhisek/circlet/internal/progress"
	"github.com/abhisek/circlet/internal/router"
	"github.com/abhisek/circlet/internal/screen"
	"github.com/abhisek/circlet/internal/screens/home"
	"github.com/abhisek/circlet/internal/screens/onboarding"
	"github.com/abhisek/circlet/internal/screens/section"
	"github.com/abhisek/circlet/internal/tutorial"
	"github.com/abhisek/circlet/internal/ui/components"
	"github.com/abhisek/circlet/internal/ui/layout"
)

// Options wires the app to its storage.
type Options struct {
	Progress *progress.Store
	Catalog  tutorial.Catalog
	Logger   *zap.Logger

	// GuardWindow is how long a fresh start stays unsettled.
	GuardWindow time.Duration

	// EngineOptions are passed through to the tutorial engine. The app
	// installs its own navigator after them.
	EngineOptions []tutorial.Option
}

type mountMsg struct{}

type settleMsg struct{}

// pendingNav collects destinations the engine asks for. The app applies
// them after every engine call.
type pendingNav struct {
	destinations []string
}

func (n *pendingNav) Navigate(destination string) {
	n.destinations = append(n.destinations, destination)
}

func (n *pendingNav) drain() []string {
	d := n.destinations
	n.destinations = nil
	return d
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctx         context.Context
	engine      *tutorial.Engine
	progress    *progress.Store
	logger      *zap.Logger
	nav         *pendingNav
	router      *router.Router
	guardWindow time.Duration
	width       int
	height      int
}

// NewModel builds the app. Members without a stored user type start on the
// onboarding questions; everyone else lands on the dashboard.
func NewModel(ctx context.Context, opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	window := opts.GuardWindow
	if window <= 0 {
		window = tutorial.DefaultStartGuardWindow
	}

	nav := &pendingNav{}
	engineOpts := append([]tutorial.Option{
		tutorial.WithLogger(logger),
		tutorial.WithStartGuardWindow(window),
	}, opts.EngineOptions...)
	engineOpts = append(engineOpts, tutorial.WithNavigator(nav))

	m := AppModel{
		ctx:         ctx,
		engine:      tutorial.New(opts.Progress, opts.Catalog, engineOpts...),
		progress:    opts.Progress,
		logger:      logger,
		nav:         nav,
		guardWindow: window,
	}
	m.engine.Load(ctx)

	var initial screen.Screen
	if _, ok, err := opts.Progress.UserType(ctx); err == nil && ok {
		initial = m.newHome()
	} else {
		initial = onboarding.New()
	}
	m.router = router.New(initial)
	return m
}

// Engine exposes the tutorial engine, mainly for tests.
func (m AppModel) Engine() *tutorial.Engine {
	return m.engine
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.router.Active().Init(),
		func() tea.Msg { return mountMsg{} },
	)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case mountMsg:
		if m.router.ActiveRoute() == onboarding.Route {
			return m, nil
		}
		// The trigger is consumed on every mount, even when a saved tour
		// would resume instead.
		started := m.engine.CheckAndTriggerTutorial(m.ctx)
		if !started {
			started = m.engine.Resume(m.ctx)
		}
		return m, m.afterEngine(started)

	case settleMsg:
		m.engine.SettleStart()
		return m, nil

	case onboarding.CompletedMsg:
		t, rule := classifier.Explain(msg.Answers)
		m.logger.Info("onboarding complete",
			zap.String("user_type", string(t)),
			zap.String("rule", rule),
		)
		m.engine.SetUserType(m.ctx, t)
		if err := m.progress.SetOnboardingCompleted(m.ctx); err != nil {
			m.logger.Warn("persist onboarding trigger", zap.Error(err))
		}
		resetCmd := m.router.Reset(m.newHome())
		started := m.engine.CheckAndTriggerTutorial(m.ctx)
		return m, tea.Batch(resetCmd, m.afterEngine(started))

	case home.OpenRouteMsg:
		pushCmd := m.router.Push(section.New(msg.Route))
		m.engine.RouteVisited(m.ctx, msg.Route)
		return m, tea.Batch(pushCmd, m.afterEngine(false))

	case home.TourMsg:
		var started bool
		if msg.Restart {
			started = m.engine.Restart(m.ctx, "")
		} else {
			started = m.engine.Start(m.ctx, m.engine.UserType())
		}
		return m, m.afterEngine(started)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if step, ok := m.engine.CurrentStep(); ok {
			if cmd, handled := m.overlayKey(step, msg.String()); handled {
				return m, cmd
			}
		}
		if msg.String() == "esc" {
			if m.router.Depth() > 1 {
				m.router.Pop()
				m.engine.RouteVisited(m.ctx, m.router.ActiveRoute())
				return m, m.afterEngine(false)
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// overlayKey handles keys while a step is showing. Interactive steps let
// everything but the tutorial keys through to the screen underneath.
func (m AppModel) overlayKey(step catalog.Step, key string) (tea.Cmd, bool) {
	switch key {
	case "n", "enter":
		if step.IsInteractive {
			return nil, key == "n"
		}
		m.engine.NextStep(m.ctx)
	case "p":
		m.engine.PreviousStep(m.ctx)
	case "s":
		m.engine.Skip(m.ctx)
	default:
		return nil, !step.IsInteractive
	}
	cmd := m.afterEngine(false)
	if _, still := m.engine.CurrentStep(); !still && m.router.Depth() == 1 {
		// The tour ended on the dashboard; redraw its status.
		cmd = tea.Batch(cmd, m.router.Replace(m.newHome()))
	}
	return cmd, true
}

// afterEngine applies queued navigation and schedules the settle tick for
// a fresh start.
func (m AppModel) afterEngine(started bool) tea.Cmd {
	var cmds []tea.Cmd
	for _, dest := range m.nav.drain() {
		cmds = append(cmds, m.router.Reset(m.newHome()))
		if dest != catalog.RouteDashboard {
			cmds = append(cmds, m.router.Push(section.New(dest)))
		}
	}
	if started {
		cmds = append(cmds, tea.Tick(m.guardWindow, func(time.Time) tea.Msg { return settleMsg{} }))
	}
	return tea.Batch(cmds...)
}

func (m AppModel) newHome() *home.Screen {
	done, err := m.progress.IsCompleted(m.ctx, m.engine.UserType())
	if err != nil {
		m.logger.Warn("read completed tours", zap.Error(err))
	}
	return home.New(home.Status{UserType: m.engine.UserType(), TourCompleted: done})
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	badge := ""
	if active == nil || active.Route() != onboarding.Route {
		badge = m.engine.UserType().DisplayName()
	}
	header := layout.RenderHeader(title, badge, m.width)

	step, showing := m.engine.CurrentStep()
	footer := layout.RenderFooter(m.footerHints(active, showing), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	var content string
	if showing {
		content = m.overlay(step, contentHeight)
	} else {
		content = m.router.View(m.width, contentHeight)
	}

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) overlay(step catalog.Step, height int) string {
	snap := m.engine.Snapshot()
	tip := components.Tooltip{
		Title:       step.Title,
		Description: step.Description,
		Message:     step.Message,
		Index:       snap.StepIndex,
		Interactive: step.IsInteractive,
		AwaitHint:   awaitHint(step),
	}
	if snap.Flow != nil {
		tip.FlowTitle = snap.Flow.Title
		tip.Total = snap.Flow.StepCount()
	}
	align := string(step.TooltipAlignment)
	box := tip.View(tip.Width(align, m.width))
	return components.Compose(align, box, m.width, height, m.router.View)
}

func awaitHint(step catalog.Step) string {
	if !step.IsInteractive || step.AwaitRoute == "" {
		return ""
	}
	if step.AwaitRoute == catalog.RouteDashboard {
		return "Press Esc to go back home."
	}
	info, _ := section.Lookup(step.AwaitRoute)
	return fmt.Sprintf("Open %s from the home menu to continue.", info.Title)
}

func (m AppModel) footerHints(active screen.Screen, showing bool) []layout.KeyHint {
	if showing {
		return []layout.KeyHint{
			{Key: "n", Description: "Next"},
			{Key: "p", Description: "Back"},
			{Key: "s", Description: "Skip tour"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(NewModel(ctx, opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
