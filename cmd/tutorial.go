package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/circlet/internal/store"
	"github.com/abhisek/circlet/internal/tutorial"
	"github.com/abhisek/circlet/internal/usertype"
)

// tutorialAction drives e for one subcommand. target is the --type value,
// empty when the flag was not given.
type tutorialAction func(ctx context.Context, e *tutorial.Engine, target usertype.Type)

func newTutorialCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tutorial",
		Short: "Drive the guided tour from the command line",
		Long: "Each subcommand resumes any saved tour first, applies one action " +
			"and prints the resulting state.",
	}
	cmd.PersistentFlags().String("type", "", "Member type to use instead of the stored one")

	actions := []struct {
		use, short string
		run        tutorialAction
	}{
		{"status", "Show the current tour state", nil},
		{"start", "Start the tour", func(ctx context.Context, e *tutorial.Engine, t usertype.Type) {
			e.Start(ctx, t)
		}},
		{"next", "Go to the next step", func(ctx context.Context, e *tutorial.Engine, _ usertype.Type) {
			e.NextStep(ctx)
		}},
		{"prev", "Go back one step", func(ctx context.Context, e *tutorial.Engine, _ usertype.Type) {
			e.PreviousStep(ctx)
		}},
		{"skip", "Skip the tour", func(ctx context.Context, e *tutorial.Engine, _ usertype.Type) {
			e.Skip(ctx)
		}},
		{"complete", "Finish the tour now", func(ctx context.Context, e *tutorial.Engine, _ usertype.Type) {
			e.Complete(ctx)
		}},
		{"restart", "Clear tour history and start again", func(ctx context.Context, e *tutorial.Engine, t usertype.Type) {
			e.Restart(ctx, t)
		}},
		{"trigger", "Start the tour if onboarding just finished", func(ctx context.Context, e *tutorial.Engine, _ usertype.Type) {
			e.CheckAndTriggerTutorial(ctx)
		}},
	}
	for _, a := range actions {
		cmd.AddCommand(&cobra.Command{
			Use:   a.use,
			Short: a.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runTutorial(cmd, v, a.run)
			},
		})
	}
	cmd.AddCommand(newHistoryCmd(v))
	return cmd
}

func runTutorial(cmd *cobra.Command, v *viper.Viper, action tutorialAction) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	var target usertype.Type
	if raw, _ := cmd.Flags().GetString("type"); raw != "" {
		t, err := usertype.Parse(raw)
		if err != nil {
			return err
		}
		target = t
	}

	rt, err := setup(ctx, v)
	if err != nil {
		return err
	}
	defer rt.Close()

	nav := tutorial.NavigatorFunc(func(dest string) {
		fmt.Fprintf(out, "→ %s\n", dest)
	})
	e := tutorial.New(rt.progress, rt.catalog, append(rt.engineOptions(), tutorial.WithNavigator(nav))...)
	e.Load(ctx)
	e.Resume(ctx)
	// One command is one deliberate action, so the resume must not hold
	// off a start that follows it.
	e.SettleStart()

	if action != nil {
		action(ctx, e, target)
	}
	return printStatus(ctx, out, rt, e)
}

func printStatus(ctx context.Context, out io.Writer, rt *runtime, e *tutorial.Engine) error {
	snap := e.Snapshot()
	fmt.Fprintf(out, "member:   %s\n", snap.UserType.DisplayName())
	fmt.Fprintf(out, "state:    %s\n", snap.State)

	if snap.Flow != nil {
		fmt.Fprintf(out, "flow:     %s (%s)\n", snap.Flow.Title, snap.Flow.ID)
		fmt.Fprintf(out, "step:     %d/%d\n", snap.StepIndex+1, snap.Flow.StepCount())
		if step, ok := e.CurrentStep(); ok {
			fmt.Fprintf(out, "          %s: %s\n", step.Title, step.Description)
			if step.IsInteractive {
				fmt.Fprintf(out, "          waiting for %s\n", step.AwaitRoute)
			}
		}
	}

	done, err := rt.progress.CompletedFlows(ctx)
	if err != nil {
		return err
	}
	names := make([]string, len(done))
	for i, t := range done {
		names[i] = string(t)
	}
	if len(names) == 0 {
		names = []string{"none"}
	}
	fmt.Fprintf(out, "completed: %s\n", strings.Join(names, ", "))

	skipped, err := rt.progress.Skipped(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "skipped:  %t\n", skipped)
	return nil
}

func newHistoryCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent tour events (SQLite store only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := setup(ctx, v)
			if err != nil {
				return err
			}
			defer rt.Close()

			if rt.events == nil {
				return fmt.Errorf("history needs the sqlite store, not %q", rt.cfg.Store)
			}
			limit, _ := cmd.Flags().GetInt("limit")
			session, _ := cmd.Flags().GetString("session")
			events, err := rt.events.RecentTutorialEvents(ctx, store.QueryOpts{Limit: limit, SessionID: session})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-20s  %-9s  %-24s  %4s  %s\n", "Time", "Action", "Flow", "Step", "Session")
			fmt.Fprintln(out, strings.Repeat("─", 100))
			for _, ev := range events {
				fmt.Fprintf(out, "%-20s  %-9s  %-24s  %4d  %s\n",
					ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
					ev.Action, ev.FlowID, ev.StepIndex+1, ev.SessionID)
			}
			fmt.Fprintf(out, "\n%d events\n", len(events))
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum events to show (0 for all)")
	cmd.Flags().String("session", "", "Only show events from this session id")
	return cmd
}
