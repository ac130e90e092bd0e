package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/circlet/internal/catalog"
	"github.com/abhisek/circlet/internal/usertype"
)

func newFlowsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flows [type]",
		Short: "List the tutorial flows, or the steps of one flow",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			reg := catalog.Default()

			if len(args) == 0 {
				fmt.Fprintf(out, "%-24s  %-22s  %5s  %8s  %s\n", "ID", "Type", "Steps", "Duration", "Title")
				fmt.Fprintln(out, strings.Repeat("─", 90))
				for _, f := range reg.All() {
					fmt.Fprintf(out, "%-24s  %-22s  %5d  %8s  %s\n",
						f.ID, f.UserType, f.StepCount(), f.EstimatedDuration, f.Title)
				}
				return nil
			}

			t, err := usertype.Parse(args[0])
			if err != nil {
				return err
			}
			f, err := reg.Lookup(t)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "%s (%s)\n%s\n\n", f.Title, f.ID, f.Description)
			for i, s := range f.Steps {
				var notes []string
				if s.NavigationDestination != "" {
					notes = append(notes, "goes to "+s.NavigationDestination)
				}
				if s.IsInteractive {
					notes = append(notes, "waits for "+s.AwaitRoute)
				}
				line := fmt.Sprintf("%2d. %-26s %s", i+1, s.ID, s.Title)
				if len(notes) > 0 {
					line += "  [" + strings.Join(notes, ", ") + "]"
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
