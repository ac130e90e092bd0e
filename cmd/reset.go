package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/circlet/internal/tutorial"
)

func newResetCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the member type and all tour progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := setup(ctx, v)
			if err != nil {
				return err
			}
			defer rt.Close()

			e := tutorial.New(rt.progress, rt.catalog, rt.engineOptions()...)
			e.ClearAllTutorialData(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), "Tutorial data cleared.")
			return nil
		},
	}
}
