package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/abhisek/circlet/internal/classifier"
)

func answerFlags(cmd *cobra.Command) {
	cmd.Flags().String("usage", "", "What you want to use Circlet for, e.g. \"Find Mentors\"")
	cmd.Flags().String("industry", "", "Industry you're interested in")
	cmd.Flags().String("location", "", "Where you're based")
}

func answersFromFlags(cmd *cobra.Command) classifier.Answers {
	usage, _ := cmd.Flags().GetString("usage")
	industry, _ := cmd.Flags().GetString("industry")
	location, _ := cmd.Flags().GetString("location")
	return classifier.Answers{
		UsageInterest:    usage,
		IndustryInterest: industry,
		Location:         location,
	}
}

func newClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Show which member type a set of onboarding answers maps to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, rule := classifier.Explain(answersFromFlags(cmd))
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t(rule: %s)\n", t, rule)
			return nil
		},
	}
	answerFlags(cmd)
	return cmd
}

func newOnboardCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Record onboarding answers and queue the tour",
		Long: "Classifies the answers, stores the resulting member type and marks " +
			"onboarding as just completed so the next launch starts the tour.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := setup(ctx, v)
			if err != nil {
				return err
			}
			defer rt.Close()

			t, rule := classifier.Explain(answersFromFlags(cmd))
			if err := rt.progress.SetUserType(ctx, t); err != nil {
				return fmt.Errorf("save user type: %w", err)
			}
			if err := rt.progress.SetOnboardingCompleted(ctx); err != nil {
				return fmt.Errorf("save onboarding trigger: %w", err)
			}
			rt.logger.Info("onboarded", zap.String("user_type", string(t)), zap.String("rule", rule))

			fmt.Fprintf(cmd.OutOrStdout(), "Welcome aboard, %s. Your tour starts next time you open circlet.\n",
				t.DisplayName())
			return nil
		},
	}
	answerFlags(cmd)
	return cmd
}
