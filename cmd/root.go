package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/circlet/internal/app"
	"github.com/abhisek/circlet/internal/config"
)

// Execute runs the circlet command tree.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

// flagKeys binds persistent flags to their viper keys.
var flagKeys = map[string]string{
	"config":         config.KeyConfigFile,
	"db":             config.KeyDB,
	"store":          config.KeyStore,
	"redis-addr":     config.KeyRedisAddr,
	"redis-password": config.KeyRedisPassword,
	"redis-db":       config.KeyRedisDB,
	"redis-prefix":   config.KeyRedisPrefix,
	"log-level":      config.KeyLogLevel,
	"log-file":       config.KeyLogFile,
	"start-guard":    config.KeyStartGuard,
	"metrics-addr":   config.KeyMetricsAddr,
}

func newRootCmd() *cobra.Command {
	v := config.NewViper()

	root := &cobra.Command{
		Use:   "circlet",
		Short: "Guided onboarding tour for the Circlet community",
		Long: "Circlet asks a few questions about what you want from the community, " +
			"works out what kind of member you are and walks you through the parts " +
			"of the app that matter to you.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotEnv()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd, v)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "Path to a circlet.yaml config file")
	flags.String("db", "", "Path to SQLite database file (overrides CIRCLET_DB env var)")
	flags.String("store", config.StoreSQLite, "Progress backend: sqlite, memory or redis")
	flags.String("redis-addr", "localhost:6379", "Redis address for --store redis")
	flags.String("redis-password", "", "Redis password")
	flags.Int("redis-db", 0, "Redis database number")
	flags.String("redis-prefix", "circlet:", "Prefix for Redis keys")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("log-file", "", "Log file path, \"stderr\" or \"off\" (default $XDG_STATE_HOME/circlet/circlet.log)")
	flags.Duration("start-guard", 0, "How long a fresh tour start ignores further starts (default 1s)")
	flags.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. localhost:9090")
	bindFlags(v, root)

	root.AddCommand(
		newOnboardCmd(v),
		newClassifyCmd(),
		newFlowsCmd(),
		newTutorialCmd(v),
		newResetCmd(v),
		newVersionCmd(),
	)
	return root
}

func bindFlags(v *viper.Viper, root *cobra.Command) {
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, root.PersistentFlags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}
}

// runApp builds the runtime and launches the TUI.
func runApp(cmd *cobra.Command, v *viper.Viper) error {
	ctx := cmd.Context()
	rt, err := setup(ctx, v)
	if err != nil {
		return err
	}
	defer rt.Close()

	return app.Run(ctx, app.Options{
		Progress:      rt.progress,
		Catalog:       rt.catalog,
		Logger:        rt.logger,
		GuardWindow:   rt.cfg.StartGuard,
		EngineOptions: rt.engineOptions(),
	})
}
