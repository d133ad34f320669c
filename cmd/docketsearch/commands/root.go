package commands

import (
	"context"
	"docketsearch/lib/serviceutil"
	"docketsearch/lib/telemetry"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	configPath  string
	budget      time.Duration
	concurrency int
	debug       bool
	jsonOutput  bool
)

// loaded by the root command before any subcommand runs
var config Config

var rootCmd = &cobra.Command{
	Use:   "docketsearch",
	Short: "docketsearch searches the docket sheets of the Pennsylvania Unified Judicial System portal.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		config, err = ReadConfig(configPath)
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		if cmd.Flags().Changed("budget") {
			config.TimeBudget = budget.String()
		}
		if cmd.Flags().Changed("concurrency") {
			config.MaxConcurrency = concurrency
		}
		if debug {
			config.Debug = true
		}

		telemetry.InitSlog(config.Debug)
		telemetry.SetupOptional(cmd.Context(), "docketsearch")
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		err := telemetry.Shutdown(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "docketsearch.json5", "Path to the configuration file.")
	flags.DurationVar(&budget, "budget", 0, "Wall time a name search may spend paging through results (0 is unbounded).")
	flags.IntVar(&concurrency, "concurrency", 0, "The most searches run at once (0 is unbounded).")
	flags.BoolVar(&debug, "debug", false, "Log at debug level and dump requests when dump_dir is configured.")
	flags.BoolVar(&jsonOutput, "json", false, "Print results as JSON instead of a table.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
