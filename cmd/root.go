package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	app := &app{}

	rootCmd := &cobra.Command{
		Use:           "dvrsweep",
		Short:         "Keep only the newest N recordings per show on a HDHomeRun DVR",
		Long:          "dvrsweep polls a HDHomeRun-compatible DVR over its HTTP API and deletes excess older recordings per show, according to the configured retention rules. Without a subcommand it runs in continuous watch mode.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return app.setup()
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, app, nil)
		},
	}

	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "config.json", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&app.debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		newVersionCmd(),
		newListCmd(app),
		newCleanupCmd(app),
		newWatchCmd(app),
	)

	return rootCmd
}
