package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "rokuwake",
		Short:         "Schedule a Roku to wake up and launch an app",
		Long:          "Finds a Roku on the local network, lets you pick an app, and registers a recurring OS task that powers the TV on and launches it.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(cmd, ctx)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path (default rokuwake.yaml if present)")
	flags.StringVarP(&ctx.addressFlag, "address", "a", "", "Device IPv4 address; skips discovery")
	flags.StringVar(&ctx.scriptFlag, "script", "", "Path of the generated trigger script")
	flags.StringVar(&ctx.logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newDiscoverCommand(ctx))
	rootCmd.AddCommand(newAppsCommand(ctx))
	rootCmd.AddCommand(newTestCommand(ctx))
	rootCmd.AddCommand(newUnregisterCommand(ctx))

	return rootCmd
}
