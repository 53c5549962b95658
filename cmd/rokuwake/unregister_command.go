package main

import (
	"runtime"

	"github.com/spf13/cobra"

	"rokuwake/internal/infra/console"
	"rokuwake/internal/infra/scheduler"
)

func newUnregisterCommand(c *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unregister",
		Short: "Remove the scheduled task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registrar := scheduler.ForPlatform(runtime.GOOS, scheduler.ExecRunner{}, c.logger)
			if err := registrar.Unregister(cmd.Context(), c.cfg.Task.Name); err != nil {
				return err
			}

			console.New(cmd.InOrStdin(), cmd.OutOrStdout()).Say("Removed task %s.", c.cfg.Task.Name)
			return nil
		},
	}
}
