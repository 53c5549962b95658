package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rokuwake/internal/infra/console"
	"rokuwake/internal/infra/roku"
)

func newAppsCommand(c *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "apps",
		Short: "List the apps installed on the Roku",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := resolveDevice(cmd.Context(), c, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			catalog, err := roku.NewClient(dev).Apps(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), console.RenderApps(catalog))
			return nil
		},
	}
}
