package main

import (
	"github.com/spf13/cobra"

	"rokuwake/internal/infra/console"
)

func newDiscoverCommand(c *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "Scan the local /24 for a Roku and print its address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			locator := &scanLocator{ctx: c, out: cmd.ErrOrStderr()}
			dev, err := locator.Discover(cmd.Context())
			if err != nil {
				return err
			}

			out := console.New(cmd.InOrStdin(), cmd.OutOrStdout())
			out.Say("Found Roku at: %s", dev)
			if dev.Model != "" {
				out.Say("  model:  %s", dev.Model)
			}
			if dev.FriendlyName != "" {
				out.Say("  name:   %s", dev.FriendlyName)
			}
			if dev.Serial != "" {
				out.Say("  serial: %s", dev.Serial)
			}
			return nil
		},
	}
}
