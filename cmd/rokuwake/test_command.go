package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rokuwake/internal/application"
	"rokuwake/internal/domain"
	"rokuwake/internal/infra/console"
	"rokuwake/internal/infra/roku"
)

func newTestCommand(c *commandContext) *cobra.Command {
	var appName string

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run the wake-and-launch sequence once, now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := resolveDevice(cmd.Context(), c, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			client := roku.NewClient(dev)
			catalog, err := client.Apps(cmd.Context())
			if err != nil {
				return err
			}

			appID, ok := catalog.Lookup(appName)
			if !ok {
				return fmt.Errorf("%w: %q", domain.ErrAppNotFound, appName)
			}

			out := console.New(cmd.InOrStdin(), cmd.OutOrStdout())
			out.Say("Running live test against %s (app %s)...", dev, appID)

			results, err := application.NewSequencer(client, nil, c.logger).Run(cmd.Context(), domain.LiveSequence(appID))
			for _, r := range results {
				out.Say("  %-20s %s", r.Step.Path(), r.Status)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&appName, "app", "", "App name as listed by the apps command")
	_ = cmd.MarkFlagRequired("app")

	return cmd
}
