package main

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"rokuwake/internal/application"
	"rokuwake/internal/infra/console"
	"rokuwake/internal/infra/scheduler"
	"rokuwake/internal/infra/script"
)

func runSetup(cmd *cobra.Command, c *commandContext) error {
	scriptPath, err := c.scriptPath()
	if err != nil {
		return err
	}

	lock := flock.New(scriptPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquiring setup lock: %w", err)
	}
	if !locked {
		return errors.New("another rokuwake setup is already running")
	}
	defer lock.Unlock()

	out := cmd.OutOrStdout()
	prompt := console.New(cmd.InOrStdin(), out)

	setup := application.NewSetup(
		application.SetupConfig{
			Address:    c.cfg.Device.Address,
			Port:       uint16(c.cfg.Device.Port),
			TaskName:   c.cfg.Task.Name,
			ScriptPath: scriptPath,
		},
		&scanLocator{ctx: c, out: cmd.ErrOrStderr()},
		connectDevice,
		script.NewWriter(afero.NewOsFs(), c.flavor),
		scheduler.ForPlatform(runtime.GOOS, scheduler.ExecRunner{}, c.logger),
		prompt,
		c.logger,
	)

	outcome, err := setup.Run(cmd.Context())
	if err != nil {
		c.logger.Debug("setup aborted", "error", err)
		return err
	}

	prompt.Say("\n✅ SUCCESS!")
	prompt.Say("Task scheduled for %s.", outcome.Task.Schedule)
	prompt.Say("Trigger script: %s", outcome.Task.ScriptPath)
	if next, err := scheduler.NextRun(outcome.Task.Schedule, time.Now()); err == nil {
		prompt.Say("Next run: %s", next.Format("Mon Jan 2 15:04"))
	}

	return nil
}
