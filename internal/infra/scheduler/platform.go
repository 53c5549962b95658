package scheduler

import (
	"context"
	"log/slog"

	"rokuwake/internal/domain"
)

type Registrar interface {
	Register(ctx context.Context, task domain.Task) error
	Unregister(ctx context.Context, name string) error
}

// ForPlatform returns the registrar native to goos.
func ForPlatform(goos string, runner Runner, logger *slog.Logger) Registrar {
	if goos == "windows" {
		return NewSchtasks(runner, logger)
	}
	return NewCrontab(runner, logger)
}
