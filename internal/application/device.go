package application

import (
	"context"

	"rokuwake/internal/domain"
)

type DeviceLocator interface {
	Discover(ctx context.Context) (domain.Device, error)
}

type DeviceClient interface {
	Apps(ctx context.Context) (domain.AppCatalog, error)
	Keypress(ctx context.Context, key domain.Key) error
	Launch(ctx context.Context, appID string) error
}

// DeviceConnector returns a client bound to dev.
type DeviceConnector func(dev domain.Device) DeviceClient

type ScriptWriter interface {
	WriteScript(path string, dev domain.Device, seq domain.Sequence) error
}

type TaskRegistrar interface {
	Register(ctx context.Context, task domain.Task) error
}

// Prompter collects operator input. Ask returns io.EOF when input is exhausted.
type Prompter interface {
	Ask(question string) (string, error)
	Say(format string, args ...any)
	ShowApps(catalog domain.AppCatalog)
}
