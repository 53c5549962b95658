package main

import (
	"context"
	"io"
	"os"

	"rokuwake/internal/application"
	"rokuwake/internal/domain"
	"rokuwake/internal/infra/console"
	"rokuwake/internal/infra/roku"
)

// scanLocator builds a prober per discovery so the progress bar only appears
// while a scan is running.
type scanLocator struct {
	ctx *commandContext
	out io.Writer
}

func (l *scanLocator) Discover(ctx context.Context) (domain.Device, error) {
	cfg := l.ctx.cfg
	timeout, err := cfg.ProbeTimeout()
	if err != nil {
		return domain.Device{}, err
	}

	proberCfg := roku.ProberConfig{
		Port:    uint16(cfg.Device.Port),
		Timeout: timeout,
		Workers: cfg.Device.ProbeWorkers,
		Marker:  cfg.Device.Marker,
	}

	if console.IsTerminal(os.Stderr) {
		progress := console.NewScanProgress(l.out, 254)
		defer progress.Done()
		proberCfg.OnProbe = progress.Increment
	}

	return roku.NewProber(proberCfg, l.ctx.logger).Discover(ctx)
}

func connectDevice(dev domain.Device) application.DeviceClient {
	return roku.NewClient(dev)
}

// resolveDevice uses the configured address or falls back to discovery.
func resolveDevice(ctx context.Context, c *commandContext, out io.Writer) (domain.Device, error) {
	if c.cfg.Device.Address != "" {
		return application.ParseDevice(c.cfg.Device.Address, uint16(c.cfg.Device.Port))
	}
	locator := &scanLocator{ctx: c, out: out}
	return locator.Discover(ctx)
}
