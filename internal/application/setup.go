package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/netip"
	"strings"

	"rokuwake/internal/domain"
)

type SetupConfig struct {
	// Address skips discovery when set.
	Address    string
	Port       uint16
	TaskName   string
	ScriptPath string
	Sleep      SleepFunc
}

// Outcome summarizes a completed setup.
type Outcome struct {
	Device      domain.Device
	AppName     string
	AppID       string
	TestResults []domain.SendResult
	Task        domain.Task
}

// Setup walks the operator from device discovery to a registered task:
// locate, fetch catalog, select app, optional live test, schedule, render
// script, register.
type Setup struct {
	cfg       SetupConfig
	locator   DeviceLocator
	connect   DeviceConnector
	scripts   ScriptWriter
	registrar TaskRegistrar
	prompt    Prompter
	logger    *slog.Logger
}

func NewSetup(
	cfg SetupConfig,
	locator DeviceLocator,
	connect DeviceConnector,
	scripts ScriptWriter,
	registrar TaskRegistrar,
	prompt Prompter,
	logger *slog.Logger,
) *Setup {
	return &Setup{
		cfg:       cfg,
		locator:   locator,
		connect:   connect,
		scripts:   scripts,
		registrar: registrar,
		prompt:    prompt,
		logger:    logger,
	}
}

func (s *Setup) Run(ctx context.Context) (*Outcome, error) {
	dev, err := s.locate(ctx)
	if err != nil {
		return nil, err
	}
	out := &Outcome{Device: dev}

	client := s.connect(dev)

	s.logger.Info("fetching app catalog", "device", dev)
	catalog, err := client.Apps(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrDeviceUnreachable) {
			err = fmt.Errorf("%w: %w", domain.ErrDeviceUnreachable, err)
		}
		return nil, err
	}

	s.prompt.ShowApps(catalog)

	name, err := s.ask("\nWhich app should I open? ")
	if err != nil {
		return nil, err
	}
	appID, ok := catalog.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrAppNotFound, name)
	}
	out.AppName = strings.ToLower(strings.TrimSpace(name))
	out.AppID = appID

	answer, err := s.ask("\nWould you like to run a test now? (y/n): ")
	if err != nil {
		return nil, err
	}
	if strings.ToLower(strings.TrimSpace(answer)) == "y" {
		out.TestResults, err = s.liveTest(ctx, client, appID)
		if err != nil {
			return nil, err
		}
	}

	schedule, err := s.collectSchedule()
	if err != nil {
		return nil, err
	}

	if err := s.scripts.WriteScript(s.cfg.ScriptPath, dev, domain.ScriptSequence(appID)); err != nil {
		return nil, fmt.Errorf("writing trigger script: %w", err)
	}
	s.logger.Info("trigger script written", "path", s.cfg.ScriptPath)

	out.Task = domain.Task{
		Name:       s.cfg.TaskName,
		ScriptPath: s.cfg.ScriptPath,
		Schedule:   schedule,
	}
	if err := s.registrar.Register(ctx, out.Task); err != nil {
		return nil, err
	}

	return out, nil
}

func (s *Setup) locate(ctx context.Context) (domain.Device, error) {
	if s.cfg.Address != "" {
		return ParseDevice(s.cfg.Address, s.cfg.Port)
	}

	s.prompt.Say("--- Step 1: Locating Roku ---")
	dev, err := s.locator.Discover(ctx)
	if err == nil {
		s.prompt.Say("Found Roku at: %s", dev)
		return dev, nil
	}
	if !errors.Is(err, domain.ErrDeviceNotFound) {
		return domain.Device{}, err
	}
	s.logger.Info("discovery missed, asking for manual address", "error", err)

	manual, err := s.ask("Could not auto-find Roku. Enter IP manually: ")
	if err != nil {
		return domain.Device{}, err
	}
	if manual == "" {
		return domain.Device{}, domain.ErrDeviceNotFound
	}
	return ParseDevice(manual, s.cfg.Port)
}

func (s *Setup) liveTest(ctx context.Context, client DeviceClient, appID string) ([]domain.SendResult, error) {
	s.prompt.Say("\n--- Running Live Test ---")
	seq := NewSequencer(client, s.cfg.Sleep, s.logger)

	results, err := seq.Run(ctx, domain.LiveSequence(appID))
	if err != nil {
		return results, fmt.Errorf("live test interrupted: %w", err)
	}

	for _, r := range results {
		if r.Err != nil {
			s.prompt.Say("  %s: %s (%v)", r.Step.Path(), r.Status, r.Err)
			continue
		}
		s.prompt.Say("  %s: %s", r.Step.Path(), r.Status)
	}
	s.prompt.Say("Test sequence complete. Check your TV!")

	return results, nil
}

func (s *Setup) collectSchedule() (domain.ScheduleSpec, error) {
	s.prompt.Say("\n--- Step 2: Scheduling ---")
	timeOfDay, err := s.ask("What time should it run? (Format HH:MM, e.g., 12:25): ")
	if err != nil {
		return domain.ScheduleSpec{}, err
	}

	s.prompt.Say("When should this run?")
	for _, c := range domain.ScheduleChoices {
		s.prompt.Say("%s. %s", c.Key, c.Label)
	}
	choice, err := s.ask("Select 1, 2, or 3: ")
	if err != nil {
		return domain.ScheduleSpec{}, err
	}

	return domain.ParseScheduleChoice(choice, timeOfDay), nil
}

// ask treats exhausted input as an empty answer.
func (s *Setup) ask(question string) (string, error) {
	answer, err := s.prompt.Ask(question)
	if errors.Is(err, io.EOF) {
		return strings.TrimSpace(answer), nil
	}
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

// ParseDevice builds a device from an operator-supplied IPv4 address.
func ParseDevice(s string, port uint16) (domain.Device, error) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil || !addr.Is4() {
		return domain.Device{}, fmt.Errorf("%w: invalid IPv4 address %q", domain.ErrDeviceNotFound, s)
	}
	dev := domain.NewDevice(addr)
	if port != 0 {
		dev.Port = port
	}
	return dev, nil
}
