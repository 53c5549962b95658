package application_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/netip"
	"slices"
	"testing"
	"time"

	"rokuwake/internal/application"
	"rokuwake/internal/domain"
)

type mockLocator struct {
	device domain.Device
	err    error
	calls  int
}

func (m *mockLocator) Discover(_ context.Context) (domain.Device, error) {
	m.calls++
	return m.device, m.err
}

type mockClient struct {
	catalog  domain.AppCatalog
	appsErr  error
	sendErr  error
	sent     []string
	appsCall int
}

func (m *mockClient) Apps(_ context.Context) (domain.AppCatalog, error) {
	m.appsCall++
	return m.catalog, m.appsErr
}

func (m *mockClient) Keypress(_ context.Context, key domain.Key) error {
	m.sent = append(m.sent, "keypress/"+string(key))
	return m.sendErr
}

func (m *mockClient) Launch(_ context.Context, appID string) error {
	m.sent = append(m.sent, "launch/"+appID)
	return m.sendErr
}

type mockScripts struct {
	path   string
	device domain.Device
	seq    domain.Sequence
	err    error
}

func (m *mockScripts) WriteScript(path string, dev domain.Device, seq domain.Sequence) error {
	m.path, m.device, m.seq = path, dev, seq
	return m.err
}

type mockRegistrar struct {
	tasks []domain.Task
	err   error
}

func (m *mockRegistrar) Register(_ context.Context, task domain.Task) error {
	m.tasks = append(m.tasks, task)
	return m.err
}

type mockPrompter struct {
	answers []string
	asked   []string
	said    []string
	shown   domain.AppCatalog
}

func (m *mockPrompter) Ask(question string) (string, error) {
	m.asked = append(m.asked, question)
	if len(m.answers) == 0 {
		return "", io.EOF
	}
	answer := m.answers[0]
	m.answers = m.answers[1:]
	return answer, nil
}

func (m *mockPrompter) Say(format string, args ...any) {
	m.said = append(m.said, fmt.Sprintf(format, args...))
}

func (m *mockPrompter) ShowApps(catalog domain.AppCatalog) {
	m.shown = catalog
}

type fixture struct {
	locator   *mockLocator
	client    *mockClient
	scripts   *mockScripts
	registrar *mockRegistrar
	prompt    *mockPrompter
	sleeps    []time.Duration
	connected []domain.Device
}

func newFixture(answers ...string) *fixture {
	return &fixture{
		locator: &mockLocator{device: domain.NewDevice(netip.MustParseAddr("192.168.1.42"))},
		client: &mockClient{catalog: domain.NewAppCatalog([]domain.App{
			{ID: "12", Name: "Netflix"},
			{ID: "837", Name: "YouTube"},
		})},
		scripts:   &mockScripts{},
		registrar: &mockRegistrar{},
		prompt:    &mockPrompter{answers: answers},
	}
}

func (f *fixture) setup(cfg application.SetupConfig) *application.Setup {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cfg.TaskName == "" {
		cfg.TaskName = "RokuAutoLaunch"
	}
	if cfg.ScriptPath == "" {
		cfg.ScriptPath = "/work/roku_trigger.bat"
	}
	cfg.Sleep = func(_ context.Context, d time.Duration) error {
		f.sleeps = append(f.sleeps, d)
		return nil
	}

	connect := func(dev domain.Device) application.DeviceClient {
		f.connected = append(f.connected, dev)
		return f.client
	}

	return application.NewSetup(cfg, f.locator, connect, f.scripts, f.registrar, f.prompt, logger)
}

func TestSetup_WeekdayScheduleWithoutTest(t *testing.T) {
	f := newFixture("netflix", "n", "07:30", "2")

	out, err := f.setup(application.SetupConfig{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if out.Device.Addr.String() != "192.168.1.42" || out.AppID != "12" || out.AppName != "netflix" {
		t.Errorf("unexpected outcome: %+v", out)
	}

	if len(f.client.sent) != 0 {
		t.Errorf("live test ran although declined: %v", f.client.sent)
	}

	if f.scripts.path != "/work/roku_trigger.bat" {
		t.Errorf("script path: got %q", f.scripts.path)
	}
	if got := f.scripts.seq; len(got) != 5 || got[4].AppID != "12" || got[1].Delay != domain.ScriptPowerOnGap {
		t.Errorf("unexpected script sequence: %+v", got)
	}

	if len(f.registrar.tasks) != 1 {
		t.Fatalf("registrations: got %d, want 1", len(f.registrar.tasks))
	}
	task := f.registrar.tasks[0]
	if task.Name != "RokuAutoLaunch" || task.ScriptPath != "/work/roku_trigger.bat" {
		t.Errorf("unexpected task: %+v", task)
	}
	if task.Schedule.Frequency != domain.FrequencyWeekly || task.Schedule.TimeOfDay != "07:30" {
		t.Errorf("unexpected schedule: %+v", task.Schedule)
	}
	if !slices.Equal(task.Schedule.Days, domain.Weekdays) {
		t.Errorf("days: got %v", task.Schedule.Days)
	}

	if len(f.prompt.shown) != 2 {
		t.Errorf("apps shown: got %d, want 2", len(f.prompt.shown))
	}
}

func TestSetup_LiveTest(t *testing.T) {
	f := newFixture("YouTube", "Y", "12:25", "1")

	out, err := f.setup(application.SetupConfig{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	want := []string{"keypress/PowerOn", "keypress/PowerOn", "launch/837"}
	if !slices.Equal(f.client.sent, want) {
		t.Errorf("sent: got %v, want %v", f.client.sent, want)
	}
	if !slices.Equal(f.sleeps, []time.Duration{2 * time.Second, 5 * time.Second}) {
		t.Errorf("sleeps: got %v", f.sleeps)
	}

	if len(out.TestResults) != 3 {
		t.Fatalf("results: got %d, want 3", len(out.TestResults))
	}
	for _, r := range out.TestResults {
		if r.Status != domain.SendOK {
			t.Errorf("result %s: %s", r.Step.Path(), r.Status)
		}
	}

	if got := f.registrar.tasks[0].Schedule; got.Frequency != domain.FrequencyDaily || len(got.Days) != 0 {
		t.Errorf("unexpected schedule: %+v", got)
	}
}

func TestSetup_LiveTestFailuresAreReportedNotFatal(t *testing.T) {
	f := newFixture("netflix", "y", "07:30", "3")
	f.client.sendErr = errors.New("connection reset")

	out, err := f.setup(application.SetupConfig{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if len(out.TestResults) != 3 {
		t.Fatalf("results: got %d, want 3", len(out.TestResults))
	}
	for _, r := range out.TestResults {
		if r.Status != domain.SendFailed {
			t.Errorf("result %s: got %s, want failed", r.Step.Path(), r.Status)
		}
	}
	if len(f.registrar.tasks) != 1 {
		t.Error("task should still be registered after a failed live test")
	}
}

func TestSetup_ManualAddressFallback(t *testing.T) {
	f := newFixture("10.0.0.7", "netflix", "n", "07:30", "1")
	f.locator.err = fmt.Errorf("%w on 10.0.0.0/24", domain.ErrDeviceNotFound)

	out, err := f.setup(application.SetupConfig{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if out.Device.Addr.String() != "10.0.0.7" || out.Device.Port != domain.ControlPort {
		t.Errorf("device: got %+v", out.Device)
	}
	if len(f.connected) != 1 || f.connected[0].Addr != out.Device.Addr {
		t.Errorf("connected to %v", f.connected)
	}
}

func TestSetup_ConfiguredAddressSkipsDiscovery(t *testing.T) {
	f := newFixture("netflix", "n", "07:30", "1")

	out, err := f.setup(application.SetupConfig{Address: "192.168.50.3"}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if f.locator.calls != 0 {
		t.Errorf("discovery ran %d times", f.locator.calls)
	}
	if out.Device.Addr.String() != "192.168.50.3" {
		t.Errorf("device: got %s", out.Device)
	}
}

func TestSetup_Aborts(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		prepare func(f *fixture)
		wantErr error
	}{
		{
			name:    "no device and no manual address",
			answers: []string{""},
			prepare: func(f *fixture) { f.locator.err = domain.ErrDeviceNotFound },
			wantErr: domain.ErrDeviceNotFound,
		},
		{
			name:    "no device and input closed",
			prepare: func(f *fixture) { f.locator.err = domain.ErrDeviceNotFound },
			wantErr: domain.ErrDeviceNotFound,
		},
		{
			name:    "invalid manual address",
			answers: []string{"living-room-tv"},
			prepare: func(f *fixture) { f.locator.err = domain.ErrDeviceNotFound },
			wantErr: domain.ErrDeviceNotFound,
		},
		{
			name:    "catalog fetch fails",
			prepare: func(f *fixture) { f.client.appsErr = errors.New("connection refused") },
			wantErr: domain.ErrDeviceUnreachable,
		},
		{
			name:    "app not in catalog",
			answers: []string{"hulu"},
			wantErr: domain.ErrAppNotFound,
		},
		{
			name:    "registration denied",
			answers: []string{"netflix", "n", "07:30", "1"},
			prepare: func(f *fixture) {
				f.registrar.err = fmt.Errorf("%w: %w", domain.ErrRegistrationFailed, domain.ErrPermissionDenied)
			},
			wantErr: domain.ErrPermissionDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.answers...)
			if tt.prepare != nil {
				tt.prepare(f)
			}

			out, err := f.setup(application.SetupConfig{}).Run(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if out != nil {
				t.Errorf("expected no outcome, got %+v", out)
			}
		})
	}
}

func TestSetup_AbortBeforeScriptLeavesNothingBehind(t *testing.T) {
	f := newFixture("hulu")

	_, _ = f.setup(application.SetupConfig{}).Run(context.Background())

	if f.scripts.path != "" || len(f.registrar.tasks) != 0 {
		t.Error("script or task created after lookup miss")
	}
}

func TestSetup_UnknownScheduleChoiceFallsBackToDaily(t *testing.T) {
	f := newFixture("netflix", "", "06:00", "weekends please")

	out, err := f.setup(application.SetupConfig{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if out.Task.Schedule.Frequency != domain.FrequencyDaily {
		t.Errorf("frequency: got %s", out.Task.Schedule.Frequency)
	}
}
