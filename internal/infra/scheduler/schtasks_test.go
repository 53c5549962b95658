package scheduler_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"slices"
	"testing"

	"rokuwake/internal/domain"
	"rokuwake/internal/infra/scheduler"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateArgs(t *testing.T) {
	path := `C:\Users\me\roku_trigger.bat`

	tests := []struct {
		choice string
		want   []string
	}{
		{"1", []string{"/create", "/tn", "RokuAutoLaunch", "/tr", `"` + path + `"`, "/sc", "DAILY", "/st", "07:30", "/f"}},
		{"2", []string{"/create", "/tn", "RokuAutoLaunch", "/tr", `"` + path + `"`, "/sc", "WEEKLY", "/d", "MON,TUE,WED,THU,FRI", "/st", "07:30", "/f"}},
		{"3", []string{"/create", "/tn", "RokuAutoLaunch", "/tr", `"` + path + `"`, "/sc", "WEEKLY", "/d", "SAT,SUN", "/st", "07:30", "/f"}},
	}

	for _, tt := range tests {
		t.Run(tt.choice, func(t *testing.T) {
			task := domain.Task{
				Name:       "RokuAutoLaunch",
				ScriptPath: path,
				Schedule:   domain.ParseScheduleChoice(tt.choice, "07:30"),
			}
			if got := scheduler.CreateArgs(task); !slices.Equal(got, tt.want) {
				t.Errorf("got  %v\nwant %v", got, tt.want)
			}
		})
	}
}

func TestSchtasks_Register(t *testing.T) {
	runner := &recordingRunner{}
	s := scheduler.NewSchtasks(runner, testLogger())

	task := domain.Task{Name: "RokuAutoLaunch", ScriptPath: `C:\roku_trigger.bat`, Schedule: domain.ParseScheduleChoice("2", "07:30")}
	if err := s.Register(context.Background(), task); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if len(runner.calls) != 1 || runner.calls[0].name != "schtasks" {
		t.Fatalf("unexpected calls: %+v", runner.calls)
	}
	if got := joinArgs(runner.last()); got != `/create /tn RokuAutoLaunch /tr "C:\roku_trigger.bat" /sc WEEKLY /d MON,TUE,WED,THU,FRI /st 07:30 /f` {
		t.Errorf("args: %s", got)
	}
}

func TestSchtasks_FailureIsClassifiedAsPermission(t *testing.T) {
	runner := &recordingRunner{responses: map[string]response{
		"schtasks /create": {out: "ERROR: Access is denied.", err: errors.New("exit status 1")},
	}}
	s := scheduler.NewSchtasks(runner, testLogger())

	err := s.Register(context.Background(), domain.Task{Name: "RokuAutoLaunch", Schedule: domain.ParseScheduleChoice("1", "07:30")})

	if !errors.Is(err, domain.ErrRegistrationFailed) {
		t.Errorf("expected ErrRegistrationFailed, got %v", err)
	}
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}

	var regErr *scheduler.RegistrationError
	if !errors.As(err, &regErr) || regErr.Output != "ERROR: Access is denied." {
		t.Errorf("unexpected error detail: %v", err)
	}
}

func TestSchtasks_MissingBinaryIsNotPermission(t *testing.T) {
	runner := &recordingRunner{responses: map[string]response{
		"schtasks /create": {err: fmt.Errorf("exec: %w", exec.ErrNotFound)},
	}}

	err := scheduler.NewSchtasks(runner, testLogger()).Register(context.Background(), domain.Task{Name: "x"})

	if !errors.Is(err, domain.ErrRegistrationFailed) {
		t.Errorf("expected ErrRegistrationFailed, got %v", err)
	}
	if errors.Is(err, domain.ErrPermissionDenied) {
		t.Errorf("missing binary must not be reported as a permission problem")
	}
}

func TestSchtasks_Unregister(t *testing.T) {
	runner := &recordingRunner{}
	if err := scheduler.NewSchtasks(runner, testLogger()).Unregister(context.Background(), "RokuAutoLaunch"); err != nil {
		t.Fatalf("Unregister error: %v", err)
	}
	if got := joinArgs(runner.last()); got != "/delete /tn RokuAutoLaunch /f" {
		t.Errorf("args: %s", got)
	}
}

func TestRemediationHint(t *testing.T) {
	if scheduler.RemediationHint("windows") == scheduler.RemediationHint("linux") {
		t.Error("hints should differ per platform")
	}
}
