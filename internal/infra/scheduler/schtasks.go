package scheduler

import (
	"context"
	"log/slog"

	"rokuwake/internal/domain"
)

// Schtasks registers tasks through the Windows schtasks utility.
type Schtasks struct {
	runner Runner
	logger *slog.Logger
}

func NewSchtasks(runner Runner, logger *slog.Logger) *Schtasks {
	return &Schtasks{runner: runner, logger: logger}
}

func (s *Schtasks) Register(ctx context.Context, task domain.Task) error {
	args := CreateArgs(task)
	s.logger.Info("registering scheduled task", "task", task.Name, "schedule", task.Schedule.String())

	out, err := s.runner.Run(ctx, nil, "schtasks", args...)
	if err != nil {
		// schtasks exits non-zero for every failure; access denied is by far
		// the most common one.
		return &RegistrationError{
			Task:             task.Name,
			Output:           string(out),
			Err:              err,
			PermissionLikely: !launchFailed(err),
		}
	}

	s.logger.Debug("schtasks output", "output", string(out))
	return nil
}

func (s *Schtasks) Unregister(ctx context.Context, name string) error {
	out, err := s.runner.Run(ctx, nil, "schtasks", "/delete", "/tn", name, "/f")
	if err != nil {
		return &RegistrationError{
			Task:             name,
			Output:           string(out),
			Err:              err,
			PermissionLikely: !launchFailed(err),
		}
	}
	return nil
}

// CreateArgs builds the schtasks /create argument list for task.
func CreateArgs(task domain.Task) []string {
	args := []string{
		"/create",
		"/tn", task.Name,
		"/tr", `"` + task.ScriptPath + `"`,
		"/sc", string(task.Schedule.Frequency),
	}
	if task.Schedule.Frequency == domain.FrequencyWeekly && len(task.Schedule.Days) > 0 {
		args = append(args, "/d", task.Schedule.DayList())
	}
	return append(args, "/st", task.Schedule.TimeOfDay, "/f")
}
