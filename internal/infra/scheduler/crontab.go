package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/adhocore/gronx"

	"rokuwake/internal/domain"
)

const tagPrefix = "# rokuwake:"

// Crontab registers tasks as tagged lines in the invoking user's crontab.
type Crontab struct {
	runner Runner
	logger *slog.Logger
}

func NewCrontab(runner Runner, logger *slog.Logger) *Crontab {
	return &Crontab{runner: runner, logger: logger}
}

func (c *Crontab) Register(ctx context.Context, task domain.Task) error {
	expr, err := task.Schedule.CronExpr()
	if err != nil {
		return &RegistrationError{Task: task.Name, Err: err}
	}
	if !gronx.IsValid(expr) {
		return &RegistrationError{Task: task.Name, Err: fmt.Errorf("invalid cron expression %q", expr)}
	}

	current, err := c.read(ctx, task.Name)
	if err != nil {
		return err
	}

	lines := withoutTask(current, task.Name)
	lines = append(lines, CronLine(expr, task))

	c.logger.Info("registering crontab entry", "task", task.Name, "expr", expr)
	return c.write(ctx, task.Name, lines)
}

func (c *Crontab) Unregister(ctx context.Context, name string) error {
	current, err := c.read(ctx, name)
	if err != nil {
		return err
	}
	return c.write(ctx, name, withoutTask(current, name))
}

// CronLine renders the crontab entry for task.
func CronLine(expr string, task domain.Task) string {
	return fmt.Sprintf("%s %s %s%s", expr, shellQuote(task.ScriptPath), tagPrefix, task.Name)
}

func (c *Crontab) read(ctx context.Context, name string) ([]string, error) {
	out, err := c.runner.Run(ctx, nil, "crontab", "-l")
	if err != nil {
		if strings.Contains(strings.ToLower(string(out)), "no crontab") {
			return nil, nil
		}
		return nil, &RegistrationError{
			Task:             name,
			Output:           string(out),
			Err:              fmt.Errorf("reading crontab: %w", err),
			PermissionLikely: looksDenied(string(out)),
		}
	}
	return splitLines(string(out)), nil
}

func (c *Crontab) write(ctx context.Context, name string, lines []string) error {
	content := strings.Join(lines, "\n")
	if content != "" {
		content += "\n"
	}

	out, err := c.runner.Run(ctx, []byte(content), "crontab", "-")
	if err != nil {
		return &RegistrationError{
			Task:             name,
			Output:           string(out),
			Err:              fmt.Errorf("installing crontab: %w", err),
			PermissionLikely: looksDenied(string(out)),
		}
	}
	return nil
}

func withoutTask(lines []string, name string) []string {
	tag := tagPrefix + name
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasSuffix(strings.TrimSpace(line), tag) {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func looksDenied(output string) bool {
	out := strings.ToLower(output)
	return strings.Contains(out, "not allowed") || strings.Contains(out, "permission denied")
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
