package scheduler

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"rokuwake/internal/domain"
)

// RegistrationError reports a failed scheduler invocation. It always matches
// domain.ErrRegistrationFailed and additionally domain.ErrPermissionDenied
// when the failure looks privilege related. That classification is a guess.
type RegistrationError struct {
	Task             string
	Output           string
	Err              error
	PermissionLikely bool
}

func (e *RegistrationError) Error() string {
	msg := fmt.Sprintf("registering task %q: %v", e.Task, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

func (e *RegistrationError) Unwrap() []error {
	errs := []error{domain.ErrRegistrationFailed, e.Err}
	if e.PermissionLikely {
		errs = append(errs, domain.ErrPermissionDenied)
	}
	return errs
}

// launchFailed reports errors where the scheduler binary never ran.
func launchFailed(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}

// RemediationHint is the operator advice shown for ErrPermissionDenied.
func RemediationHint(goos string) string {
	if goos == "windows" {
		return "Please run this as an ADMINISTRATOR (Right-click Terminal > Run as Admin)."
	}
	return "Check that your user may edit its crontab (see /etc/cron.allow and /etc/cron.deny)."
}
