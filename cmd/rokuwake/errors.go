package main

import (
	"errors"
	"fmt"
	"runtime"

	"rokuwake/internal/domain"
	"rokuwake/internal/infra/scheduler"
)

// describeError turns setup failures into operator-facing messages.
func describeError(err error) string {
	switch {
	case errors.Is(err, domain.ErrPermissionDenied):
		msg := "\n❌ ERROR: " + scheduler.RemediationHint(runtime.GOOS)
		if scheduler.IsElevated() {
			msg += fmt.Sprintf("\n(already elevated; scheduler said: %v)", err)
		}
		return msg
	case errors.Is(err, domain.ErrRegistrationFailed):
		return fmt.Sprintf("\n❌ ERROR: could not register the scheduled task: %v", err)
	case errors.Is(err, domain.ErrDeviceUnreachable):
		return "Error connecting to Roku. Check your network."
	case errors.Is(err, domain.ErrAppNotFound):
		return "App not found."
	case errors.Is(err, domain.ErrDeviceNotFound):
		return fmt.Sprintf("No Roku found: %v", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
