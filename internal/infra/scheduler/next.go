package scheduler

import (
	"fmt"
	"time"

	"github.com/adhocore/gronx"

	"rokuwake/internal/domain"
)

// NextRun returns the first time after ref the schedule fires.
func NextRun(spec domain.ScheduleSpec, ref time.Time) (time.Time, error) {
	expr, err := spec.CronExpr()
	if err != nil {
		return time.Time{}, err
	}

	next, err := gronx.NextTickAfter(expr, ref, false)
	if err != nil {
		return time.Time{}, fmt.Errorf("computing next run for %q: %w", expr, err)
	}
	return next, nil
}
