package domain

import (
	"fmt"
	"strings"
	"time"
)

type Frequency string

const (
	FrequencyDaily  Frequency = "DAILY"
	FrequencyWeekly Frequency = "WEEKLY"
)

type Weekday string

const (
	Monday    Weekday = "MON"
	Tuesday   Weekday = "TUE"
	Wednesday Weekday = "WED"
	Thursday  Weekday = "THU"
	Friday    Weekday = "FRI"
	Saturday  Weekday = "SAT"
	Sunday    Weekday = "SUN"
)

var (
	Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}
	Weekend  = []Weekday{Saturday, Sunday}
)

// ScheduleSpec describes when the trigger script runs. Days is empty iff
// Frequency is FrequencyDaily.
type ScheduleSpec struct {
	TimeOfDay string
	Frequency Frequency
	Days      []Weekday
}

// Task is a scheduled execution of a trigger script.
type Task struct {
	Name       string
	ScriptPath string
	Schedule   ScheduleSpec
}

// ScheduleChoices lists the menu offered to the operator, keyed by choice.
var ScheduleChoices = []struct {
	Key   string
	Label string
}{
	{"1", "Every day"},
	{"2", "Weekdays only (Mon-Fri)"},
	{"3", "Weekends only (Sat-Sun)"},
}

// ParseScheduleChoice maps a menu choice to a ScheduleSpec. Unknown choices
// fall back to daily.
func ParseScheduleChoice(choice, timeOfDay string) ScheduleSpec {
	spec := ScheduleSpec{TimeOfDay: strings.TrimSpace(timeOfDay), Frequency: FrequencyDaily}

	switch strings.TrimSpace(choice) {
	case "2":
		spec.Frequency = FrequencyWeekly
		spec.Days = append([]Weekday(nil), Weekdays...)
	case "3":
		spec.Frequency = FrequencyWeekly
		spec.Days = append([]Weekday(nil), Weekend...)
	}

	return spec
}

// DayList joins the day-set the way schtasks expects it, e.g. "MON,TUE".
func (s ScheduleSpec) DayList() string {
	parts := make([]string, len(s.Days))
	for i, d := range s.Days {
		parts[i] = string(d)
	}
	return strings.Join(parts, ",")
}

// Clock parses TimeOfDay as HH:MM.
func (s ScheduleSpec) Clock() (hour, minute int, err error) {
	t, err := time.Parse("15:04", s.TimeOfDay)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q, expected HH:MM", s.TimeOfDay)
	}
	return t.Hour(), t.Minute(), nil
}

// CronExpr renders the schedule as a five-field cron expression.
func (s ScheduleSpec) CronExpr() (string, error) {
	hour, minute, err := s.Clock()
	if err != nil {
		return "", err
	}

	dow := "*"
	if s.Frequency == FrequencyWeekly && len(s.Days) > 0 {
		nums := make([]string, 0, len(s.Days))
		for _, d := range s.Days {
			n, ok := cronWeekday[d]
			if !ok {
				return "", fmt.Errorf("unknown weekday %q", d)
			}
			nums = append(nums, n)
		}
		dow = strings.Join(nums, ",")
	}

	return fmt.Sprintf("%d %d * * %s", minute, hour, dow), nil
}

var cronWeekday = map[Weekday]string{
	Sunday:    "0",
	Monday:    "1",
	Tuesday:   "2",
	Wednesday: "3",
	Thursday:  "4",
	Friday:    "5",
	Saturday:  "6",
}

func (s ScheduleSpec) String() string {
	if s.Frequency == FrequencyDaily {
		return fmt.Sprintf("%s (%s)", s.TimeOfDay, s.Frequency)
	}
	return fmt.Sprintf("%s (%s %s)", s.TimeOfDay, s.Frequency, s.DayList())
}
