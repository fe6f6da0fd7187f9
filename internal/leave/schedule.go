package leave

import (
	"math"
	"time"

	leaveerrors "leavedesk/internal/leave/errors"
)

// Edited field tags for schedule reconciliation. Exactly one derivation runs
// per edit: date edits recompute the day count, a day-count edit recomputes
// the end date. Never both.
const (
	EditStartDate = "start_date"
	EditEndDate   = "end_date"
	EditDays      = "days"
)

type Schedule struct {
	StartDate time.Time
	EndDate   time.Time
	Days      float64
}

type ScheduleEdit struct {
	Edited    string
	StartDate time.Time
	EndDate   time.Time
	Days      float64
}

// Reconcile applies one tagged edit and returns the consistent schedule.
func Reconcile(edit ScheduleEdit) (Schedule, error) {
	switch edit.Edited {
	case EditStartDate, EditEndDate:
		if edit.StartDate.IsZero() || edit.EndDate.IsZero() {
			return Schedule{StartDate: edit.StartDate, EndDate: edit.EndDate, Days: edit.Days}, nil
		}
		if edit.EndDate.Before(edit.StartDate) {
			return Schedule{}, leaveerrors.ErrInvalidDateRange
		}
		return Schedule{
			StartDate: edit.StartDate,
			EndDate:   edit.EndDate,
			Days:      float64(inclusiveDays(edit.StartDate, edit.EndDate)),
		}, nil
	case EditDays:
		if edit.StartDate.IsZero() {
			return Schedule{StartDate: edit.StartDate, Days: edit.Days}, nil
		}
		if edit.Days <= 0 {
			return Schedule{}, leaveerrors.ErrInvalidLeaveDays
		}
		return Schedule{
			StartDate: edit.StartDate,
			EndDate:   endDateFor(edit.StartDate, edit.Days),
			Days:      edit.Days,
		}, nil
	default:
		return Schedule{}, leaveerrors.ErrInvalidScheduleEdit
	}
}

// inclusiveDays counts both endpoints: 06-10 through 06-12 is 3 days.
func inclusiveDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// endDateFor derives the end date from the start and a day count; fractional
// counts occupy the whole final calendar day.
func endDateFor(start time.Time, days float64) time.Time {
	return start.AddDate(0, 0, int(math.Ceil(days))-1)
}

const dateLayout = "2006-01-02"

// parseDate reads a calendar date. Dates live at UTC midnight so span
// arithmetic is immune to DST; "today" comparisons rebuild the local
// calendar day in the same frame.
func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
