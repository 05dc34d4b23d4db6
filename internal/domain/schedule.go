package domain

import (
	"time"

	"github.com/trillium/massage-availability/pkg/types"
)

// WindowRange is one wall-clock opening range of a weekday, e.g. 09:00-17:00.
type WindowRange struct {
	Start types.TimeString
	End   types.TimeString
}

// Valid reports whether the range opens before it closes.
func (w WindowRange) Valid() bool {
	return w.Start.IsBefore(w.End)
}

// WeeklyTemplate maps a weekday to its opening ranges in the owner's home zone.
type WeeklyTemplate map[time.Weekday][]WindowRange

// Schedule is the owner's standing availability: template, home zone and the
// appointment granularity. It is built once from configuration and read-only.
type Schedule struct {
	Template WeeklyTemplate
	Location *time.Location
	Step     time.Duration
}

// DayWithStartEnd describes one business day: its calendar date and the
// instants the template opens and closes on that day.
type DayWithStartEnd struct {
	Year  int
	Month int
	Day   int
	Start time.Time
	End   time.Time
}

// Date returns the calendar date as midnight in loc.
func (d DayWithStartEnd) Date(loc *time.Location) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
}

// IsZero reports whether the day was never set.
func (d DayWithStartEnd) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}
