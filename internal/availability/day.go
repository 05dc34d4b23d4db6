package availability

import (
	"time"

	"github.com/trillium/massage-availability/internal/domain"
)

// DayFor builds the DayWithStartEnd of date's calendar day in the schedule's
// zone. Start and End are the earliest opening and latest closing of the
// weekday's template ranges; a closed weekday gets Start == End == midnight.
func DayFor(date time.Time, schedule domain.Schedule) domain.DayWithStartEnd {
	local := date.In(schedule.Location)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, schedule.Location)

	day := domain.DayWithStartEnd{
		Year:  local.Year(),
		Month: int(local.Month()),
		Day:   local.Day(),
		Start: midnight,
		End:   midnight,
	}

	windows := dayWindows(midnight, schedule)
	if len(windows) == 0 {
		return day
	}
	day.Start = windows[0].Start
	day.End = windows[len(windows)-1].End
	return day
}

// dayWindows resolves the template ranges of midnight's weekday to instants,
// merged and in ascending order.
func dayWindows(midnight time.Time, schedule domain.Schedule) []domain.Interval {
	ranges := schedule.Template[midnight.Weekday()]
	if len(ranges) == 0 {
		return nil
	}

	y, m, d := midnight.Date()
	windows := make([]domain.Interval, 0, len(ranges))
	for _, r := range ranges {
		if !r.Valid() {
			continue
		}
		windows = append(windows, domain.Interval{
			Start: r.Start.On(y, m, d, schedule.Location),
			End:   r.End.On(y, m, d, schedule.Location),
		})
	}
	return domain.MergeIntervals(windows)
}
