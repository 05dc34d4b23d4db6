package availability

import (
	"time"

	"github.com/trillium/massage-availability/internal/domain"
	"github.com/trillium/massage-availability/internal/timeutil"
)

// PotentialTimesRequest describes the raw candidate grid to enumerate.
type PotentialTimesRequest struct {
	Start    domain.DayWithStartEnd
	End      domain.DayWithStartEnd
	Schedule domain.Schedule
	Duration time.Duration
	// Containers, when non-empty, restrict candidates to their union.
	Containers []domain.ContainerEvent
}

// GeneratePotentialTimes enumerates every interval [start, start+Duration)
// that fits inside the template windows of each day from Start to End,
// stepping by Schedule.Step from each window's opening. Busy time and lead
// time are ignored. The result is ascending; an empty result means no
// availability and is not an error.
func GeneratePotentialTimes(req PotentialTimesRequest) []domain.Interval {
	out := make([]domain.Interval, 0)
	if req.Duration <= 0 || req.Schedule.Step <= 0 || req.Schedule.Location == nil {
		return out
	}

	loc := req.Schedule.Location
	restrict := len(req.Containers) > 0
	containers := domain.MergeIntervals(domain.ContainerIntervals(req.Containers))

	for _, midnight := range timeutil.DaysBetween(req.Start.Date(loc), req.End.Date(loc), loc) {
		windows := dayWindows(midnight, req.Schedule)
		if restrict {
			windows = clipToContainers(windows, containers)
		}

		for _, w := range windows {
			for start := w.Start; !start.Add(req.Duration).After(w.End); start = start.Add(req.Schedule.Step) {
				out = append(out, domain.Interval{Start: start, End: start.Add(req.Duration)})
			}
		}
	}

	return out
}
