package availability

import (
	"sort"
	"time"

	"github.com/trillium/massage-availability/internal/domain"
)

// ResolveAvailability keeps the potential intervals that start no earlier
// than now+leadTimeMinutes and overlap no busy interval. A partial overlap
// disqualifies the whole interval. Input order is preserved.
//
// Busy intervals may be unsorted, overlapping or zero-length; they are merged
// once and each candidate is checked by binary search.
func ResolveAvailability(potential, busy []domain.Interval, now time.Time, leadTimeMinutes int) []domain.Interval {
	cutoff := now.Add(time.Duration(leadTimeMinutes) * time.Minute)
	blocked := domain.MergeIntervals(busy)

	out := make([]domain.Interval, 0, len(potential))
	for _, p := range potential {
		if p.Start.Before(cutoff) {
			continue
		}
		if overlapsAny(p, blocked) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// overlapsAny expects blocked to be sorted and disjoint.
func overlapsAny(iv domain.Interval, blocked []domain.Interval) bool {
	i := sort.Search(len(blocked), func(i int) bool {
		return blocked[i].End.After(iv.Start)
	})
	return i < len(blocked) && domain.Overlaps(iv, blocked[i])
}
