package availability

import (
	"slices"

	"github.com/trillium/massage-availability/internal/domain"
)

// clipToContainers intersects each window with the merged container union.
// Both inputs are ascending and disjoint, so the output is too.
func clipToContainers(windows, containers []domain.Interval) []domain.Interval {
	var out []domain.Interval
	for _, w := range windows {
		for _, c := range containers {
			if !c.Start.Before(w.End) {
				break
			}
			if part, ok := domain.Intersect(w, c); ok {
				out = append(out, part)
			}
		}
	}
	return out
}

// containerFor returns the container holding iv. When no single container
// holds it but touching or overlapping containers cover it together, the
// earliest of them (the one iv starts in) is returned.
func containerFor(iv domain.Interval, containers []domain.ContainerEvent) (domain.ContainerEvent, bool) {
	var parts []domain.ContainerEvent
	for _, c := range containers {
		if !c.Valid() {
			continue
		}
		if c.Interval.Contains(iv) {
			return c, true
		}
		if domain.Overlaps(c.Interval, iv) {
			parts = append(parts, c)
		}
	}
	if len(parts) == 0 {
		return domain.ContainerEvent{}, false
	}

	slices.SortStableFunc(parts, func(a, b domain.ContainerEvent) int {
		return a.Start.Compare(b.Start)
	})
	if parts[0].Start.After(iv.Start) {
		return domain.ContainerEvent{}, false
	}
	covered := parts[0].End
	for _, c := range parts[1:] {
		if c.Start.After(covered) {
			return domain.ContainerEvent{}, false
		}
		if c.End.After(covered) {
			covered = c.End
		}
	}
	if covered.Before(iv.End) {
		return domain.ContainerEvent{}, false
	}
	return parts[0], true
}
