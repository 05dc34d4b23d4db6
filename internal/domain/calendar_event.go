package domain

// ContainerEvent is a calendar entry bounding a restricted booking window,
// e.g. a pop-up session at a venue. Offers may only fall inside containers
// when any are supplied.
type ContainerEvent struct {
	Interval
	Summary  string
	Location string
}

// ContainerIntervals returns the intervals of the given containers.
func ContainerIntervals(containers []ContainerEvent) []Interval {
	out := make([]Interval, 0, len(containers))
	for _, c := range containers {
		out = append(out, c.Interval)
	}
	return out
}
