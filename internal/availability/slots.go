package availability

import (
	"fmt"
	"slices"
	"time"

	"github.com/trillium/massage-availability/internal/domain"
)

// SlotsRequest is the input of one availability computation.
type SlotsRequest struct {
	// Start and End bound the scan by calendar day; Start.Start and End.End
	// bound the offers returned.
	Start    domain.DayWithStartEnd
	End      domain.DayWithStartEnd
	Schedule domain.Schedule

	Duration         int // minutes
	AllowedDurations []int
	// Strict rejects a Duration outside AllowedDurations instead of computing it.
	Strict bool

	Busy       []domain.Interval
	Containers []domain.ContainerEvent
	LeadTime   int // minutes
	Now        time.Time

	// Location is attached to offers that do not fall inside a located container.
	Location string
}

// GetAvailableSlots generates the candidate grid, removes busy and lead-time
// violations, and clips the result to [Start.Start, End.End].
// An empty slice is a normal result.
func GetAvailableSlots(req SlotsRequest) ([]domain.Offer, error) {
	if err := validateSlotsRequest(req); err != nil {
		return nil, err
	}

	potential := GeneratePotentialTimes(PotentialTimesRequest{
		Start:      req.Start,
		End:        req.End,
		Schedule:   req.Schedule,
		Duration:   time.Duration(req.Duration) * time.Minute,
		Containers: req.Containers,
	})
	resolved := ResolveAvailability(potential, req.Busy, req.Now, req.LeadTime)

	window := domain.Interval{Start: req.Start.Start, End: req.End.End}
	offers := make([]domain.Offer, 0, len(resolved))
	for _, iv := range resolved {
		if !window.Contains(iv) {
			continue
		}

		location := req.Location
		if c, ok := containerFor(iv, req.Containers); ok && c.Location != "" {
			location = c.Location
		}

		offers = append(offers, domain.Offer{
			Start:    iv.Start,
			End:      iv.End,
			Location: location,
		})
	}

	return offers, nil
}

// GetAvailableSlotsByDuration computes offers for every duration so a caller
// can switch durations without recomputing. An empty durations list means
// req.AllowedDurations.
func GetAvailableSlotsByDuration(req SlotsRequest, durations []int) (map[int][]domain.Offer, error) {
	if len(durations) == 0 {
		durations = req.AllowedDurations
	}
	if len(durations) == 0 {
		return nil, fmt.Errorf("%w: no durations requested", domain.ErrConfiguration)
	}

	result := make(map[int][]domain.Offer, len(durations))
	for _, d := range durations {
		perDuration := req
		perDuration.Duration = d

		offers, err := GetAvailableSlots(perDuration)
		if err != nil {
			return nil, err
		}
		result[d] = offers
	}
	return result, nil
}

func validateSlotsRequest(req SlotsRequest) error {
	if req.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", domain.ErrConfiguration, req.Duration)
	}
	if req.Strict && !slices.Contains(req.AllowedDurations, req.Duration) {
		return fmt.Errorf("%w: duration %d is not in allowed set %v", domain.ErrConfiguration, req.Duration, req.AllowedDurations)
	}
	if req.Start.IsZero() || req.End.IsZero() || req.Start.Start.IsZero() || req.End.End.IsZero() {
		return fmt.Errorf("%w: request window bounds are required", domain.ErrConfiguration)
	}
	if req.Schedule.Location == nil || req.Schedule.Step <= 0 {
		return fmt.Errorf("%w: schedule needs a location and a positive step", domain.ErrConfiguration)
	}
	return nil
}
