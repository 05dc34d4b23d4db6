package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trillium/massage-availability/internal/domain"
)

func baseSlotsRequest(t *testing.T) SlotsRequest {
	t.Helper()
	schedule := weekdaySchedule(t)
	loc := schedule.Location
	return SlotsRequest{
		Start:            DayFor(localTime(loc, 2025, 1, 1, 0, 0), schedule),
		End:              DayFor(localTime(loc, 2025, 1, 3, 0, 0), schedule),
		Schedule:         schedule,
		Duration:         60,
		AllowedDurations: []int{60, 90, 120},
		LeadTime:         0,
		Now:              localTime(loc, 2024, 12, 31, 0, 0),
		Location:         "Studio",
	}
}

func TestGetAvailableSlots_ThreeDays(t *testing.T) {
	req := baseSlotsRequest(t)

	offers, err := GetAvailableSlots(req)
	require.NoError(t, err)

	require.Len(t, offers, 45)
	for _, o := range offers {
		assert.Equal(t, 60, o.DurationMinutes())
		assert.Equal(t, "Studio", o.Location)
		assert.Empty(t, o.ClassName)
	}
}

func TestGetAvailableSlots_ClipsToCallerWindow(t *testing.T) {
	req := baseSlotsRequest(t)
	loc := req.Schedule.Location
	// Narrow the caller window to Wednesday 13:00 through Friday 11:00.
	req.Start.Start = localTime(loc, 2025, 1, 1, 13, 0)
	req.End.End = localTime(loc, 2025, 1, 3, 11, 0)

	offers, err := GetAvailableSlots(req)
	require.NoError(t, err)

	starts := offerStarts(offers, loc)
	assert.Equal(t, "01-01 13:00", starts[0])
	assert.Equal(t, "01-03 10:00", starts[len(starts)-1])
	for _, o := range offers {
		assert.False(t, o.Start.Before(req.Start.Start))
		assert.False(t, o.End.After(req.End.End))
	}
}

func TestGetAvailableSlots_ContainerLocation(t *testing.T) {
	req := baseSlotsRequest(t)
	loc := req.Schedule.Location
	req.Containers = []domain.ContainerEvent{
		{
			Interval: domain.Interval{Start: localTime(loc, 2025, 1, 2, 10, 0), End: localTime(loc, 2025, 1, 2, 12, 0)},
			Summary:  "popup__EVENT__CONTAINER__",
			Location: "Hotel Figueroa",
		},
		{
			Interval: domain.Interval{Start: localTime(loc, 2025, 1, 3, 14, 0), End: localTime(loc, 2025, 1, 3, 15, 0)},
		},
	}

	offers, err := GetAvailableSlots(req)
	require.NoError(t, err)

	assert.Equal(t, []string{"01-02 10:00", "01-02 10:30", "01-02 11:00", "01-03 14:00"}, offerStarts(offers, loc))
	assert.Equal(t, "Hotel Figueroa", offers[0].Location)
	assert.Equal(t, "Studio", offers[3].Location)
}

func TestGetAvailableSlots_TouchingContainers(t *testing.T) {
	req := baseSlotsRequest(t)
	loc := req.Schedule.Location
	req.Containers = []domain.ContainerEvent{
		{
			Interval: domain.Interval{Start: localTime(loc, 2025, 1, 2, 10, 0), End: localTime(loc, 2025, 1, 2, 11, 0)},
			Location: "Hotel Figueroa",
		},
		{
			Interval: domain.Interval{Start: localTime(loc, 2025, 1, 2, 11, 0), End: localTime(loc, 2025, 1, 2, 12, 0)},
			Location: "Hotel Figueroa Spa",
		},
	}

	offers, err := GetAvailableSlots(req)
	require.NoError(t, err)

	require.Equal(t, []string{"01-02 10:00", "01-02 10:30", "01-02 11:00"}, offerStarts(offers, loc))
	assert.Equal(t, "Hotel Figueroa", offers[0].Location)
	assert.Equal(t, "Hotel Figueroa", offers[1].Location)
	assert.Equal(t, "Hotel Figueroa Spa", offers[2].Location)

	tagged := Annotate(offers, ContainerRule(domain.ClassContainer, req.Containers))
	for _, o := range tagged {
		assert.Equal(t, domain.ClassContainer, o.ClassName)
	}
}

func TestContainerFor_GapBetweenContainers(t *testing.T) {
	loc := laLocation(t)
	containers := []domain.ContainerEvent{
		{Interval: domain.Interval{Start: localTime(loc, 2025, 1, 2, 10, 0), End: localTime(loc, 2025, 1, 2, 11, 0)}},
		{Interval: domain.Interval{Start: localTime(loc, 2025, 1, 2, 11, 15), End: localTime(loc, 2025, 1, 2, 12, 0)}},
	}

	_, ok := containerFor(domain.Interval{Start: localTime(loc, 2025, 1, 2, 10, 30), End: localTime(loc, 2025, 1, 2, 11, 30)}, containers)
	assert.False(t, ok)
}

func TestGetAvailableSlots_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *SlotsRequest)
	}{
		{name: "zero duration", mutate: func(r *SlotsRequest) { r.Duration = 0 }},
		{name: "negative duration", mutate: func(r *SlotsRequest) { r.Duration = -30 }},
		{name: "strict and not allowed", mutate: func(r *SlotsRequest) { r.Strict = true; r.Duration = 75 }},
		{name: "missing start", mutate: func(r *SlotsRequest) { r.Start = domain.DayWithStartEnd{} }},
		{name: "missing end instant", mutate: func(r *SlotsRequest) { r.End.End = time.Time{} }},
		{name: "no location", mutate: func(r *SlotsRequest) { r.Schedule.Location = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseSlotsRequest(t)
			tt.mutate(&req)

			_, err := GetAvailableSlots(req)
			require.ErrorIs(t, err, domain.ErrConfiguration)
		})
	}
}

func TestGetAvailableSlots_NonStrictAcceptsUnlistedDuration(t *testing.T) {
	req := baseSlotsRequest(t)
	req.Duration = 75

	offers, err := GetAvailableSlots(req)
	require.NoError(t, err)
	require.NotEmpty(t, offers)
	assert.Equal(t, 75, offers[0].DurationMinutes())
}

func TestGetAvailableSlots_FullyBookedIsNotAnError(t *testing.T) {
	req := baseSlotsRequest(t)
	loc := req.Schedule.Location
	req.Busy = []domain.Interval{{Start: localTime(loc, 2024, 12, 31, 0, 0), End: localTime(loc, 2025, 1, 10, 0, 0)}}

	offers, err := GetAvailableSlots(req)
	require.NoError(t, err)
	assert.NotNil(t, offers)
	assert.Empty(t, offers)
}

func TestGetAvailableSlotsByDuration(t *testing.T) {
	req := baseSlotsRequest(t)

	byDuration, err := GetAvailableSlotsByDuration(req, nil)
	require.NoError(t, err)

	require.Len(t, byDuration, 3)
	assert.Len(t, byDuration[60], 45)
	assert.Len(t, byDuration[90], 42)
	assert.Len(t, byDuration[120], 39)
	for d, offers := range byDuration {
		for _, o := range offers {
			assert.Equal(t, d, o.DurationMinutes())
		}
	}
}

func TestGetAvailableSlotsByDuration_Errors(t *testing.T) {
	req := baseSlotsRequest(t)
	req.AllowedDurations = nil

	_, err := GetAvailableSlotsByDuration(req, nil)
	require.ErrorIs(t, err, domain.ErrConfiguration)

	_, err = GetAvailableSlotsByDuration(baseSlotsRequest(t), []int{60, 0})
	require.ErrorIs(t, err, domain.ErrConfiguration)
}
