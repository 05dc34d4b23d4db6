package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trillium/massage-availability/internal/domain"
)

func wednesdayCandidates(t *testing.T) ([]domain.Interval, *time.Location) {
	t.Helper()
	schedule := weekdaySchedule(t)
	day := DayFor(localTime(schedule.Location, 2025, 1, 1, 0, 0), schedule)
	return GeneratePotentialTimes(PotentialTimesRequest{
		Start:    day,
		End:      day,
		Schedule: schedule,
		Duration: time.Hour,
	}), schedule.Location
}

func TestResolveAvailability_BusyNoonHour(t *testing.T) {
	potential, loc := wednesdayCandidates(t)
	busy := []domain.Interval{{Start: localTime(loc, 2025, 1, 1, 12, 0), End: localTime(loc, 2025, 1, 1, 13, 0)}}
	now := localTime(loc, 2024, 12, 31, 0, 0)

	got := startsOf(ResolveAvailability(potential, busy, now, 0), loc)

	assert.Len(t, got, 12)
	assert.Contains(t, got, "01-01 11:00", "touching the busy start is not an overlap")
	assert.Contains(t, got, "01-01 13:00", "starting at the busy end is not an overlap")
	assert.NotContains(t, got, "01-01 11:30")
	assert.NotContains(t, got, "01-01 12:00")
	assert.NotContains(t, got, "01-01 12:30")
}

func TestResolveAvailability_LeadTime(t *testing.T) {
	potential, loc := wednesdayCandidates(t)
	now, err := time.Parse(time.RFC3339, "2025-01-01T10:00:00-08:00")
	require.NoError(t, err)

	got := ResolveAvailability(potential, nil, now, 120)

	require.Len(t, got, 9)
	assert.Equal(t, "01-01 12:00", startsOf(got, loc)[0])
	for _, iv := range got {
		assert.False(t, iv.Start.Before(now.Add(2*time.Hour)))
	}
}

func TestResolveAvailability_MessyBusyInput(t *testing.T) {
	potential, loc := wednesdayCandidates(t)
	now := localTime(loc, 2024, 12, 31, 0, 0)
	busy := []domain.Interval{
		{Start: localTime(loc, 2025, 1, 1, 15, 0), End: localTime(loc, 2025, 1, 1, 15, 10)},
		{Start: localTime(loc, 2025, 1, 1, 9, 0), End: localTime(loc, 2025, 1, 1, 9, 45)},
		{Start: localTime(loc, 2025, 1, 1, 9, 30), End: localTime(loc, 2025, 1, 1, 10, 0)},
		// zero-length and inverted entries are ignored
		{Start: localTime(loc, 2025, 1, 1, 13, 0), End: localTime(loc, 2025, 1, 1, 13, 0)},
		{Start: localTime(loc, 2025, 1, 1, 14, 0), End: localTime(loc, 2025, 1, 1, 13, 30)},
	}

	got := startsOf(ResolveAvailability(potential, busy, now, 0), loc)

	assert.Equal(t, []string{
		"01-01 10:00", "01-01 10:30", "01-01 11:00", "01-01 11:30", "01-01 12:00",
		"01-01 12:30", "01-01 13:00", "01-01 13:30", "01-01 14:00", "01-01 15:30",
		"01-01 16:00",
	}, got)
}

func TestResolveAvailability_PreservesInputOrder(t *testing.T) {
	potential, loc := wednesdayCandidates(t)
	reversed := make([]domain.Interval, len(potential))
	for i, iv := range potential {
		reversed[len(potential)-1-i] = iv
	}
	busy := []domain.Interval{{Start: localTime(loc, 2025, 1, 1, 12, 0), End: localTime(loc, 2025, 1, 1, 13, 0)}}

	got := ResolveAvailability(reversed, busy, localTime(loc, 2024, 12, 31, 0, 0), 0)

	require.Len(t, got, 12)
	assert.Equal(t, "01-01 16:00", startsOf(got, loc)[0])
	assert.Equal(t, "01-01 09:00", startsOf(got, loc)[11])
}

func TestResolveAvailability_BusyInOtherZone(t *testing.T) {
	potential, loc := wednesdayCandidates(t)
	// 20:00-21:00 UTC is 12:00-13:00 in Los Angeles.
	busy := []domain.Interval{{Start: time.Date(2025, 1, 1, 20, 0, 0, 0, time.UTC), End: time.Date(2025, 1, 1, 21, 0, 0, 0, time.UTC)}}

	got := startsOf(ResolveAvailability(potential, busy, localTime(loc, 2024, 12, 31, 0, 0), 0), loc)

	assert.Len(t, got, 12)
	assert.NotContains(t, got, "01-01 12:00")
}

func TestResolveAvailability_EverythingBusy(t *testing.T) {
	potential, loc := wednesdayCandidates(t)
	busy := []domain.Interval{{Start: localTime(loc, 2025, 1, 1, 0, 0), End: localTime(loc, 2025, 1, 2, 0, 0)}}

	got := ResolveAvailability(potential, busy, localTime(loc, 2024, 12, 31, 0, 0), 0)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}
