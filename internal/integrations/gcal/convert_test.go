package gcal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
)

func laLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	return loc
}

func TestBusyFromResponse_MergesAcrossCalendars(t *testing.T) {
	resp := &calendar.FreeBusyResponse{
		Calendars: map[string]calendar.FreeBusyCalendar{
			"owner": {Busy: []*calendar.TimePeriod{
				{Start: "2025-01-06T18:00:00Z", End: "2025-01-06T19:00:00Z"},
			}},
			"studio": {Busy: []*calendar.TimePeriod{
				{Start: "2025-01-06T18:30:00Z", End: "2025-01-06T20:00:00Z"},
				{Start: "2025-01-06T22:00:00Z", End: "2025-01-06T23:00:00Z"},
			}},
		},
	}

	busy, err := busyFromResponse(resp)
	require.NoError(t, err)
	require.Len(t, busy, 2)
	assert.Equal(t, "2025-01-06T18:00:00Z", busy[0].Start.Format(time.RFC3339))
	assert.Equal(t, "2025-01-06T20:00:00Z", busy[0].End.Format(time.RFC3339))
	assert.Equal(t, "2025-01-06T22:00:00Z", busy[1].Start.Format(time.RFC3339))
}

func TestBusyFromResponse_Errors(t *testing.T) {
	_, err := busyFromResponse(nil)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = busyFromResponse(&calendar.FreeBusyResponse{
		Calendars: map[string]calendar.FreeBusyCalendar{
			"owner": {Errors: []*calendar.Error{{Domain: "global", Reason: "notFound"}}},
		},
	})
	assert.ErrorIs(t, err, ErrCalendarUnavailable)

	_, err = busyFromResponse(&calendar.FreeBusyResponse{
		Calendars: map[string]calendar.FreeBusyCalendar{
			"owner": {Busy: []*calendar.TimePeriod{{Start: "yesterday", End: "2025-01-06T19:00:00Z"}}},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestContainersFromEvents(t *testing.T) {
	loc := laLocation(t)
	events := []*calendar.Event{
		{
			Summary:  "Beach Day CONTAINER",
			Location: "Ocean Beach",
			Start:    &calendar.EventDateTime{DateTime: "2025-01-07T12:00:00-08:00"},
			End:      &calendar.EventDateTime{DateTime: "2025-01-07T16:00:00-08:00"},
		},
		{
			Summary: "beach day container",
			Start:   &calendar.EventDateTime{Date: "2025-01-06"},
			End:     &calendar.EventDateTime{Date: "2025-01-07"},
		},
		{
			Summary: "Beach day container",
			Status:  "cancelled",
			Start:   &calendar.EventDateTime{DateTime: "2025-01-08T12:00:00-08:00"},
			End:     &calendar.EventDateTime{DateTime: "2025-01-08T16:00:00-08:00"},
		},
		{
			Summary: "Dentist",
			Start:   &calendar.EventDateTime{DateTime: "2025-01-07T09:00:00-08:00"},
			End:     &calendar.EventDateTime{DateTime: "2025-01-07T10:00:00-08:00"},
		},
		{
			Summary: "Beach day container without end",
			Start:   &calendar.EventDateTime{DateTime: "2025-01-09T12:00:00-08:00"},
		},
		nil,
	}

	got := containersFromEvents(events, "beach day container", loc)
	require.Len(t, got, 2)

	allDay := got[0]
	assert.True(t, allDay.Start.Equal(time.Date(2025, 1, 6, 0, 0, 0, 0, loc)))
	assert.True(t, allDay.End.Equal(time.Date(2025, 1, 7, 0, 0, 0, 0, loc)))

	assert.Equal(t, "Ocean Beach", got[1].Location)
	assert.True(t, got[1].Start.Equal(time.Date(2025, 1, 7, 12, 0, 0, 0, loc)))
}

func TestEventInterval_RejectsInverted(t *testing.T) {
	_, ok := eventInterval(&calendar.Event{
		Start: &calendar.EventDateTime{DateTime: "2025-01-07T16:00:00-08:00"},
		End:   &calendar.EventDateTime{DateTime: "2025-01-07T12:00:00-08:00"},
	}, time.UTC)
	assert.False(t, ok)
}
