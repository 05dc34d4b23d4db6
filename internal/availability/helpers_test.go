package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trillium/massage-availability/internal/domain"
	"github.com/trillium/massage-availability/pkg/types"
)

func laLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	return loc
}

func nineToFive() []domain.WindowRange {
	return []domain.WindowRange{{Start: types.MustTimeString("09:00"), End: types.MustTimeString("17:00")}}
}

// weekdaySchedule opens Monday to Friday 09:00-17:00 with a 30 minute step.
func weekdaySchedule(t *testing.T) domain.Schedule {
	t.Helper()
	return domain.Schedule{
		Template: domain.WeeklyTemplate{
			time.Monday:    nineToFive(),
			time.Tuesday:   nineToFive(),
			time.Wednesday: nineToFive(),
			time.Thursday:  nineToFive(),
			time.Friday:    nineToFive(),
		},
		Location: laLocation(t),
		Step:     30 * time.Minute,
	}
}

func localTime(loc *time.Location, year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, loc)
}

func startsOf(intervals []domain.Interval, loc *time.Location) []string {
	out := make([]string, len(intervals))
	for i, iv := range intervals {
		out[i] = iv.Start.In(loc).Format("01-02 15:04")
	}
	return out
}

func offerStarts(offers []domain.Offer, loc *time.Location) []string {
	out := make([]string, len(offers))
	for i, o := range offers {
		out[i] = o.Start.In(loc).Format("01-02 15:04")
	}
	return out
}
