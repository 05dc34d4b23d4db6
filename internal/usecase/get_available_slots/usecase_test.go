package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trillium/massage-availability/internal/domain"
	slugconfigRepo "github.com/trillium/massage-availability/internal/infra/storage/slugconfig"
	"github.com/trillium/massage-availability/internal/service/slugconfig"
	"github.com/trillium/massage-availability/pkg/ptr"
	"github.com/trillium/massage-availability/pkg/types"
)

type fakeRepo struct {
	configs map[string]domain.SlugConfiguration
}

func (r *fakeRepo) GetBySlug(_ context.Context, slug string) (*domain.SlugConfiguration, error) {
	c, ok := r.configs[slug]
	if !ok {
		return nil, slugconfigRepo.ErrConfigNotFound
	}
	return &c, nil
}

func (r *fakeRepo) Upsert(_ context.Context, c *domain.SlugConfiguration) (*domain.SlugConfiguration, error) {
	r.configs[c.Slug] = *c
	return c, nil
}

type fakeCalendar struct {
	busy          []domain.Interval
	containers    []domain.ContainerEvent
	err           error
	busyCalls     int
	containerCall int
	query         string
	from, to      time.Time
}

func (c *fakeCalendar) GetBusy(_ context.Context, from, to time.Time) ([]domain.Interval, error) {
	c.busyCalls++
	c.from, c.to = from, to
	return c.busy, c.err
}

func (c *fakeCalendar) GetContainers(_ context.Context, query string, from, to time.Time) ([]domain.ContainerEvent, error) {
	c.containerCall++
	c.query = query
	return c.containers, c.err
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type recordingObserver struct {
	slug  string
	count int
}

func (o *recordingObserver) ObserveOffers(slug string, count int) {
	o.slug, o.count = slug, count
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var la = mustLocation("America/Los_Angeles")

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 1, day, hour, minute, 0, 0, la)
}

func weekdaySchedule() domain.Schedule {
	nineToFive := []domain.WindowRange{{Start: types.MustTimeString("09:00"), End: types.MustTimeString("17:00")}}
	return domain.Schedule{
		Template: domain.WeeklyTemplate{
			time.Monday:    nineToFive,
			time.Tuesday:   nineToFive,
			time.Wednesday: nineToFive,
			time.Thursday:  nineToFive,
			time.Friday:    nineToFive,
		},
		Location: la,
		Step:     30 * time.Minute,
	}
}

type fixture struct {
	repo     *fakeRepo
	calendar *fakeCalendar
	observer *recordingObserver
	uc       *UseCase
}

// newFixture evaluates at Sunday 2025-01-05 12:00 unless now is given.
func newFixture(now time.Time, configs ...domain.SlugConfiguration) *fixture {
	if now.IsZero() {
		now = at(5, 12, 0)
	}
	f := &fixture{
		repo:     &fakeRepo{configs: map[string]domain.SlugConfiguration{}},
		calendar: &fakeCalendar{},
		observer: &recordingObserver{},
	}
	for _, c := range configs {
		f.repo.configs[c.Slug] = c
	}

	svc := slugconfig.NewService(f.repo, nopLogger{})
	f.uc = NewUseCase(svc, f.calendar, weekdaySchedule(), 14, nopLogger{},
		WithTimeProvider(fixedTime{now: now}),
		WithOffersObserver(f.observer),
	)
	return f
}

func slugConfig(slug string, mutate func(*domain.SlugConfiguration)) domain.SlugConfiguration {
	c := domain.DefaultSlugConfiguration()
	c.Slug = slug
	if mutate != nil {
		mutate(&c)
	}
	return c
}

func monToWed() *Request {
	return &Request{StartDate: "2025-01-06", EndDate: "2025-01-08"}
}

func TestExecute_DefaultConfiguration(t *testing.T) {
	f := newFixture(time.Time{})

	resp, err := f.uc.Execute(context.Background(), monToWed())
	require.NoError(t, err)

	assert.Equal(t, 90, resp.Duration)
	assert.Equal(t, domain.DefaultAllowedDurations, resp.Durations)
	assert.Equal(t, "America/Los_Angeles", resp.TimeZone)
	assert.False(t, resp.IsExpired)
	assert.Len(t, resp.Offers, 42)
	assert.Nil(t, resp.OffersByDuration)

	assert.True(t, f.calendar.from.Equal(at(6, 0, 0)))
	assert.True(t, f.calendar.to.Equal(at(9, 0, 0)))
	assert.Equal(t, 0, f.calendar.containerCall)

	assert.Equal(t, "default", f.observer.slug)
	assert.Equal(t, 42, f.observer.count)
}

func TestExecute_BusyIntervalsRemoveOffers(t *testing.T) {
	f := newFixture(time.Time{})
	f.calendar.busy = []domain.Interval{{Start: at(6, 12, 0), End: at(6, 13, 0)}}

	resp, err := f.uc.Execute(context.Background(), monToWed())
	require.NoError(t, err)
	assert.Len(t, resp.Offers, 38)

	for _, o := range resp.Offers {
		assert.False(t, domain.Overlaps(o.Interval(), f.calendar.busy[0]))
	}
}

func TestExecute_DayBlockingScope(t *testing.T) {
	f := newFixture(time.Time{}, slugConfig("house-calls", func(c *domain.SlugConfiguration) {
		c.BlockingScope = domain.BlockingScopeDay
	}))
	f.calendar.busy = []domain.Interval{{Start: at(6, 12, 0), End: at(6, 13, 0)}}

	req := monToWed()
	req.Slug = "house-calls"
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Len(t, resp.Offers, 28)
	assert.Equal(t, "house-calls", f.observer.slug)
}

func TestExecute_LeadTimeFromConfiguration(t *testing.T) {
	f := newFixture(at(6, 8, 0))

	resp, err := f.uc.Execute(context.Background(), monToWed())
	require.NoError(t, err)

	assert.Len(t, resp.Offers, 38)
	assert.True(t, resp.Offers[0].Start.Equal(at(6, 11, 0)))
}

func TestExecute_LeadTimeOverride(t *testing.T) {
	f := newFixture(at(6, 8, 0))

	req := monToWed()
	req.Overrides.LeadTimeMinimum = ptr.Ptr(0)
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Len(t, resp.Offers, 42)
}

func TestExecute_PromoBoundsRangeAndTagsOffers(t *testing.T) {
	f := newFixture(time.Time{}, slugConfig("spring", func(c *domain.SlugConfiguration) {
		c.PromoEndDate = "2025-01-06"
	}))

	req := monToWed()
	req.Slug = "spring"
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "2025-01-06", resp.EndDate)
	require.Len(t, resp.Offers, 14)
	for _, o := range resp.Offers {
		assert.Equal(t, domain.ClassPromo, o.ClassName)
	}
	assert.True(t, f.calendar.to.Equal(at(7, 0, 0)))
}

func TestExecute_ExpiredPromo(t *testing.T) {
	f := newFixture(time.Time{}, slugConfig("spring", func(c *domain.SlugConfiguration) {
		c.PromoEndDate = "2025-01-01"
	}))

	req := monToWed()
	req.Slug = "spring"
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.IsExpired)
	assert.Empty(t, resp.Offers)
	assert.NotNil(t, resp.Offers)
	assert.Equal(t, 0, f.calendar.busyCalls)
}

func TestExecute_ContainersRestrictOffers(t *testing.T) {
	f := newFixture(time.Time{}, slugConfig("beach", func(c *domain.SlugConfiguration) {
		c.EventContainer = "beach container"
		c.Location = "Studio"
	}))
	f.calendar.containers = []domain.ContainerEvent{{
		Interval: domain.Interval{Start: at(7, 10, 0), End: at(7, 14, 0)},
		Summary:  "beach container",
		Location: "Ocean Beach",
	}}

	req := monToWed()
	req.Slug = "beach"
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "beach container", f.calendar.query)
	require.Len(t, resp.Offers, 6)
	for _, o := range resp.Offers {
		assert.Equal(t, "Ocean Beach", o.Location)
		assert.Equal(t, domain.ClassContainer, o.ClassName)
	}
}

func TestExecute_ContainerSlugWithoutEvents(t *testing.T) {
	f := newFixture(time.Time{}, slugConfig("beach", func(c *domain.SlugConfiguration) {
		c.EventContainer = "beach container"
	}))

	req := monToWed()
	req.Slug = "beach"
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Empty(t, resp.Offers)
	assert.Equal(t, 1, f.calendar.containerCall)
	assert.Equal(t, 0, f.calendar.busyCalls)
}

func TestExecute_MultiDuration(t *testing.T) {
	f := newFixture(time.Time{})

	req := monToWed()
	req.Multi = true
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.OffersByDuration, 4)
	assert.Len(t, resp.OffersByDuration[60], 45)
	assert.Len(t, resp.OffersByDuration[90], 42)
	assert.Len(t, resp.OffersByDuration[120], 39)
	assert.Len(t, resp.OffersByDuration[150], 36)
	assert.Equal(t, resp.OffersByDuration[90], resp.Offers)
	assert.Equal(t, 45+42+39+36, f.observer.count)
}

func TestExecute_DurationSnapping(t *testing.T) {
	f := newFixture(time.Time{})

	req := monToWed()
	req.Duration = ptr.Ptr(45)
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 90, resp.Duration)

	req = monToWed()
	req.Duration = ptr.Ptr(45)
	req.Strict = true
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestExecute_DefaultDateRange(t *testing.T) {
	f := newFixture(at(6, 8, 0))

	resp, err := f.uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Equal(t, "2025-01-06", resp.StartDate)
	assert.Equal(t, "2025-01-19", resp.EndDate)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		calErr  error
		wantErr error
	}{
		{
			name:    "ambiguous date",
			req:     &Request{StartDate: "01/06/2025", EndDate: "2025-01-08"},
			wantErr: domain.ErrInvalidDate,
		},
		{
			name:    "non-positive duration",
			req:     &Request{StartDate: "2025-01-06", EndDate: "2025-01-08", Duration: ptr.Ptr(-30)},
			wantErr: domain.ErrConfiguration,
		},
		{
			name:    "zero duration",
			req:     &Request{StartDate: "2025-01-06", EndDate: "2025-01-08", Duration: ptr.Ptr(0)},
			wantErr: domain.ErrConfiguration,
		},
		{
			name:    "end before start",
			req:     &Request{StartDate: "2025-01-08", EndDate: "2025-01-06"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "invalid override",
			req:     &Request{StartDate: "2025-01-06", EndDate: "2025-01-08", Overrides: domain.SlugOverrides{AllowedDurations: []int{}}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "calendar failure",
			req:     monToWed(),
			calErr:  errors.New("quota exceeded"),
			wantErr: ErrCalendarUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(time.Time{})
			f.calendar.err = tt.calErr

			_, err := f.uc.Execute(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExpandToDays(t *testing.T) {
	got := expandToDays([]domain.Interval{
		{Start: at(6, 12, 0), End: at(6, 13, 0)},
		{Start: at(7, 22, 0), End: at(8, 0, 0)},
		{Start: at(9, 10, 0), End: at(9, 10, 0)},
	}, la)

	require.Len(t, got, 1)
	assert.True(t, got[0].Start.Equal(at(6, 0, 0)))
	assert.True(t, got[0].End.Equal(at(8, 0, 0)))
}
