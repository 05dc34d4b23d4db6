package gcal

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/trillium/massage-availability/internal/domain"
)

const eventCancelled = "cancelled"

// busyFromResponse собирает занятые периоды всех календарей ответа
// Ошибка любого календаря - ошибка всего ответа.
func busyFromResponse(resp *calendar.FreeBusyResponse) ([]domain.Interval, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: empty freebusy response", ErrInvalidResponse)
	}

	ids := make([]string, 0, len(resp.Calendars))
	for id := range resp.Calendars {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var busy []domain.Interval
	for _, id := range ids {
		cal := resp.Calendars[id]
		if len(cal.Errors) > 0 {
			return nil, fmt.Errorf("%w: %s: %s", ErrCalendarUnavailable, id, cal.Errors[0].Reason)
		}
		for _, period := range cal.Busy {
			iv, err := parsePeriod(period)
			if err != nil {
				return nil, fmt.Errorf("%w: calendar %s: %v", ErrInvalidResponse, id, err)
			}
			busy = append(busy, iv)
		}
	}

	return domain.MergeIntervals(busy), nil
}

func parsePeriod(p *calendar.TimePeriod) (domain.Interval, error) {
	if p == nil {
		return domain.Interval{}, fmt.Errorf("nil period")
	}
	start, err := time.Parse(time.RFC3339, p.Start)
	if err != nil {
		return domain.Interval{}, fmt.Errorf("period start %q: %v", p.Start, err)
	}
	end, err := time.Parse(time.RFC3339, p.End)
	if err != nil {
		return domain.Interval{}, fmt.Errorf("period end %q: %v", p.End, err)
	}
	return domain.Interval{Start: start, End: end}, nil
}

// containersFromEvents отбирает подтвержденные события, чье название содержит query
// (без учета регистра), и переводит их в абсолютные интервалы
func containersFromEvents(events []*calendar.Event, query string, loc *time.Location) []domain.ContainerEvent {
	needle := strings.ToLower(strings.TrimSpace(query))
	containers := make([]domain.ContainerEvent, 0, len(events))

	for _, ev := range events {
		if ev == nil || ev.Status == eventCancelled {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(ev.Summary), needle) {
			continue
		}

		iv, ok := eventInterval(ev, loc)
		if !ok {
			continue
		}
		containers = append(containers, domain.ContainerEvent{
			Interval: iv,
			Summary:  ev.Summary,
			Location: ev.Location,
		})
	}

	sort.SliceStable(containers, func(i, j int) bool {
		return containers[i].Start.Before(containers[j].Start)
	})
	return containers
}

// eventInterval переводит начало и конец события в абсолютное время
// Событие на весь день занимает локальные сутки от полуночи до полуночи,
// дата окончания в API не включается.
func eventInterval(ev *calendar.Event, loc *time.Location) (domain.Interval, bool) {
	start, ok := eventTime(ev.Start, loc)
	if !ok {
		return domain.Interval{}, false
	}
	end, ok := eventTime(ev.End, loc)
	if !ok {
		return domain.Interval{}, false
	}

	iv := domain.Interval{Start: start, End: end}
	return iv, iv.Valid()
}

func eventTime(dt *calendar.EventDateTime, loc *time.Location) (time.Time, bool) {
	if dt == nil {
		return time.Time{}, false
	}
	if dt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, dt.DateTime)
		return t, err == nil
	}
	if dt.Date != "" {
		t, err := time.ParseInLocation(domain.DateFormat, dt.Date, loc)
		return t, err == nil
	}
	return time.Time{}, false
}
