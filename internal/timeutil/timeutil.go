// Package timeutil converts between wall-clock date/time strings and absolute
// instants. Comparisons elsewhere happen on the instants; strings produced
// here are for display only.
package timeutil

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/trillium/massage-availability/internal/domain"
)

// LocalDateTime is an instant rendered as wall-clock date and time in a zone.
type LocalDateTime struct {
	Date string // YYYY-MM-DD
	Time string // HH:MM:SS
}

// LoadLocation resolves an IANA zone name.
func LoadLocation(tz string) (*time.Location, error) {
	if strings.TrimSpace(tz) == "" {
		return nil, fmt.Errorf("%w: empty time zone", domain.ErrInvalidDate)
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: time zone %q: %v", domain.ErrInvalidDate, tz, err)
	}
	return loc, nil
}

// ToAbsolute parses a local date ("YYYY-MM-DD") and clock ("HH:MM" or
// "HH:MM:SS") in the given zone into an instant.
func ToAbsolute(date, clock, tz string) (time.Time, error) {
	loc, err := LoadLocation(tz)
	if err != nil {
		return time.Time{}, err
	}
	return ToAbsoluteIn(date, clock, loc)
}

// ToAbsoluteIn is ToAbsolute with an already resolved location.
func ToAbsoluteIn(date, clock string, loc *time.Location) (time.Time, error) {
	layout := domain.DateFormat + " " + domain.TimeFormatSeconds
	value := strings.TrimSpace(date) + " " + strings.TrimSpace(clock)
	if strings.Count(strings.TrimSpace(clock), ":") == 1 {
		layout = domain.DateFormat + " " + domain.TimeFormat
	}

	t, err := time.ParseInLocation(layout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", domain.ErrInvalidDate, value, err)
	}
	return t, nil
}

// FormatLocal renders t as wall-clock date and time in tz.
func FormatLocal(t time.Time, tz string) (LocalDateTime, error) {
	loc, err := LoadLocation(tz)
	if err != nil {
		return LocalDateTime{}, err
	}
	return FormatLocalIn(t, loc), nil
}

// FormatLocalIn is FormatLocal with an already resolved location.
func FormatLocalIn(t time.Time, loc *time.Location) LocalDateTime {
	local := t.In(loc)
	return LocalDateTime{
		Date: local.Format(domain.DateFormat),
		Time: local.Format(domain.TimeFormatSeconds),
	}
}

// ParseDateKey parses a canonical YYYY-MM-DD key as midnight in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(key), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q: %v", domain.ErrInvalidDate, key, err)
	}
	return t, nil
}

// DateKey returns the YYYY-MM-DD key of t in loc.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(domain.DateFormat)
}

// DaysBetween returns midnight of every calendar day from start's date to
// end's date inclusive, both taken in loc. Days are stepped with AddDate so
// DST transitions do not skip or repeat a day.
func DaysBetween(start, end time.Time, loc *time.Location) []time.Time {
	s := start.In(loc)
	e := end.In(loc)
	first := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, loc)
	last := time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, loc)

	var days []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

var ambiguousNumeric = regexp.MustCompile(`^\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}$`)

// dateKeyLayouts are tried in order by NormalizeDateKey.
var dateKeyLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"20060102",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Mon, Jan 2, 2006",
	"Monday, January 2, 2006",
}

// NormalizeDateKey canonicalizes a date string to YYYY-MM-DD.
// Timestamps keep the date as written (no zone conversion). Numeric forms with
// the year last (01/02/2025) are rejected because day and month order is unknown.
func NormalizeDateKey(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("%w: empty date", domain.ErrInvalidDate)
	}
	if ambiguousNumeric.MatchString(s) {
		return "", fmt.Errorf("%w: ambiguous date %q", domain.ErrInvalidDate, raw)
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return fmt.Sprintf("%04d-%02d-%02d", t.Year(), t.Month(), t.Day()), nil
		}
	}

	for _, layout := range dateKeyLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(domain.DateFormat), nil
		}
	}

	return "", fmt.Errorf("%w: unrecognized date %q", domain.ErrInvalidDate, raw)
}
