package slugconfig

import (
	"fmt"
	"time"

	"github.com/trillium/massage-availability/internal/domain"
)

// validateConfig проверяет итоговую конфигурацию после слияния
func validateConfig(c domain.SlugConfiguration) error {
	if len(c.AllowedDurations) == 0 {
		return fmt.Errorf("%w: allowedDurations must not be empty", ErrInvalidInput)
	}
	for _, d := range c.AllowedDurations {
		if d < domain.MinDurationMinutes || d > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: allowed duration %d must be between %d and %d",
				ErrInvalidInput, d, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
	}

	if c.DefaultDuration < domain.MinDurationMinutes || c.DefaultDuration > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: defaultDuration must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	if c.LeadTimeMinimum < domain.MinLeadTimeMinutes || c.LeadTimeMinimum > domain.MaxLeadTimeMinutes {
		return fmt.Errorf("%w: leadTimeMinimum must be between %d and %d",
			ErrInvalidInput, domain.MinLeadTimeMinutes, domain.MaxLeadTimeMinutes)
	}

	for minutes, price := range c.Pricing {
		if minutes <= 0 || price < 0 {
			return fmt.Errorf("%w: invalid price %d for %d minutes", ErrInvalidInput, price, minutes)
		}
	}

	switch c.BlockingScope {
	case domain.BlockingScopeEvent, domain.BlockingScopeDay:
	default:
		return fmt.Errorf("%w: blockingScope must be %q or %q",
			ErrInvalidInput, domain.BlockingScopeEvent, domain.BlockingScopeDay)
	}

	if c.PromoEndDate != "" {
		if _, err := time.Parse(domain.DateFormat, c.PromoEndDate); err != nil {
			return fmt.Errorf("%w: promoEndDate %q: %v", domain.ErrInvalidDate, c.PromoEndDate, err)
		}
	}

	return nil
}

// validateRange проверяет запрошенный диапазон дат
func validateRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse(domain.DateFormat, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start date %q: %v", domain.ErrInvalidDate, startDate, err)
	}
	end, err := time.Parse(domain.DateFormat, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date %q: %v", domain.ErrInvalidDate, endDate, err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidInput, endDate, startDate)
	}
	// обе даты включительно
	if days := int(end.Sub(start)/(24*time.Hour)) + 1; days > domain.MaxRangeDays {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: range must not exceed %d days", ErrInvalidInput, domain.MaxRangeDays)
	}
	return start, end, nil
}
