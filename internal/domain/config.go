package domain

import (
	"fmt"
	"slices"
	"time"
)

// SlugConfiguration is a named, overridable bundle of booking-page settings.
type SlugConfiguration struct {
	Slug             string
	Title            string
	Location         string
	Pricing          map[int]int // duration minutes -> price
	AllowedDurations []int
	DefaultDuration  int
	LeadTimeMinimum  int    // minutes
	EventContainer   string // calendar query identifying container events; empty = none
	PromoEndDate     string // YYYY-MM-DD; empty = no promo bound
	AcceptingPayment bool
	InstantConfirm   bool
	BlockingScope    string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SlugOverrides carries caller-supplied partial overrides. Nil fields leave
// the base value untouched.
type SlugOverrides struct {
	Title            *string
	Location         *string
	Pricing          map[int]int
	AllowedDurations []int
	DefaultDuration  *int
	LeadTimeMinimum  *int
	EventContainer   *string
	PromoEndDate     *string
	AcceptingPayment *bool
	InstantConfirm   *bool
	BlockingScope    *string
}

// DefaultSlugConfiguration returns the base configuration used when no slug is
// given or the slug is unknown: 60-150 minute sessions, 90 minutes by default,
// three hours of lead time, no containers and no promo bound.
func DefaultSlugConfiguration() SlugConfiguration {
	return SlugConfiguration{
		Title:            DefaultConfigurationTitle,
		Pricing:          map[int]int{60: 140, 90: 210, 120: 280, 150: 350},
		AllowedDurations: slices.Clone(DefaultAllowedDurations),
		DefaultDuration:  DefaultDurationMinutes,
		LeadTimeMinimum:  DefaultLeadTimeMinutes,
		BlockingScope:    DefaultBlockingScope,
	}
}

// WithOverrides returns a copy of c with every non-nil override field applied.
// Nested values (Pricing, AllowedDurations) are replaced whole, never merged.
func (c SlugConfiguration) WithOverrides(o SlugOverrides) SlugConfiguration {
	out := c
	out.Pricing = clonePricing(c.Pricing)
	out.AllowedDurations = slices.Clone(c.AllowedDurations)

	if o.Title != nil {
		out.Title = *o.Title
	}
	if o.Location != nil {
		out.Location = *o.Location
	}
	if o.Pricing != nil {
		out.Pricing = clonePricing(o.Pricing)
	}
	if o.AllowedDurations != nil {
		out.AllowedDurations = slices.Clone(o.AllowedDurations)
	}
	if o.DefaultDuration != nil {
		out.DefaultDuration = *o.DefaultDuration
	}
	if o.LeadTimeMinimum != nil {
		out.LeadTimeMinimum = *o.LeadTimeMinimum
	}
	if o.EventContainer != nil {
		out.EventContainer = *o.EventContainer
	}
	if o.PromoEndDate != nil {
		out.PromoEndDate = *o.PromoEndDate
	}
	if o.AcceptingPayment != nil {
		out.AcceptingPayment = *o.AcceptingPayment
	}
	if o.InstantConfirm != nil {
		out.InstantConfirm = *o.InstantConfirm
	}
	if o.BlockingScope != nil {
		out.BlockingScope = *o.BlockingScope
	}
	return out
}

// IsEmpty reports whether no override field is set.
func (o SlugOverrides) IsEmpty() bool {
	return o.Title == nil && o.Location == nil && o.Pricing == nil &&
		o.AllowedDurations == nil && o.DefaultDuration == nil &&
		o.LeadTimeMinimum == nil && o.EventContainer == nil &&
		o.PromoEndDate == nil && o.AcceptingPayment == nil &&
		o.InstantConfirm == nil && o.BlockingScope == nil
}

// AllowsDuration reports whether minutes is in the allowed-duration set.
func (c SlugConfiguration) AllowsDuration(minutes int) bool {
	return slices.Contains(c.AllowedDurations, minutes)
}

// HasPromo returns true if the configuration carries a promo end date
func (c SlugConfiguration) HasPromo() bool {
	return c.PromoEndDate != ""
}

// UsesContainers returns true if offers are restricted to container events
func (c SlugConfiguration) UsesContainers() bool {
	return c.EventContainer != ""
}

// EffectiveEndDate returns min(requestedEnd, promoEnd) for YYYY-MM-DD keys.
// An empty promoEnd leaves requestedEnd unchanged.
func EffectiveEndDate(requestedEnd, promoEnd string) (string, error) {
	end, err := time.Parse(DateFormat, requestedEnd)
	if err != nil {
		return "", fmt.Errorf("%w: end date %q: %v", ErrInvalidDate, requestedEnd, err)
	}
	if promoEnd == "" {
		return requestedEnd, nil
	}

	promo, err := time.Parse(DateFormat, promoEnd)
	if err != nil {
		return "", fmt.Errorf("%w: promo end date %q: %v", ErrInvalidDate, promoEnd, err)
	}
	if promo.Before(end) {
		return promoEnd, nil
	}
	return requestedEnd, nil
}

func clonePricing(in map[int]int) map[int]int {
	if in == nil {
		return nil
	}
	out := make(map[int]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
