package domain

import "time"

// Offer is a bookable time interval of exactly the requested duration,
// cleared of busy conflicts and lead-time violations.
type Offer struct {
	Start     time.Time
	End       time.Time
	Location  string
	ClassName string
}

// Interval returns the offer's time span.
func (o Offer) Interval() Interval {
	return Interval{Start: o.Start, End: o.End}
}

// DurationMinutes returns the offer length in whole minutes.
func (o Offer) DurationMinutes() int {
	return int(o.End.Sub(o.Start) / time.Minute)
}
