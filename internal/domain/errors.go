package domain

import "errors"

var (
	// ErrInvalidDate is returned for malformed date, time or timezone input.
	ErrInvalidDate = errors.New("invalid date")

	// ErrConfiguration is returned when a requested duration is not permitted
	// or required range bounds are missing.
	ErrConfiguration = errors.New("configuration error")
)
