package provider

import "errors"

var (
	// ErrEmailTaken rejects a registration reusing an existing provider email.
	ErrEmailTaken = errors.New("a provider with this email already exists")

	// ErrInvalidWorkingHours rejects a malformed availability window.
	ErrInvalidWorkingHours = errors.New("invalid working hours window")

	// ErrInvalidRating rejects an out-of-range rating value.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrInvalidSortKey rejects an unrecognized provider-listing sort key.
	ErrInvalidSortKey = errors.New("invalid sort key")
)
