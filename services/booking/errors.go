package booking

import (
	"errors"
	"fmt"
)

// User-facing booking failures. Conflict and policy errors are recoverable
// validation outcomes, never system errors; storage failures are returned
// wrapped and propagate as-is.
var (
	// ErrInvalidTime rejects an appointment time not strictly in the future.
	ErrInvalidTime = errors.New("appointment time must be in the future")

	// ErrSchedulingConflict is the umbrella for double-booking rejections;
	// the two specific variants below wrap it so callers can match either
	// level of detail.
	ErrSchedulingConflict  = errors.New("scheduling conflict")
	ErrProviderUnavailable = fmt.Errorf("%w: provider already has a booking at this time", ErrSchedulingConflict)
	ErrClientDoubleBooked  = fmt.Errorf("%w: client already has a booking at this time", ErrSchedulingConflict)

	// ErrProviderNotApproved rejects bookings against providers still in the
	// approval pipeline.
	ErrProviderNotApproved = errors.New("provider is not approved for bookings")

	// ErrCancellationWindow rejects a non-admin cancellation inside the
	// notice window.
	ErrCancellationWindow = errors.New("cancellation requires advance notice")

	// ErrUnauthorized rejects a completion attempt by anyone but the owning
	// provider.
	ErrUnauthorized = errors.New("not authorized to perform this action")
)
