package bookings

import "errors"

var (
	// ErrInvalidRequest marks malformed or semantically invalid input
	ErrInvalidRequest = errors.New("invalid booking request")

	// ErrResourceUnavailable means no unit is free for the requested extent
	ErrResourceUnavailable = errors.New("resource unavailable for the requested dates")

	// ErrInvalidTransition marks a lifecycle move the state machine forbids
	ErrInvalidTransition = errors.New("invalid booking status transition")

	// ErrBookingNotFound is returned for unknown booking ids
	ErrBookingNotFound = errors.New("booking not found")

	// ErrForbidden means the requester may not act on this booking
	ErrForbidden = errors.New("not allowed to access this booking")
)
