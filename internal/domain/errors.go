package domain

import "errors"

// Domain errors.
var (
	ErrEventNotFound     = errors.New("event not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrAlreadyMember     = errors.New("user is already a member of this event")
	ErrNotOnWaitlist     = errors.New("user is not on the waiting list")
	ErrInvalidTransition = errors.New("operation not allowed in the user's current state")
	ErrCapacityExceeded  = errors.New("event capacity exceeded")
	ErrCannotReduceSpots = errors.New("cannot reduce spots below the accepted count")
	ErrNotOrganizer      = errors.New("only the organizer can perform this action")
	ErrStoreUnavailable  = errors.New("backing store unavailable")
	ErrTimeout           = errors.New("operation deadline exceeded, outcome unknown")
)

// Code returns a stable machine-readable code for a domain error, or ""
// when err carries no domain error. Adapters key user-facing messages and
// HTTP statuses off these codes.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrEventNotFound):
		return "event_not_found"
	case errors.Is(err, ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, ErrAlreadyMember):
		return "already_member"
	case errors.Is(err, ErrNotOnWaitlist):
		return "not_on_waitlist"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrCannotReduceSpots):
		return "cannot_reduce_spots"
	case errors.Is(err, ErrNotOrganizer):
		return "not_organizer"
	case errors.Is(err, ErrStoreUnavailable):
		return "store_unavailable"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	}
	return ""
}

// Retryable reports whether the caller may retry the failed operation.
// Validation errors are terminal: retrying cannot change the outcome.
// Store and timeout failures pair with the idempotent operation contract,
// so timeout-and-retry is safe.
func Retryable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable) || errors.Is(err, ErrTimeout)
}
