package input

import (
	"context"

	"admitd/internal/domain/entities"
)

// Geo is an optional join location captured when the event has geolocation
// enabled.
type Geo struct {
	Latitude  float64
	Longitude float64
}

type RosterUseCase interface {
	JoinWaitlist(ctx context.Context, eventID, userID string, geo *Geo) error
	LeaveWaitlist(ctx context.Context, eventID, userID string) error
	AcceptFromWaitlist(ctx context.Context, eventID, userID string) error
	DeclineFromWaitlist(ctx context.Context, eventID, userID string) error
	RegisterUser(ctx context.Context, eventID, userID string, organizerOverride bool) error
	Cancel(ctx context.Context, eventID, userID string) error

	IsOnWaitingList(ctx context.Context, eventID, userID string) (bool, error)
	IsRegistered(ctx context.Context, eventID, userID string) (bool, error)
	HasAcceptedFromWaitlist(ctx context.Context, eventID, userID string) (bool, error)
	GetSignupCount(ctx context.Context, eventID string) (int, error)

	WaitingEntrants(ctx context.Context, eventID string) ([]entities.WaitlistEntry, error)
	AcceptedEntrants(ctx context.Context, eventID string) ([]entities.WaitlistEntry, error)
	CancelledEntrants(ctx context.Context, eventID string) ([]entities.WaitlistEntry, error)
}
