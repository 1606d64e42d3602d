package input

import "context"

type LedgerUseCase interface {
	AddToWaitlist(ctx context.Context, userID, eventID string) error
	RemoveFromWaitlist(ctx context.Context, userID, eventID string) error
	AddToAcceptedEvents(ctx context.Context, userID, eventID string) error
	RemoveFromAcceptedEvents(ctx context.Context, userID, eventID string) error
	WaitlistedEventIDs(ctx context.Context, userID string) ([]string, error)
	AcceptedEventIDs(ctx context.Context, userID string) ([]string, error)
	// Reconcile recomputes the user's two ledger sets from scratch against
	// every event referencing the user. Safe to call any number of times.
	Reconcile(ctx context.Context, userID string) error
}
