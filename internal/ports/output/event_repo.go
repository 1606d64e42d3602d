package output

import (
	"context"

	"admitd/internal/domain/entities"
)

type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	FindByID(ctx context.Context, id string) (*entities.Event, error)
	// FindByIDForUpdate locks the event row for the duration of the
	// enclosing transaction. The roster's check-then-act sequences run
	// against this lock, making the event the single serialization point.
	FindByIDForUpdate(ctx context.Context, id string) (*entities.Event, error)
	FindByOrganizerID(ctx context.Context, organizerID string) ([]entities.Event, error)
	// FindByMemberID returns every event whose membership sets reference
	// the user. Ledger reconciliation recomputes the user's sets from this.
	FindByMemberID(ctx context.Context, userID string) ([]entities.Event, error)
	Update(ctx context.Context, event *entities.Event) error
	Delete(ctx context.Context, id string) error
}
