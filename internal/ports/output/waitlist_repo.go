package output

import (
	"context"
	"time"

	"admitd/internal/domain/entities"
)

type WaitlistRepository interface {
	// Upsert creates the user×event entry or, when one already exists,
	// overwrites its mutable fields (status, notes, location, timestamps).
	Upsert(ctx context.Context, entry *entities.WaitlistEntry) error
	FindByEventIDAndUserID(ctx context.Context, eventID, userID string) (*entities.WaitlistEntry, error)
	FindByEventIDAndStatus(ctx context.Context, eventID, status string) ([]entities.WaitlistEntry, error)
	FindByUserID(ctx context.Context, userID string) ([]entities.WaitlistEntry, error)
	// UpdateStatus changes the entry status; acceptedAt is set only on the
	// transition to accepted.
	UpdateStatus(ctx context.Context, eventID, userID, status string, acceptedAt *time.Time) error
}
