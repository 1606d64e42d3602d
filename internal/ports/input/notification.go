package input

import (
	"context"

	"admitd/internal/domain/entities"
)

type NotificationUseCase interface {
	// Send fans one organizer message out to the given recipients, one
	// immutable record per recipient. Returns the number of records
	// created.
	Send(ctx context.Context, eventID, senderID, message string, recipients []string) (int, error)
	// GroupForEvent folds the event's full record set into distinct send
	// events, newest first.
	GroupForEvent(ctx context.Context, eventID string) ([]entities.GroupedNotification, error)
	HistoryForUser(ctx context.Context, userID string) ([]entities.NotificationRecord, error)
}
