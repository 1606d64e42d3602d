package output

import (
	"context"

	"admitd/internal/domain/entities"
)

type NotificationRepository interface {
	Add(ctx context.Context, records []entities.NotificationRecord) error
	FindByEventID(ctx context.Context, eventID string) ([]entities.NotificationRecord, error)
	FindByUserID(ctx context.Context, userID string) ([]entities.NotificationRecord, error)
}
