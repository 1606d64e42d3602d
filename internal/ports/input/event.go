package input

import (
	"context"

	"admitd/internal/domain/entities"
)

type EventUseCase interface {
	CreateEvent(ctx context.Context, event *entities.Event) error
	GetEvent(ctx context.Context, id string) (*entities.Event, error)
	UpdateEvent(ctx context.Context, event *entities.Event) error
	DeleteEvent(ctx context.Context, id, callerID string) error
	EventsByOrganizer(ctx context.Context, organizerID string) ([]entities.Event, error)
}
