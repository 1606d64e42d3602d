package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"admitd/internal/domain"
	"admitd/internal/domain/entities"
	"admitd/internal/ports/input"
	"admitd/internal/ports/output"
)

// EventService covers organizer event lifecycle: create, edit, delete.
type EventService struct {
	events output.EventRepository
	tx     output.TxRunner
}

func NewEventService(events output.EventRepository, tx output.TxRunner) *EventService {
	return &EventService{events: events, tx: tx}
}

var _ input.EventUseCase = (*EventService)(nil)

func (s *EventService) CreateEvent(ctx context.Context, event *entities.Event) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if err := s.events.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*entities.Event, error) {
	return s.events.FindByID(ctx, id)
}

// UpdateEvent rewrites the event's metadata. Shrinking maxSpots below the
// current accepted count would break the capacity invariant, so it is
// rejected.
func (s *EventService) UpdateEvent(ctx context.Context, event *entities.Event) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		current, err := s.events.FindByIDForUpdate(ctx, event.EventID)
		if err != nil {
			return fmt.Errorf("find event: %w", err)
		}
		if limit, bounded := event.MaxSpotsLimit(); bounded && len(current.AcceptedFromWaitlist) > limit {
			return domain.ErrCannotReduceSpots
		}

		current.Name = event.Name
		current.EventDate = event.EventDate
		current.RegistrationOpens = event.RegistrationOpens
		current.RegistrationCloses = event.RegistrationCloses
		current.MaxSpots = event.MaxSpots
		current.Cost = event.Cost
		current.GeolocationEnabled = event.GeolocationEnabled
		current.ImagePaths = event.ImagePaths
		if err := s.events.Update(ctx, current); err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		return nil
	})
}

// DeleteEvent removes the event document. Only the organizer may delete.
// Waitlist entries referencing the event stay behind as history.
func (s *EventService) DeleteEvent(ctx context.Context, id, callerID string) error {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find event: %w", err)
	}
	if event.OrganizerID != callerID {
		return domain.ErrNotOrganizer
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *EventService) EventsByOrganizer(ctx context.Context, organizerID string) ([]entities.Event, error) {
	return s.events.FindByOrganizerID(ctx, organizerID)
}
