package application

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"admitd/internal/domain/entities"
	"admitd/internal/ports/input"
	"admitd/internal/ports/output"
)

// NotificationService handles organizer message fan-out: one immutable
// record per recipient, all stamped with the same send time, plus a feed
// announcement so live grouped views recompute.
type NotificationService struct {
	records output.NotificationRepository
	events  output.EventRepository
	grouper *Grouper
	feed    output.FeedPublisher
	clock   func() time.Time
	newID   func() string
}

func NewNotificationService(
	records output.NotificationRepository,
	events output.EventRepository,
	grouper *Grouper,
	feed output.FeedPublisher,
	clock func() time.Time,
	newID func() string,
) *NotificationService {
	if clock == nil {
		clock = time.Now
	}
	if newID == nil {
		newID = uuid.NewString
	}
	return &NotificationService{
		records: records,
		events:  events,
		grouper: grouper,
		feed:    feed,
		clock:   clock,
		newID:   newID,
	}
}

var _ input.NotificationUseCase = (*NotificationService)(nil)

// Send creates one record per distinct recipient. The records are the
// authoritative store; the feed announcement afterwards is best-effort.
func (s *NotificationService) Send(ctx context.Context, eventID, senderID, message string, recipients []string) (int, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return 0, fmt.Errorf("find event: %w", err)
	}

	now := s.clock()
	seen := make(map[string]struct{}, len(recipients))
	batch := make([]entities.NotificationRecord, 0, len(recipients))
	for _, userID := range recipients {
		if userID == "" {
			continue
		}
		if _, dup := seen[userID]; dup {
			continue
		}
		seen[userID] = struct{}{}
		batch = append(batch, entities.NotificationRecord{
			ID:        s.newID(),
			EventID:   eventID,
			Message:   message,
			SentBy:    senderID,
			UserID:    userID,
			Timestamp: now,
		})
	}
	if len(batch) == 0 {
		return 0, nil
	}
	if err := s.records.Add(ctx, batch); err != nil {
		return 0, fmt.Errorf("add notification records: %w", err)
	}
	if s.feed != nil {
		if err := s.feed.Announce(ctx, eventID); err != nil {
			log.Printf("notification: announce event %s: %v", eventID, err)
		}
	}
	return len(batch), nil
}

func (s *NotificationService) GroupForEvent(ctx context.Context, eventID string) ([]entities.GroupedNotification, error) {
	return s.grouper.GroupForEvent(ctx, eventID)
}

func (s *NotificationService) HistoryForUser(ctx context.Context, userID string) ([]entities.NotificationRecord, error) {
	return s.records.FindByUserID(ctx, userID)
}
