package application

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"admitd/internal/domain/entities"
	"admitd/internal/ports/output"
)

// Grouper folds an event's raw per-recipient notification records into
// distinct send events keyed by (message, sender). The raw feed may replay
// records and deliver them in any order; the grouped view is recomputed
// from the full stored snapshot on every pass, so duplicates and reordering
// are absorbed.
type Grouper struct {
	records  output.NotificationRepository
	events   output.EventRepository
	identity output.IdentityResolver
}

func NewGrouper(
	records output.NotificationRepository,
	events output.EventRepository,
	identity output.IdentityResolver,
) *Grouper {
	return &Grouper{records: records, events: events, identity: identity}
}

// GroupForEvent builds the grouped view for one event, newest group first.
//
// The displayed organizer is resolved through the event's own organizer
// field, not the record's sentBy: the record identifies who technically
// wrote it, the event identifies who is shown as sender. Identity lookups
// that fail degrade to the raw identifier, and a failed event lookup
// degrades to the record's sender; both are logged, never surfaced.
func (g *Grouper) GroupForEvent(ctx context.Context, eventID string) ([]entities.GroupedNotification, error) {
	records, err := g.records.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("find notification records: %w", err)
	}

	organizerDisplay := g.organizerDisplay(ctx, eventID)

	byKey := make(map[entities.GroupKey]*entities.GroupedNotification)
	var order []entities.GroupKey
	for _, record := range records {
		key := record.Key()
		group, ok := byKey[key]
		if !ok {
			display := organizerDisplay
			if display == "" {
				// Event lookup failed, so no organizer to show; fall
				// back to whoever wrote the record.
				display = record.SentBy
			}
			group = &entities.GroupedNotification{
				Title:            record.Message,
				SentBy:           record.SentBy,
				OrganizerDisplay: display,
				Timestamp:        record.Timestamp,
			}
			byKey[key] = group
			order = append(order, key)
		}
		if !groupHasRecipient(group, record.UserID) {
			group.Recipients = append(group.Recipients, entities.GroupRecipient{
				UserID:      record.UserID,
				DisplayName: g.recipientDisplay(ctx, record.UserID),
			})
		}
	}

	groups := make([]entities.GroupedNotification, 0, len(order))
	for _, key := range order {
		groups = append(groups, *byKey[key])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Timestamp.After(groups[j].Timestamp)
	})
	return groups, nil
}

func (g *Grouper) organizerDisplay(ctx context.Context, eventID string) string {
	event, err := g.events.FindByID(ctx, eventID)
	if err != nil {
		log.Printf("grouper: find event %s: %v", eventID, err)
		return ""
	}
	name, err := g.identity.DisplayName(ctx, event.OrganizerID)
	if err != nil {
		log.Printf("grouper: resolve organizer %s: %v", event.OrganizerID, err)
		return event.OrganizerID
	}
	return name
}

func (g *Grouper) recipientDisplay(ctx context.Context, userID string) string {
	name, err := g.identity.DisplayName(ctx, userID)
	if err != nil {
		log.Printf("grouper: resolve recipient %s: %v", userID, err)
		return userID
	}
	return name
}

func groupHasRecipient(group *entities.GroupedNotification, userID string) bool {
	for _, r := range group.Recipients {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// GroupClient receives grouped-view snapshots from a GroupFeed.
type GroupClient struct {
	ch   chan []entities.GroupedNotification
	done chan struct{}
}

func (c *GroupClient) Chan() <-chan []entities.GroupedNotification {
	return c.ch
}

// GroupFeed pushes a freshly recomputed grouped view to registered clients
// every time the notification feed announces a change for the event. The
// internal group map is touched only by the consuming goroutine; clients
// receive immutable snapshots.
type GroupFeed struct {
	grouper *Grouper
	eventID string

	mu      sync.Mutex
	clients map[*GroupClient]struct{}
}

func NewGroupFeed(grouper *Grouper, eventID string) *GroupFeed {
	return &GroupFeed{
		grouper: grouper,
		eventID: eventID,
		clients: map[*GroupClient]struct{}{},
	}
}

func (f *GroupFeed) RegisterClient(ctx context.Context) *GroupClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	client := &GroupClient{
		ch:   make(chan []entities.GroupedNotification, 4),
		done: make(chan struct{}),
	}
	f.clients[client] = struct{}{}
	if groups, err := f.grouper.GroupForEvent(ctx, f.eventID); err == nil {
		client.ch <- groups
	}
	return client
}

func (f *GroupFeed) UnregisterClient(c *GroupClient) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clients[c]; ok {
		delete(f.clients, c)
		close(c.ch)
		close(c.done)
	}
}

// Run consumes feed ticks until ctx is done, recomputing and broadcasting
// on every tick scoped to this feed's event.
func (f *GroupFeed) Run(ctx context.Context, sub output.FeedSubscriber) error {
	ticks, err := sub.Ticks(ctx)
	if err != nil {
		return fmt.Errorf("subscribe notification feed: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case eventID, ok := <-ticks:
			if !ok {
				return nil
			}
			if eventID != f.eventID {
				continue
			}
			f.Refresh(ctx)
		}
	}
}

// Refresh recomputes the grouped view and pushes it to every client.
func (f *GroupFeed) Refresh(ctx context.Context) {
	groups, err := f.grouper.GroupForEvent(ctx, f.eventID)
	if err != nil {
		log.Printf("grouper: recompute for event %s: %v", f.eventID, err)
		return
	}
	f.broadcast(groups)
}

func (f *GroupFeed) broadcast(groups []entities.GroupedNotification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for c := range f.clients {
		select {
		case c.ch <- groups:
		default:
			// Slow client: drop this snapshot, the next tick supersedes it.
		}
	}
}
