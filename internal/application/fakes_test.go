package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"admitd/internal/domain"
	"admitd/internal/domain/entities"
)

// memStore is an in-memory implementation of every output port the
// application services touch. Reads and writes copy values so tests cannot
// alias service-held state.
type memStore struct {
	mu      sync.Mutex
	events  map[string]*entities.Event
	users   map[string]*entities.User
	entries map[string]*entities.WaitlistEntry
	records []entities.NotificationRecord
	outbox  []string

	announced []string
}

func newMemStore() *memStore {
	return &memStore{
		events:  map[string]*entities.Event{},
		users:   map[string]*entities.User{},
		entries: map[string]*entities.WaitlistEntry{},
	}
}

func entryKey(eventID, userID string) string { return eventID + "|" + userID }

func cloneEvent(e *entities.Event) *entities.Event {
	c := *e
	c.ImagePaths = append([]string(nil), e.ImagePaths...)
	c.WaitingList = append([]string(nil), e.WaitingList...)
	c.AcceptedFromWaitlist = append([]string(nil), e.AcceptedFromWaitlist...)
	c.RegisteredUsers = append([]string(nil), e.RegisteredUsers...)
	return &c
}

func cloneUser(u *entities.User) *entities.User {
	c := *u
	c.WaitlistedEventIDs = append([]string(nil), u.WaitlistedEventIDs...)
	c.AcceptedEventIDs = append([]string(nil), u.AcceptedEventIDs...)
	return &c
}

func cloneEntry(e *entities.WaitlistEntry) *entities.WaitlistEntry {
	c := *e
	return &c
}

func (s *memStore) Create(ctx context.Context, event *entities.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.EventID] = cloneEvent(event)
	return nil
}

func (s *memStore) FindByID(ctx context.Context, id string) (*entities.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return cloneEvent(event), nil
}

func (s *memStore) FindByIDForUpdate(ctx context.Context, id string) (*entities.Event, error) {
	return s.FindByID(ctx, id)
}

func (s *memStore) FindByOrganizerID(ctx context.Context, organizerID string) ([]entities.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entities.Event
	for _, event := range s.events {
		if event.OrganizerID == organizerID {
			out = append(out, *cloneEvent(event))
		}
	}
	return out, nil
}

func (s *memStore) FindByMemberID(ctx context.Context, userID string) ([]entities.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entities.Event
	for _, event := range s.events {
		if event.IsMember(userID) {
			out = append(out, *cloneEvent(event))
		}
	}
	return out, nil
}

func (s *memStore) Update(ctx context.Context, event *entities.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[event.EventID]; !ok {
		return domain.ErrEventNotFound
	}
	s.events[event.EventID] = cloneEvent(event)
	return nil
}

func (s *memStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.events, id)
	return nil
}

// userRepo narrows memStore to output.UserRepository: Event and User share
// the FindByID name, so the fake exposes users through a distinct view.
type userRepo struct{ s *memStore }

func (r userRepo) FindByID(ctx context.Context, id string) (*entities.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (r userRepo) FindByIDForUpdate(ctx context.Context, id string) (*entities.User, error) {
	return r.FindByID(ctx, id)
}

func (r userRepo) Save(ctx context.Context, user *entities.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[user.UserID] = cloneUser(user)
	return nil
}

func (s *memStore) Upsert(ctx context.Context, entry *entities.WaitlistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entryKey(entry.EventID, entry.UserID)] = cloneEntry(entry)
	return nil
}

func (s *memStore) FindByEventIDAndUserID(ctx context.Context, eventID, userID string) (*entities.WaitlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[entryKey(eventID, userID)]
	if !ok {
		return nil, nil
	}
	return cloneEntry(entry), nil
}

func (s *memStore) FindByEventIDAndStatus(ctx context.Context, eventID, status string) ([]entities.WaitlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entities.WaitlistEntry
	for _, entry := range s.entries {
		if entry.EventID == eventID && entry.Status == status {
			out = append(out, *cloneEntry(entry))
		}
	}
	return out, nil
}

func (s *memStore) FindByUserID(ctx context.Context, userID string) ([]entities.WaitlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entities.WaitlistEntry
	for _, entry := range s.entries {
		if entry.UserID == userID {
			out = append(out, *cloneEntry(entry))
		}
	}
	return out, nil
}

func (s *memStore) UpdateStatus(ctx context.Context, eventID, userID, status string, acceptedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[entryKey(eventID, userID)]
	if !ok {
		return fmt.Errorf("waitlist entry %s/%s not found", eventID, userID)
	}
	entry.Status = status
	if acceptedAt != nil {
		entry.AcceptedAt = acceptedAt
	}
	return nil
}

func (s *memStore) Add(ctx context.Context, records []entities.NotificationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
	return nil
}

func (s *memStore) FindByEventID(ctx context.Context, eventID string) ([]entities.NotificationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entities.NotificationRecord
	for _, record := range s.records {
		if record.EventID == eventID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (s *memStore) FindByUserIDRecords(ctx context.Context, userID string) ([]entities.NotificationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entities.NotificationRecord
	for _, record := range s.records {
		if record.UserID == userID {
			out = append(out, record)
		}
	}
	return out, nil
}

// recordRepo narrows memStore to output.NotificationRepository; the
// per-user lookup clashes with the waitlist repo's method name.
type recordRepo struct{ s *memStore }

func (r recordRepo) Add(ctx context.Context, records []entities.NotificationRecord) error {
	return r.s.Add(ctx, records)
}

func (r recordRepo) FindByEventID(ctx context.Context, eventID string) ([]entities.NotificationRecord, error) {
	return r.s.FindByEventID(ctx, eventID)
}

func (r recordRepo) FindByUserID(ctx context.Context, userID string) ([]entities.NotificationRecord, error) {
	return r.s.FindByUserIDRecords(ctx, userID)
}

func (s *memStore) Enqueue(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outbox = append(s.outbox, userID)
	return nil
}

func (s *memStore) ListPending(ctx context.Context, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit > len(s.outbox) {
		limit = len(s.outbox)
	}
	return append([]string(nil), s.outbox[:limit]...), nil
}

func (s *memStore) DeleteForUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.outbox[:0]
	for _, id := range s.outbox {
		if id != userID {
			kept = append(kept, id)
		}
	}
	s.outbox = kept
	return nil
}

func (s *memStore) Announce(ctx context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.announced = append(s.announced, eventID)
	return nil
}

// passTx runs fn directly; the fakes have no transactions.
type passTx struct{}

func (passTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// flakyIdentity resolves from a fixed table and fails for anyone absent.
type flakyIdentity struct {
	names map[string]string
}

func (f flakyIdentity) DisplayName(ctx context.Context, userID string) (string, error) {
	name, ok := f.names[userID]
	if !ok {
		return "", domain.ErrUserNotFound
	}
	return name, nil
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func sequentialIDs(ids ...string) func() string {
	i := 0
	return func() string {
		if i >= len(ids) {
			return fmt.Sprintf("overflow-%d", i)
		}
		id := ids[i]
		i++
		return id
	}
}

// newRig wires a full service graph over one memStore.
type rig struct {
	store  *memStore
	roster *RosterService
	ledger *LedgerService
	events *EventService
}

func newRig(clock func() time.Time) *rig {
	store := newMemStore()
	ledger := NewLedgerService(userRepo{store}, store, store, passTx{})
	roster := NewRosterService(store, userRepo{store}, store, store, passTx{}, ledger, clock)
	events := NewEventService(store, passTx{})
	return &rig{store: store, roster: roster, ledger: ledger, events: events}
}

func (r *rig) seedEvent(id, organizerID, maxSpots string) {
	r.store.events[id] = &entities.Event{
		EventID:     id,
		Name:        "Event " + id,
		MaxSpots:    maxSpots,
		OrganizerID: organizerID,
	}
}

func (r *rig) seedUser(id, name string) {
	r.store.users[id] = &entities.User{UserID: id, FullName: name, AccountType: domain.AccountEntrant}
}
