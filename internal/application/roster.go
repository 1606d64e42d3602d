package application

import (
	"context"
	"fmt"
	"log"
	"time"

	"admitd/internal/domain"
	"admitd/internal/domain/entities"
	"admitd/internal/ports/input"
	"admitd/internal/ports/output"
)

// RosterService owns the per-event admission state machine:
//
//	NOT_ENTERED → WAITING → {ACCEPTED | DECLINED} → REGISTERED
//
// with WAITING → CANCELLED, and leave returning a waiting user to
// NOT_ENTERED. Every mutating operation runs as one check-then-act
// transaction locking the event row, so acceptance order near the capacity
// boundary is first-committed-wins. Each committed change enqueues the user
// for ledger mirroring and attempts the mirror inline; the background
// reconciler drains whatever the inline pass missed.
type RosterService struct {
	events   output.EventRepository
	users    output.UserRepository
	waitlist output.WaitlistRepository
	outbox   output.LedgerOutbox
	tx       output.TxRunner
	ledger   *LedgerService
	clock    func() time.Time
}

func NewRosterService(
	events output.EventRepository,
	users output.UserRepository,
	waitlist output.WaitlistRepository,
	outbox output.LedgerOutbox,
	tx output.TxRunner,
	ledger *LedgerService,
	clock func() time.Time,
) *RosterService {
	if clock == nil {
		clock = time.Now
	}
	return &RosterService{
		events:   events,
		users:    users,
		waitlist: waitlist,
		outbox:   outbox,
		tx:       tx,
		ledger:   ledger,
		clock:    clock,
	}
}

var _ input.RosterUseCase = (*RosterService)(nil)

// JoinWaitlist adds the user to the event's waiting list and creates (or
// revives) the waitlist entry. There is no capacity check at join time:
// capacity is enforced at acceptance. A cancelled entry is terminal, so
// rejoining after cancel fails with ErrInvalidTransition.
func (s *RosterService) JoinWaitlist(ctx context.Context, eventID, userID string, geo *input.Geo) error {
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		event, err := s.events.FindByIDForUpdate(ctx, eventID)
		if err != nil {
			return fmt.Errorf("find event: %w", err)
		}
		if _, err := s.users.FindByID(ctx, userID); err != nil {
			return fmt.Errorf("find user: %w", err)
		}
		if event.IsMember(userID) {
			return domain.ErrAlreadyMember
		}
		prior, err := s.waitlist.FindByEventIDAndUserID(ctx, eventID, userID)
		if err != nil {
			return fmt.Errorf("find waitlist entry: %w", err)
		}
		if prior != nil && prior.Status == domain.StatusCancelled {
			return domain.ErrInvalidTransition
		}

		event.AddToWaitingList(userID)
		if err := s.events.Update(ctx, event); err != nil {
			return fmt.Errorf("update event: %w", err)
		}

		entry := &entities.WaitlistEntry{
			UserID:    userID,
			EventID:   eventID,
			JoinedAt:  s.clock(),
			Status:    domain.StatusWaiting,
			EventName: event.Name,
		}
		if geo != nil && event.GeolocationEnabled {
			lat, lon := geo.Latitude, geo.Longitude
			entry.Latitude, entry.Longitude = &lat, &lon
		}
		if err := s.waitlist.Upsert(ctx, entry); err != nil {
			return fmt.Errorf("upsert waitlist entry: %w", err)
		}
		return s.outbox.Enqueue(ctx, userID)
	})
	if err != nil {
		return err
	}
	s.mirror(ctx, userID)
	return nil
}

// LeaveWaitlist removes the user from the waiting list only. Leaving when
// not waiting is a no-op; an accepted or registered user must decline or
// cancel through the proper path instead.
func (s *RosterService) LeaveWaitlist(ctx context.Context, eventID, userID string) error {
	var changed bool
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		changed = false
		event, err := s.events.FindByIDForUpdate(ctx, eventID)
		if err != nil {
			return fmt.Errorf("find event: %w", err)
		}
		if event.HasAcceptedFromWaitlist(userID) || event.IsRegistered(userID) {
			return domain.ErrInvalidTransition
		}
		if !event.RemoveFromWaitingList(userID) {
			return nil
		}
		changed = true
		if err := s.events.Update(ctx, event); err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		if err := s.waitlist.UpdateStatus(ctx, eventID, userID, domain.StatusRemoved, nil); err != nil {
			return fmt.Errorf("update waitlist entry: %w", err)
		}
		return s.outbox.Enqueue(ctx, userID)
	})
	if err != nil {
		return err
	}
	if changed {
		s.mirror(ctx, userID)
	}
	return nil
}

// AcceptFromWaitlist atomically moves the user from waiting to accepted,
// subject to capacity, stamps the entry with acceptedAt, and mirrors the
// change into the user's ledger.
func (s *RosterService) AcceptFromWaitlist(ctx context.Context, eventID, userID string) error {
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		event, err := s.events.FindByIDForUpdate(ctx, eventID)
		if err != nil {
			return fmt.Errorf("find event: %w", err)
		}
		if !event.IsOnWaitingList(userID) {
			return domain.ErrNotOnWaitlist
		}
		if limit, bounded := event.MaxSpotsLimit(); bounded && len(event.AcceptedFromWaitlist)+1 > limit {
			return domain.ErrCapacityExceeded
		}

		event.AcceptFromWaitlist(userID)
		if err := s.events.Update(ctx, event); err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		acceptedAt := s.clock()
		if err := s.waitlist.UpdateStatus(ctx, eventID, userID, domain.StatusAccepted, &acceptedAt); err != nil {
			return fmt.Errorf("update waitlist entry: %w", err)
		}
		return s.outbox.Enqueue(ctx, userID)
	})
	if err != nil {
		return err
	}
	s.mirror(ctx, userID)
	return nil
}

// DeclineFromWaitlist records a declined outcome for a waiting user. The
// entry is marked removed rather than cancelled, so a declined user may
// rejoin the waitlist later.
func (s *RosterService) DeclineFromWaitlist(ctx context.Context, eventID, userID string) error {
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		event, err := s.events.FindByIDForUpdate(ctx, eventID)
		if err != nil {
			return fmt.Errorf("find event: %w", err)
		}
		if !event.IsOnWaitingList(userID) {
			return domain.ErrNotOnWaitlist
		}
		event.RemoveFromWaitingList(userID)
		if err := s.events.Update(ctx, event); err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		if err := s.waitlist.UpdateStatus(ctx, eventID, userID, domain.StatusRemoved, nil); err != nil {
			return fmt.Errorf("update waitlist entry: %w", err)
		}
		return s.outbox.Enqueue(ctx, userID)
	})
	if err != nil {
		return err
	}
	s.mirror(ctx, userID)
	return nil
}

// RegisterUser completes registration for a previously accepted user.
// organizerOverride permits direct registration without prior acceptance;
// capacity is a property of the event, not the path of entry, so the
// override is still capacity-checked. Re-registering is a no-op.
func (s *RosterService) RegisterUser(ctx context.Context, eventID, userID string, organizerOverride bool) error {
	var changed bool
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		changed = false
		event, err := s.events.FindByIDForUpdate(ctx, eventID)
		if err != nil {
			return fmt.Errorf("find event: %w", err)
		}
		if event.IsRegistered(userID) {
			return nil
		}
		if !organizerOverride && !event.HasAcceptedFromWaitlist(userID) {
			return domain.ErrInvalidTransition
		}
		if limit, bounded := event.MaxSpotsLimit(); bounded && event.SignupCount+1 > limit {
			return domain.ErrCapacityExceeded
		}
		event.AddRegisteredUser(userID)
		changed = true
		if err := s.events.Update(ctx, event); err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		return s.outbox.Enqueue(ctx, userID)
	})
	if err != nil {
		return err
	}
	if changed {
		s.mirror(ctx, userID)
	}
	return nil
}

// Cancel moves the user's entry to cancelled from any active state and
// removes the user from every membership set. Cancelling an
// already-cancelled entry is a no-op so that timeout-and-retry stays safe;
// a user in no membership set (never joined, left, or declined) has
// nothing to cancel and gets ErrNotOnWaitlist.
func (s *RosterService) Cancel(ctx context.Context, eventID, userID string) error {
	var changed bool
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		changed = false
		event, err := s.events.FindByIDForUpdate(ctx, eventID)
		if err != nil {
			return fmt.Errorf("find event: %w", err)
		}
		entry, err := s.waitlist.FindByEventIDAndUserID(ctx, eventID, userID)
		if err != nil {
			return fmt.Errorf("find waitlist entry: %w", err)
		}
		if entry != nil && entry.Status == domain.StatusCancelled {
			return nil
		}
		// A removed entry is history from a decline or leave; only active
		// membership can be cancelled, so it counts the same as no entry.
		if !event.IsMember(userID) {
			return domain.ErrNotOnWaitlist
		}

		event.RemoveFromWaitingList(userID)
		event.RemoveFromAcceptedList(userID)
		event.RemoveRegisteredUser(userID)
		changed = true
		if err := s.events.Update(ctx, event); err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		if entry != nil {
			if err := s.waitlist.UpdateStatus(ctx, eventID, userID, domain.StatusCancelled, nil); err != nil {
				return fmt.Errorf("update waitlist entry: %w", err)
			}
		}
		return s.outbox.Enqueue(ctx, userID)
	})
	if err != nil {
		return err
	}
	if changed {
		s.mirror(ctx, userID)
	}
	return nil
}

func (s *RosterService) IsOnWaitingList(ctx context.Context, eventID, userID string) (bool, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return false, fmt.Errorf("find event: %w", err)
	}
	return event.IsOnWaitingList(userID), nil
}

func (s *RosterService) IsRegistered(ctx context.Context, eventID, userID string) (bool, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return false, fmt.Errorf("find event: %w", err)
	}
	return event.IsRegistered(userID), nil
}

func (s *RosterService) HasAcceptedFromWaitlist(ctx context.Context, eventID, userID string) (bool, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return false, fmt.Errorf("find event: %w", err)
	}
	return event.HasAcceptedFromWaitlist(userID), nil
}

func (s *RosterService) GetSignupCount(ctx context.Context, eventID string) (int, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("find event: %w", err)
	}
	return event.SignupCount, nil
}

func (s *RosterService) WaitingEntrants(ctx context.Context, eventID string) ([]entities.WaitlistEntry, error) {
	return s.waitlist.FindByEventIDAndStatus(ctx, eventID, domain.StatusWaiting)
}

func (s *RosterService) AcceptedEntrants(ctx context.Context, eventID string) ([]entities.WaitlistEntry, error) {
	return s.waitlist.FindByEventIDAndStatus(ctx, eventID, domain.StatusAccepted)
}

func (s *RosterService) CancelledEntrants(ctx context.Context, eventID string) ([]entities.WaitlistEntry, error) {
	return s.waitlist.FindByEventIDAndStatus(ctx, eventID, domain.StatusCancelled)
}

// mirror applies the user-side ledger mutation right after the event-side
// commit. The event side is authoritative; a failed inline pass is only
// logged because the outbox row left behind by the transaction will be
// retried by the background reconciler.
func (s *RosterService) mirror(ctx context.Context, userID string) {
	if s.ledger == nil {
		return
	}
	if err := s.ledger.Reconcile(ctx, userID); err != nil {
		log.Printf("roster: inline ledger mirror for user %s failed, leaving to reconciler: %v", userID, err)
	}
}
