package application

import (
	"context"
	"fmt"

	"admitd/internal/domain/entities"
	"admitd/internal/ports/input"
	"admitd/internal/ports/output"
)

// LedgerService owns the user-centric mirror of event membership. It has no
// business rules of its own: additions are set-union, removals are no-ops
// when absent, and Reconcile rebuilds both sets from the authoritative
// event documents.
type LedgerService struct {
	users  output.UserRepository
	events output.EventRepository
	outbox output.LedgerOutbox
	tx     output.TxRunner
}

func NewLedgerService(
	users output.UserRepository,
	events output.EventRepository,
	outbox output.LedgerOutbox,
	tx output.TxRunner,
) *LedgerService {
	return &LedgerService{users: users, events: events, outbox: outbox, tx: tx}
}

var _ input.LedgerUseCase = (*LedgerService)(nil)

func (s *LedgerService) AddToWaitlist(ctx context.Context, userID, eventID string) error {
	return s.mutate(ctx, userID, func(u *entities.User) { u.AddToWaitlist(eventID) })
}

func (s *LedgerService) RemoveFromWaitlist(ctx context.Context, userID, eventID string) error {
	return s.mutate(ctx, userID, func(u *entities.User) { u.RemoveFromWaitlist(eventID) })
}

func (s *LedgerService) AddToAcceptedEvents(ctx context.Context, userID, eventID string) error {
	return s.mutate(ctx, userID, func(u *entities.User) { u.AddToAcceptedEvents(eventID) })
}

func (s *LedgerService) RemoveFromAcceptedEvents(ctx context.Context, userID, eventID string) error {
	return s.mutate(ctx, userID, func(u *entities.User) { u.RemoveFromAcceptedEvents(eventID) })
}

func (s *LedgerService) WaitlistedEventIDs(ctx context.Context, userID string) ([]string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return append([]string(nil), user.WaitlistedEventIDs...), nil
}

func (s *LedgerService) AcceptedEventIDs(ctx context.Context, userID string) ([]string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return append([]string(nil), user.AcceptedEventIDs...), nil
}

// Reconcile recomputes the user's two ledger sets from scratch against all
// events referencing them, then clears the user's pending outbox rows. Both
// steps are idempotent, so the operation is safe to run any number of
// times: the event documents are the authority and a stale recompute is
// corrected by the next one.
func (s *LedgerService) Reconcile(ctx context.Context, userID string) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		user, err := s.users.FindByIDForUpdate(ctx, userID)
		if err != nil {
			return fmt.Errorf("find user: %w", err)
		}
		events, err := s.events.FindByMemberID(ctx, userID)
		if err != nil {
			return fmt.Errorf("find events for user: %w", err)
		}

		user.WaitlistedEventIDs = nil
		user.AcceptedEventIDs = nil
		for _, event := range events {
			if event.IsOnWaitingList(userID) {
				user.AddToWaitlist(event.EventID)
			}
			if event.HasAcceptedFromWaitlist(userID) || event.IsRegistered(userID) {
				user.AddToAcceptedEvents(event.EventID)
			}
		}
		if err := s.users.Save(ctx, user); err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		if err := s.outbox.DeleteForUser(ctx, userID); err != nil {
			return fmt.Errorf("clear outbox: %w", err)
		}
		return nil
	})
}

func (s *LedgerService) mutate(ctx context.Context, userID string, apply func(*entities.User)) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		user, err := s.users.FindByIDForUpdate(ctx, userID)
		if err != nil {
			return fmt.Errorf("find user: %w", err)
		}
		apply(user)
		if err := s.users.Save(ctx, user); err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		return nil
	})
}
