package entities

import "time"

// User is a profile plus the user-centric ledger of event membership: the
// events the user is waitlisted for and the events the user has been
// accepted into. The two sets mirror the corresponding Event membership
// sets and never contain the same event ID at once.
type User struct {
	UserID      string
	FullName    string
	Age         int64
	Email       string
	Phone       string
	AccountType string

	WaitlistedEventIDs []string
	AcceptedEventIDs   []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AddToWaitlist records the event on the user's waitlist. Duplicate adds
// are absorbed.
func (u *User) AddToWaitlist(eventID string) {
	if !containsID(u.WaitlistedEventIDs, eventID) {
		u.WaitlistedEventIDs = append(u.WaitlistedEventIDs, eventID)
	}
}

// RemoveFromWaitlist is a no-op when the event is absent.
func (u *User) RemoveFromWaitlist(eventID string) {
	u.WaitlistedEventIDs, _ = removeID(u.WaitlistedEventIDs, eventID)
}

// AddToAcceptedEvents records the acceptance and drops the event from the
// waitlist side, keeping the two sets disjoint.
func (u *User) AddToAcceptedEvents(eventID string) {
	if !containsID(u.AcceptedEventIDs, eventID) {
		u.AcceptedEventIDs = append(u.AcceptedEventIDs, eventID)
	}
	u.RemoveFromWaitlist(eventID)
}

// RemoveFromAcceptedEvents is a no-op when the event is absent.
func (u *User) RemoveFromAcceptedEvents(eventID string) {
	u.AcceptedEventIDs, _ = removeID(u.AcceptedEventIDs, eventID)
}

// IsWaitlistedFor reports whether the event is on the user's waitlist side.
func (u *User) IsWaitlistedFor(eventID string) bool {
	return containsID(u.WaitlistedEventIDs, eventID)
}

// IsAcceptedInto reports whether the event is on the user's accepted side.
func (u *User) IsAcceptedInto(eventID string) bool {
	return containsID(u.AcceptedEventIDs, eventID)
}
