package entities

import (
	"strconv"
	"strings"
	"time"
)

// Event holds event metadata plus the three membership sets driven by the
// admission state machine. The sets are stored as ordered ID slices but
// behave as sets: every add is idempotent.
type Event struct {
	EventID            string
	Name               string
	EventDate          string
	RegistrationOpens  string
	RegistrationCloses string
	MaxSpots           string // string-encoded integer, empty = unbounded
	Cost               string // e.g. "$10" or "Free", may be empty
	GeolocationEnabled bool
	ImagePaths         []string
	OrganizerID        string

	WaitingList          []string
	AcceptedFromWaitlist []string
	RegisteredUsers      []string
	SignupCount          int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MaxSpotsLimit parses MaxSpots. ok is false when the event is unbounded
// (empty or unparsable value).
func (e *Event) MaxSpotsLimit() (int, bool) {
	s := strings.TrimSpace(e.MaxSpots)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// IsMember reports whether the user appears in any membership set.
func (e *Event) IsMember(userID string) bool {
	return e.IsOnWaitingList(userID) || e.HasAcceptedFromWaitlist(userID) || e.IsRegistered(userID)
}

func (e *Event) IsOnWaitingList(userID string) bool {
	return containsID(e.WaitingList, userID)
}

func (e *Event) HasAcceptedFromWaitlist(userID string) bool {
	return containsID(e.AcceptedFromWaitlist, userID)
}

func (e *Event) IsRegistered(userID string) bool {
	return containsID(e.RegisteredUsers, userID)
}

// AddToWaitingList adds the user to the waiting list. Returns false when
// the user was already present.
func (e *Event) AddToWaitingList(userID string) bool {
	if containsID(e.WaitingList, userID) {
		return false
	}
	e.WaitingList = append(e.WaitingList, userID)
	return true
}

// RemoveFromWaitingList removes the user from the waiting list. Returns
// false when the user was not present.
func (e *Event) RemoveFromWaitingList(userID string) bool {
	next, removed := removeID(e.WaitingList, userID)
	e.WaitingList = next
	return removed
}

// AcceptFromWaitlist moves the user from waiting to accepted. Returns false
// when the user is not waiting. The user never appears in both sets.
func (e *Event) AcceptFromWaitlist(userID string) bool {
	if !containsID(e.WaitingList, userID) {
		return false
	}
	e.WaitingList, _ = removeID(e.WaitingList, userID)
	if !containsID(e.AcceptedFromWaitlist, userID) {
		e.AcceptedFromWaitlist = append(e.AcceptedFromWaitlist, userID)
	}
	return true
}

// RemoveFromAcceptedList removes the user from the accepted set.
func (e *Event) RemoveFromAcceptedList(userID string) bool {
	next, removed := removeID(e.AcceptedFromWaitlist, userID)
	e.AcceptedFromWaitlist = next
	return removed
}

// AddRegisteredUser adds the user to the registered set and bumps the
// signup count. Re-registering the same user is a no-op.
func (e *Event) AddRegisteredUser(userID string) bool {
	if containsID(e.RegisteredUsers, userID) {
		return false
	}
	e.RegisteredUsers = append(e.RegisteredUsers, userID)
	e.SignupCount++
	return true
}

// RemoveRegisteredUser removes the user from the registered set and drops
// the signup count.
func (e *Event) RemoveRegisteredUser(userID string) bool {
	next, removed := removeID(e.RegisteredUsers, userID)
	e.RegisteredUsers = next
	if removed {
		e.SignupCount--
	}
	return removed
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) ([]string, bool) {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...), true
		}
	}
	return ids, false
}
