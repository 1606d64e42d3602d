package entities

import "time"

// WaitlistEntry tracks one user×event relationship through the admission
// process. Entries are history records: they change status but are never
// physically deleted.
type WaitlistEntry struct {
	UserID     string
	EventID    string
	JoinedAt   time.Time
	Status     string
	AcceptedAt *time.Time
	Notes      string

	// Denormalized for display and log screens.
	EventName string
	UserName  string

	// Join location, present only when the event has geolocation enabled.
	Latitude  *float64
	Longitude *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
