package domain

// Waitlist entry statuses. Entries are history records: cancelled and
// removed are terminal for the entry, but a removed entry is reset to
// waiting when the user rejoins.
const (
	StatusWaiting   = "waiting"
	StatusAccepted  = "accepted"
	StatusCancelled = "cancelled"
	StatusRemoved   = "removed"
)

// Account types.
const (
	AccountEntrant   = "Entrant"
	AccountOrganizer = "Organizer"
	AccountAdmin     = "Admin"
)
