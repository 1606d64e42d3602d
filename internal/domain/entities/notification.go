package entities

import "time"

// NotificationRecord is one per-recipient delivery record. Immutable once
// created.
type NotificationRecord struct {
	ID        string
	EventID   string
	Message   string
	SentBy    string
	UserID    string
	Timestamp time.Time
}

// GroupKey identifies one logical send event: one organizer message
// delivered to N recipients at approximately one time.
type GroupKey struct {
	Message string
	SentBy  string
}

// Key returns the record's grouping key.
func (r NotificationRecord) Key() GroupKey {
	return GroupKey{Message: r.Message, SentBy: r.SentBy}
}

// GroupRecipient is one resolved recipient of a grouped notification. When
// the display name could not be resolved, DisplayName falls back to the
// raw user ID.
type GroupRecipient struct {
	UserID      string
	DisplayName string
}

// GroupedNotification folds the per-recipient records for one grouping key
// into a single audit row: who was sent what, when, by whom.
type GroupedNotification struct {
	Title            string
	OrganizerDisplay string
	SentBy           string
	Timestamp        time.Time // timestamp of the first record observed for the key
	Recipients       []GroupRecipient
}
