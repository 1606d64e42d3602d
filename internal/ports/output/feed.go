package output

import "context"

// FeedPublisher announces that an event's notification record set changed.
// Announcements are best-effort: fan-out persistence is authoritative and a
// lost announcement only delays the next grouped-view recompute.
type FeedPublisher interface {
	Announce(ctx context.Context, eventID string) error
}

// FeedSubscriber delivers event IDs whose notification record set changed.
// The same event ID may be delivered more than once; consumers recompute
// from the full stored snapshot, so duplicates are harmless.
type FeedSubscriber interface {
	Ticks(ctx context.Context) (<-chan string, error)
}
