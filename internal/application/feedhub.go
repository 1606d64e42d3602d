package application

import (
	"context"
	"fmt"
	"sync"

	"admitd/internal/ports/output"
)

// FeedHub fans one notification-feed subscription out to per-event group
// feeds. A process holds a single broker subscription no matter how many
// events are being watched.
type FeedHub struct {
	grouper *Grouper

	mu    sync.Mutex
	feeds map[string]*GroupFeed
}

func NewFeedHub(grouper *Grouper) *FeedHub {
	return &FeedHub{
		grouper: grouper,
		feeds:   map[string]*GroupFeed{},
	}
}

// Feed returns the group feed for the event, creating it on first use.
func (h *FeedHub) Feed(eventID string) *GroupFeed {
	h.mu.Lock()
	defer h.mu.Unlock()
	feed, ok := h.feeds[eventID]
	if !ok {
		feed = NewGroupFeed(h.grouper, eventID)
		h.feeds[eventID] = feed
	}
	return feed
}

// Run consumes feed ticks until ctx is done, refreshing the matching group
// feed. Ticks for events nobody watches are dropped.
func (h *FeedHub) Run(ctx context.Context, sub output.FeedSubscriber) error {
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
			h.mu.Lock()
			feed := h.feeds[eventID]
			h.mu.Unlock()
			if feed != nil {
				feed.Refresh(ctx)
			}
		}
	}
}
