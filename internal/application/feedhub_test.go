package application

import (
	"context"
	"testing"
	"time"

	"admitd/internal/domain/entities"
)

func TestFeedHub_SharesOneFeedPerEvent(t *testing.T) {
	t.Parallel()

	_, grouper := grouperFixture()
	hub := NewFeedHub(grouper)

	if hub.Feed("ev-1") != hub.Feed("ev-1") {
		t.Fatal("same event must map to the same feed")
	}
	if hub.Feed("ev-1") == hub.Feed("ev-2") {
		t.Fatal("different events must map to different feeds")
	}
}

func TestFeedHub_DispatchesTicksToWatchedFeeds(t *testing.T) {
	t.Parallel()

	store, grouper := grouperFixture()
	hub := NewFeedHub(grouper)

	client := hub.Feed("ev-1").RegisterClient(context.Background())
	defer hub.Feed("ev-1").UnregisterClient(client)
	<-client.Chan() // initial snapshot

	store.records = []entities.NotificationRecord{
		{ID: "n1", EventID: "ev-1", Message: "Hi", SentBy: "org-1", UserID: "u-1",
			Timestamp: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
	}

	ticks := make(chan string, 2)
	ticks <- "ev-unwatched" // dropped, no feed registered
	ticks <- "ev-1"
	close(ticks)
	if err := hub.Run(context.Background(), chanSubscriber(ticks)); err != nil {
		t.Fatalf("run: %v", err)
	}

	snapshot := <-client.Chan()
	if len(snapshot) != 1 || snapshot[0].Title != "Hi" {
		t.Fatalf("snapshot = %+v, want the Hi group", snapshot)
	}
}
