package application

import (
	"context"
	"testing"
	"time"

	"admitd/internal/domain/entities"
)

func grouperFixture() (*memStore, *Grouper) {
	store := newMemStore()
	store.events["ev-1"] = &entities.Event{EventID: "ev-1", OrganizerID: "org-1"}
	identity := flakyIdentity{names: map[string]string{
		"org-1": "Morgan Hale",
		"u-1":   "Avery Quill",
		"u-2":   "Briar Nock",
	}}
	return store, NewGrouper(recordRepo{store}, store, identity)
}

func TestGroupForEvent_FoldsRecordsBySenderAndMessage(t *testing.T) {
	t.Parallel()

	store, grouper := grouperFixture()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	store.records = []entities.NotificationRecord{
		{ID: "n1", EventID: "ev-1", Message: "Hi", SentBy: "org-1", UserID: "u-1", Timestamp: base},
		{ID: "n2", EventID: "ev-1", Message: "Hi", SentBy: "org-1", UserID: "u-2", Timestamp: base.Add(time.Second)},
	}

	groups, err := grouper.GroupForEvent(context.Background(), "ev-1")
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("group count = %d, want 1", len(groups))
	}
	g := groups[0]
	if g.Title != "Hi" || g.SentBy != "org-1" {
		t.Fatalf("group identity = %q/%q, want Hi/org-1", g.Title, g.SentBy)
	}
	if !g.Timestamp.Equal(base) {
		t.Fatalf("group timestamp = %v, want the first record's %v", g.Timestamp, base)
	}
	if len(g.Recipients) != 2 || g.Recipients[0].UserID != "u-1" || g.Recipients[1].UserID != "u-2" {
		t.Fatalf("recipients = %+v, want u-1 then u-2 in arrival order", g.Recipients)
	}
	if g.OrganizerDisplay != "Morgan Hale" {
		t.Fatalf("organizer display = %q, want Morgan Hale", g.OrganizerDisplay)
	}
}

func TestGroupForEvent_DuplicateRecordIsAbsorbed(t *testing.T) {
	t.Parallel()

	store, grouper := grouperFixture()
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	record := entities.NotificationRecord{
		ID: "n1", EventID: "ev-1", Message: "Hi", SentBy: "org-1", UserID: "u-1", Timestamp: at,
	}
	store.records = []entities.NotificationRecord{record, record}

	groups, err := grouper.GroupForEvent(context.Background(), "ev-1")
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("group count = %d, want 1", len(groups))
	}
	if got := len(groups[0].Recipients); got != 1 {
		t.Fatalf("recipient set size = %d, want 1 after duplicate delivery", got)
	}
}

func TestGroupForEvent_SortsNewestFirst(t *testing.T) {
	t.Parallel()

	store, grouper := grouperFixture()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	store.records = []entities.NotificationRecord{
		{ID: "n1", EventID: "ev-1", Message: "First announcement", SentBy: "org-1", UserID: "u-1", Timestamp: base},
		{ID: "n2", EventID: "ev-1", Message: "Second announcement", SentBy: "org-1", UserID: "u-1", Timestamp: base.Add(time.Hour)},
	}

	groups, err := grouper.GroupForEvent(context.Background(), "ev-1")
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("group count = %d, want 2", len(groups))
	}
	if groups[0].Title != "Second announcement" || groups[1].Title != "First announcement" {
		t.Fatalf("groups not newest-first: %q then %q", groups[0].Title, groups[1].Title)
	}
}

func TestGroupForEvent_UnresolvableRecipientDegradesToRawID(t *testing.T) {
	t.Parallel()

	store, grouper := grouperFixture()
	store.records = []entities.NotificationRecord{
		{ID: "n1", EventID: "ev-1", Message: "Hi", SentBy: "org-1", UserID: "u-unknown",
			Timestamp: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
	}

	groups, err := grouper.GroupForEvent(context.Background(), "ev-1")
	if err != nil {
		t.Fatalf("group must not fail on identity errors: %v", err)
	}
	if got := groups[0].Recipients[0].DisplayName; got != "u-unknown" {
		t.Fatalf("display name = %q, want raw id fallback", got)
	}
}

func TestGroupForEvent_OrganizerResolvedViaEventNotRecord(t *testing.T) {
	t.Parallel()

	store, grouper := grouperFixture()
	// Record written by an admin; the displayed sender is still the event's
	// organizer.
	store.records = []entities.NotificationRecord{
		{ID: "n1", EventID: "ev-1", Message: "Venue change", SentBy: "admin-9", UserID: "u-1",
			Timestamp: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
	}

	groups, err := grouper.GroupForEvent(context.Background(), "ev-1")
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	if groups[0].OrganizerDisplay != "Morgan Hale" {
		t.Fatalf("organizer display = %q, want the event organizer's name", groups[0].OrganizerDisplay)
	}
	if groups[0].SentBy != "admin-9" {
		t.Fatalf("sentBy = %q, want the raw sender preserved", groups[0].SentBy)
	}
}

func TestGroupForEvent_MissingEventDegradesToRecordSender(t *testing.T) {
	t.Parallel()

	store, grouper := grouperFixture()
	// Records can outlive their event; grouping still works, showing
	// whoever wrote each record instead of an organizer.
	store.records = []entities.NotificationRecord{
		{ID: "n1", EventID: "ev-gone", Message: "Hi", SentBy: "org-2", UserID: "u-1",
			Timestamp: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
	}

	groups, err := grouper.GroupForEvent(context.Background(), "ev-gone")
	if err != nil {
		t.Fatalf("group must not fail on a missing event: %v", err)
	}
	if got := groups[0].OrganizerDisplay; got != "org-2" {
		t.Fatalf("organizer display = %q, want the record's sender", got)
	}
}

func TestGroupFeed_BroadcastsRecomputedSnapshots(t *testing.T) {
	t.Parallel()

	store, grouper := grouperFixture()
	feed := NewGroupFeed(grouper, "ev-1")
	client := feed.RegisterClient(context.Background())
	defer feed.UnregisterClient(client)

	// Initial snapshot is delivered on registration.
	if got := <-client.Chan(); len(got) != 0 {
		t.Fatalf("initial snapshot = %+v, want empty", got)
	}

	store.records = []entities.NotificationRecord{
		{ID: "n1", EventID: "ev-1", Message: "Hi", SentBy: "org-1", UserID: "u-1",
			Timestamp: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
	}

	ticks := make(chan string, 2)
	ticks <- "ev-other" // ignored, different event
	ticks <- "ev-1"
	close(ticks)
	if err := feed.Run(context.Background(), chanSubscriber(ticks)); err != nil {
		t.Fatalf("run: %v", err)
	}

	snapshot := <-client.Chan()
	if len(snapshot) != 1 || snapshot[0].Title != "Hi" {
		t.Fatalf("broadcast snapshot = %+v, want the Hi group", snapshot)
	}
}

type chanSubscriber <-chan string

func (c chanSubscriber) Ticks(ctx context.Context) (<-chan string, error) {
	return c, nil
}
