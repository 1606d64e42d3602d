package application

import (
	"context"
	"testing"

	"admitd/internal/domain/entities"
)

func TestLedger_DuplicateAddYieldsSingleEntry(t *testing.T) {
	t.Parallel()

	r := newRig(nil)
	r.seedUser("u-1", "Avery Quill")

	if err := r.ledger.AddToWaitlist(context.Background(), "u-1", "ev-1"); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := r.ledger.AddToWaitlist(context.Background(), "u-1", "ev-1"); err != nil {
		t.Fatalf("second add: %v", err)
	}

	ids, err := r.ledger.WaitlistedEventIDs(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("waitlisted ids: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("waitlisted set size = %d, want 1", len(ids))
	}
}

func TestLedger_AcceptMovesEventBetweenSets(t *testing.T) {
	t.Parallel()

	r := newRig(nil)
	r.seedUser("u-1", "Avery Quill")

	if err := r.ledger.AddToWaitlist(context.Background(), "u-1", "ev-1"); err != nil {
		t.Fatalf("add to waitlist: %v", err)
	}
	if err := r.ledger.AddToAcceptedEvents(context.Background(), "u-1", "ev-1"); err != nil {
		t.Fatalf("add to accepted: %v", err)
	}

	waitlisted, err := r.ledger.WaitlistedEventIDs(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("waitlisted ids: %v", err)
	}
	accepted, err := r.ledger.AcceptedEventIDs(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("accepted ids: %v", err)
	}
	if len(waitlisted) != 0 {
		t.Fatalf("event still waitlisted after acceptance: %v", waitlisted)
	}
	if len(accepted) != 1 || accepted[0] != "ev-1" {
		t.Fatalf("accepted set = %v, want [ev-1]", accepted)
	}
}

func TestLedger_RemovalsAreNoOpsWhenAbsent(t *testing.T) {
	t.Parallel()

	r := newRig(nil)
	r.seedUser("u-1", "Avery Quill")

	if err := r.ledger.RemoveFromWaitlist(context.Background(), "u-1", "ev-404"); err != nil {
		t.Fatalf("remove absent waitlist entry: %v", err)
	}
	if err := r.ledger.RemoveFromAcceptedEvents(context.Background(), "u-1", "ev-404"); err != nil {
		t.Fatalf("remove absent accepted entry: %v", err)
	}
}

func TestReconcile_RebuildsSetsFromEvents(t *testing.T) {
	t.Parallel()

	r := newRig(nil)
	r.seedUser("u-1", "Avery Quill")
	r.store.events["ev-waiting"] = &entities.Event{
		EventID:     "ev-waiting",
		WaitingList: []string{"u-1"},
	}
	r.store.events["ev-accepted"] = &entities.Event{
		EventID:              "ev-accepted",
		AcceptedFromWaitlist: []string{"u-1"},
	}
	r.store.events["ev-registered"] = &entities.Event{
		EventID:         "ev-registered",
		RegisteredUsers: []string{"u-1"},
		SignupCount:     1,
	}
	// Stale ledger rows the reconcile pass must discard.
	r.store.users["u-1"].WaitlistedEventIDs = []string{"ev-stale"}
	r.store.users["u-1"].AcceptedEventIDs = []string{"ev-gone"}

	if err := r.ledger.Reconcile(context.Background(), "u-1"); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	user := r.store.users["u-1"]
	if !user.IsWaitlistedFor("ev-waiting") || user.IsWaitlistedFor("ev-stale") {
		t.Fatalf("waitlisted set after reconcile = %v", user.WaitlistedEventIDs)
	}
	if !user.IsAcceptedInto("ev-accepted") || !user.IsAcceptedInto("ev-registered") || user.IsAcceptedInto("ev-gone") {
		t.Fatalf("accepted set after reconcile = %v", user.AcceptedEventIDs)
	}

	// Running it again changes nothing.
	before := *cloneUser(user)
	if err := r.ledger.Reconcile(context.Background(), "u-1"); err != nil {
		t.Fatalf("second reconcile: %v", err)
	}
	after := r.store.users["u-1"]
	if len(after.WaitlistedEventIDs) != len(before.WaitlistedEventIDs) ||
		len(after.AcceptedEventIDs) != len(before.AcceptedEventIDs) {
		t.Fatalf("reconcile is not idempotent: before=%+v after=%+v", before, after)
	}
}

func TestReconcile_DrainsOutboxRows(t *testing.T) {
	t.Parallel()

	r := newRig(nil)
	r.seedUser("u-1", "Avery Quill")
	r.store.outbox = []string{"u-1", "u-1", "u-other"}

	if err := r.ledger.Reconcile(context.Background(), "u-1"); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(r.store.outbox) != 1 || r.store.outbox[0] != "u-other" {
		t.Fatalf("outbox after reconcile = %v, want [u-other]", r.store.outbox)
	}
}
