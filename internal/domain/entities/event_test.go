package entities

import "testing"

func TestMaxSpotsLimit(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw     string
		limit   int
		bounded bool
	}{
		{"", 0, false},
		{"  ", 0, false},
		{"25", 25, true},
		{" 10 ", 10, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"lots", 0, false},
	}
	for _, tc := range cases {
		e := Event{MaxSpots: tc.raw}
		limit, bounded := e.MaxSpotsLimit()
		if limit != tc.limit || bounded != tc.bounded {
			t.Errorf("MaxSpotsLimit(%q) = (%d, %v), want (%d, %v)",
				tc.raw, limit, bounded, tc.limit, tc.bounded)
		}
	}
}

func TestAcceptFromWaitlist_KeepsSetsDisjoint(t *testing.T) {
	t.Parallel()

	e := Event{}
	if !e.AddToWaitingList("u-1") {
		t.Fatal("first add returned false")
	}
	if e.AddToWaitingList("u-1") {
		t.Fatal("duplicate add returned true")
	}
	if !e.AcceptFromWaitlist("u-1") {
		t.Fatal("accept of waiting user returned false")
	}
	if e.IsOnWaitingList("u-1") {
		t.Fatal("user remained waiting after accept")
	}
	if !e.HasAcceptedFromWaitlist("u-1") {
		t.Fatal("user not accepted after accept")
	}
	if e.AcceptFromWaitlist("u-1") {
		t.Fatal("accept of non-waiting user returned true")
	}
}

func TestRegisteredUsers_CountTracksSet(t *testing.T) {
	t.Parallel()

	e := Event{}
	if !e.AddRegisteredUser("u-1") || e.AddRegisteredUser("u-1") {
		t.Fatal("register idempotence broken")
	}
	if e.SignupCount != 1 {
		t.Fatalf("signup count = %d, want 1", e.SignupCount)
	}
	if !e.RemoveRegisteredUser("u-1") || e.RemoveRegisteredUser("u-1") {
		t.Fatal("unregister idempotence broken")
	}
	if e.SignupCount != 0 {
		t.Fatalf("signup count = %d, want 0", e.SignupCount)
	}
}

func TestUserLedgerSets_StayDisjoint(t *testing.T) {
	t.Parallel()

	u := User{}
	u.AddToWaitlist("ev-1")
	u.AddToWaitlist("ev-1")
	if len(u.WaitlistedEventIDs) != 1 {
		t.Fatalf("waitlisted set size = %d, want 1", len(u.WaitlistedEventIDs))
	}
	u.AddToAcceptedEvents("ev-1")
	if u.IsWaitlistedFor("ev-1") {
		t.Fatal("event still on the waitlist side after acceptance")
	}
	if !u.IsAcceptedInto("ev-1") {
		t.Fatal("event missing from the accepted side after acceptance")
	}
}
