// Package when parses the date strings carried on events. Dates are stored
// as the organizer typed them; this package only checks that a string is a
// date the service can reason about.
package when

import (
	"fmt"
	"strings"
	"time"
)

// Accepted layouts, tried in order.
var layouts = []string{
	"02/01/2006",
	"2006-01-02",
	"02/01/2006 15:04",
	"2006-01-02 15:04",
}

// Parse returns the time encoded by s in local time.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date required (DD/MM/YYYY)")
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected DD/MM/YYYY, e.g. 15/02/2025)", s)
}

// Valid reports whether s parses, or is empty. Empty date fields are
// allowed on events.
func Valid(s string) bool {
	if strings.TrimSpace(s) == "" {
		return true
	}
	_, err := Parse(s)
	return err == nil
}

// WindowOpen reports whether now falls inside the registration window.
// An empty bound leaves that side of the window open.
func WindowOpen(now time.Time, opens, closes string) (bool, error) {
	if strings.TrimSpace(opens) != "" {
		t, err := Parse(opens)
		if err != nil {
			return false, fmt.Errorf("registration opens: %w", err)
		}
		if now.Before(t) {
			return false, nil
		}
	}
	if strings.TrimSpace(closes) != "" {
		t, err := Parse(closes)
		if err != nil {
			return false, fmt.Errorf("registration closes: %w", err)
		}
		if now.After(t) {
			return false, nil
		}
	}
	return true, nil
}

// Format renders t the way organizers type dates.
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}
