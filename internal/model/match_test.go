package model

import (
	"testing"
	"time"
)

func TestMatchStatusPredicates(t *testing.T) {
	cases := []struct {
		status      MatchStatus
		terminal    bool
		respondable bool
	}{
		{MatchStatusSuggested, false, true},
		{MatchStatusViewed, false, true},
		{MatchStatusInterested, false, false},
		{MatchStatusAccepted, true, false},
		{MatchStatusRejected, true, false},
	}
	for _, c := range cases {
		if got := c.status.IsTerminal(); got != c.terminal {
			t.Errorf("%s.IsTerminal()=%v, want %v", c.status, got, c.terminal)
		}
		if got := c.status.Respondable(); got != c.respondable {
			t.Errorf("%s.Respondable()=%v, want %v", c.status, got, c.respondable)
		}
	}
}

func TestMatchExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	if (&Match{}).Expired(now) {
		t.Error("a match without an expiry never expires")
	}
	if (&Match{ExpiresAt: &future}).Expired(now) {
		t.Error("future expiry reported as expired")
	}
	if !(&Match{ExpiresAt: &past}).Expired(now) {
		t.Error("past expiry not reported as expired")
	}
}

func TestDeltaMapValidate(t *testing.T) {
	ok := DeltaMap{DimensionPace: 5, DimensionRiskTolerance: -3}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid map rejected: %v", err)
	}
	bad := DeltaMap{"charisma": 5}
	if err := bad.Validate(); err == nil {
		t.Fatal("unknown dimension accepted")
	}
}
