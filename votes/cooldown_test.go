package votes

import (
	"testing"
	"time"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestEvaluateNeverVoted(t *testing.T) {
	d := Evaluate(time.Time{}, false, t0, DefaultCooldown)

	if !d.Allowed {
		t.Fatal("a user who has never voted must be allowed to vote")
	}

	if !d.NextEligibleAt.IsZero() {
		t.Errorf("expected zero NextEligibleAt, got %v", d.NextEligibleAt)
	}
}

func TestEvaluateBlockedInsideWindow(t *testing.T) {
	d := Evaluate(t0, true, t0.Add(1*time.Hour), DefaultCooldown)

	if d.Allowed {
		t.Fatal("a vote one hour after the last must be blocked")
	}

	if want := t0.Add(DefaultCooldown); !d.NextEligibleAt.Equal(want) {
		t.Errorf("NextEligibleAt = %v, want %v", d.NextEligibleAt, want)
	}
}

func TestEvaluateBoundary(t *testing.T) {
	// Exactly at lastVoteAt + window the vote is allowed
	d := Evaluate(t0, true, t0.Add(DefaultCooldown), DefaultCooldown)

	if !d.Allowed {
		t.Error("a vote at exactly lastVoteAt + window must be allowed")
	}

	// One tick before, it is not
	d = Evaluate(t0, true, t0.Add(DefaultCooldown-time.Nanosecond), DefaultCooldown)

	if d.Allowed {
		t.Error("a vote one tick before lastVoteAt + window must be blocked")
	}
}

func TestWait(t *testing.T) {
	now := t0
	next := t0.Add(2*time.Hour + 30*time.Minute + 5*time.Second)

	w := Wait(next, now)

	if w.Hours != 2 || w.Minutes != 30 || w.Seconds != 5 {
		t.Errorf("Wait = %02d:%02d:%02d, want 02:30:05", w.Hours, w.Minutes, w.Seconds)
	}

	// A wait that has already elapsed clamps to zero
	w = Wait(t0, t0.Add(time.Hour))

	if w.Hours != 0 || w.Minutes != 0 || w.Seconds != 0 {
		t.Errorf("elapsed Wait = %02d:%02d:%02d, want 00:00:00", w.Hours, w.Minutes, w.Seconds)
	}
}
