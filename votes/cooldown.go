// Vote cooldown logic.
//
// Cooldowns are tracked per (bot, user) pair: a user voting for one bot has
// no effect on how soon they may vote for another, and two users voting for
// the same bot never block each other.
package votes

import (
	"time"

	"botdex/types"
)

// DefaultCooldown is the window a user must wait between two accepted votes
// on the same bot
const DefaultCooldown = 8 * time.Hour

// Decision is the outcome of a cooldown evaluation
type Decision struct {
	// Whether a vote is permitted right now
	Allowed bool

	// When the user may next vote. Zero when the user has never voted.
	NextEligibleAt time.Time
}

// Evaluate decides whether a vote is permitted at `now` given the users last
// accepted vote. A user who has never voted is always allowed. The boundary
// is inclusive: a vote at exactly lastVoteAt + window is allowed.
func Evaluate(lastVoteAt time.Time, voted bool, now time.Time, window time.Duration) Decision {
	if !voted {
		return Decision{Allowed: true}
	}

	next := lastVoteAt.Add(window)

	if now.Before(next) {
		return Decision{NextEligibleAt: next}
	}

	return Decision{Allowed: true, NextEligibleAt: next}
}

// Wait breaks down the time between now and next into the hours, minutes and
// seconds left, for display to the blocked voter
func Wait(next, now time.Time) *types.VoteWait {
	left := next.Sub(now)

	if left < 0 {
		left = 0
	}

	hours := left / time.Hour
	mins := (left - hours*time.Hour) / time.Minute
	secs := (left - hours*time.Hour - mins*time.Minute) / time.Second

	return &types.VoteWait{
		Hours:   int(hours),
		Minutes: int(mins),
		Seconds: int(secs),
	}
}
