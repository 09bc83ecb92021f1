// Persistence for bots and their votes.
//
// Two implementations exist: Postgres (the real one) and Memory (a
// mutex-guarded reference used by tests). Both enforce the vote cooldown
// inside AtomicVote so the check and the write are one atomic unit.
package store

import (
	"context"
	"errors"
	"time"

	"botdex/ranking"
	"botdex/types"
)

var ErrNotFound = errors.New("bot not found")

// SearchQuery is a listing request against a store
type SearchQuery struct {
	// Case-insensitive substring match on name/short/long. Empty matches all.
	Search string

	Order ranking.Order

	// 1-indexed. Values below 1 are treated as 1.
	Page    int
	PerPage int

	// Bots matching any of these tags. Empty means no tag filter.
	Tags []string
}

// VoteResult is the outcome of an AtomicVote call
type VoteResult struct {
	// The bot, with its vote count as of this call
	Bot *types.Bot

	// Whether the vote was counted
	Accepted bool

	// When the user may vote next. Always set.
	NextEligibleAt time.Time
}

// BotStore is the persistence boundary of the list
type BotStore interface {
	GetByID(ctx context.Context, id string) (*types.Bot, error)
	Search(ctx context.Context, q SearchQuery) ([]types.IndexBot, error)
	Count(ctx context.Context) (int64, error)
	Insert(ctx context.Context, bot *types.Bot) error

	// Replace overwrites a bots mutable fields (everything except id,
	// owner, votes and creation time)
	Replace(ctx context.Context, bot *types.Bot) error

	// DeleteByID removes a bot, reporting whether anything was removed
	DeleteByID(ctx context.Context, id string) (bool, error)

	// AtomicVote checks the users cooldown and, if it has elapsed,
	// increments the bots vote count and records the new vote timestamp.
	// Check and write happen as one atomic unit: concurrent votes by
	// different users must both land, and concurrent votes by the same
	// user must resolve to exactly one acceptance.
	AtomicVote(ctx context.Context, botID, userID string, now time.Time, window time.Duration) (*VoteResult, error)

	// LastVoteAt returns when a user last voted for a bot, if ever
	LastVoteAt(ctx context.Context, botID, userID string) (time.Time, bool, error)

	// ResetAllVotes zeroes every bots vote count and clears all vote
	// timestamps
	ResetAllVotes(ctx context.Context) error
}
