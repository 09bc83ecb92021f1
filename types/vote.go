package types

import "time"

// Stores the hours, minutes and seconds until the user can vote again
type VoteWait struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// A user vote is a struct containing basic info on a users vote for a bot
type UserVote struct {
	HasVoted   bool       `json:"has_voted" description:"Whether the user is currently inside the cooldown window for this bot"`
	LastVoteAt *time.Time `json:"last_vote_at" description:"When the user last voted for this bot, if ever"`
	NextVote   *time.Time `json:"next_vote" description:"When the user may vote for this bot again. Unset if the user may vote right now and has never voted before"`
	Wait       *VoteWait  `json:"wait,omitempty" description:"Time left until the user can vote again. Only set while the cooldown is active"`
}
