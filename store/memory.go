package store

import (
	"context"
	"sync"
	"time"

	"botdex/ranking"
	"botdex/types"
	"botdex/votes"

	"golang.org/x/exp/slices"
)

// Memory is an in-memory bot store. It is the reference for what the
// Postgres store must do and backs the test suite; a single mutex stands in
// for row locking, which trivially gives AtomicVote its atomicity.
type Memory struct {
	mu     sync.RWMutex
	bots   map[string]types.Bot
	voters map[string]map[string]time.Time
}

func NewMemory() *Memory {
	return &Memory{
		bots:   make(map[string]types.Bot),
		voters: make(map[string]map[string]time.Time),
	}
}

func copyBot(b types.Bot) types.Bot {
	b.AdditionalOwners = slices.Clone(b.AdditionalOwners)
	b.Tags = slices.Clone(b.Tags)
	return b
}

func indexBot(b types.Bot) types.IndexBot {
	return types.IndexBot{
		BotID:     b.BotID,
		Name:      b.Name,
		Prefix:    b.Prefix,
		Owner:     b.Owner,
		Tags:      slices.Clone(b.Tags),
		Short:     b.Short,
		Library:   b.Library,
		Votes:     b.Votes,
		CreatedAt: b.CreatedAt,
	}
}

func (m *Memory) GetByID(ctx context.Context, id string) (*types.Bot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bot, ok := m.bots[id]

	if !ok {
		return nil, ErrNotFound
	}

	bot = copyBot(bot)
	return &bot, nil
}

func (m *Memory) Search(ctx context.Context, q SearchQuery) ([]types.IndexBot, error) {
	m.mu.RLock()

	matched := make([]types.Bot, 0, len(m.bots))

	for _, bot := range m.bots {
		if ranking.Matches(&bot, q.Search, q.Tags) {
			matched = append(matched, copyBot(bot))
		}
	}

	m.mu.RUnlock()

	ranking.Sort(matched, q.Order)

	page := ranking.Page(matched, q.Page, q.PerPage)

	indexBots := make([]types.IndexBot, 0, len(page))

	for _, bot := range page {
		indexBots = append(indexBots, indexBot(bot))
	}

	return indexBots, nil
}

func (m *Memory) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return int64(len(m.bots)), nil
}

func (m *Memory) Insert(ctx context.Context, bot *types.Bot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bots[bot.BotID] = copyBot(*bot)
	return nil
}

func (m *Memory) Replace(ctx context.Context, bot *types.Bot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.bots[bot.BotID]

	if !ok {
		return ErrNotFound
	}

	// Only mutable fields move over
	existing.Name = bot.Name
	existing.Prefix = bot.Prefix
	existing.AdditionalOwners = slices.Clone(bot.AdditionalOwners)
	existing.Tags = slices.Clone(bot.Tags)
	existing.Short = bot.Short
	existing.Long = bot.Long
	existing.IsHTML = bot.IsHTML
	existing.Library = bot.Library
	existing.Website = bot.Website
	existing.Support = bot.Support
	existing.Invite = bot.Invite

	m.bots[bot.BotID] = existing
	return nil
}

func (m *Memory) DeleteByID(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.bots[id]

	delete(m.bots, id)
	delete(m.voters, id)

	return ok, nil
}

func (m *Memory) AtomicVote(ctx context.Context, botID, userID string, now time.Time, window time.Duration) (*VoteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	bot, ok := m.bots[botID]

	if !ok {
		return nil, ErrNotFound
	}

	lastVoteAt, voted := m.voters[botID][userID]

	decision := votes.Evaluate(lastVoteAt, voted, now, window)

	if !decision.Allowed {
		bot = copyBot(bot)
		return &VoteResult{Bot: &bot, NextEligibleAt: decision.NextEligibleAt}, nil
	}

	bot.Votes++
	m.bots[botID] = bot

	if m.voters[botID] == nil {
		m.voters[botID] = make(map[string]time.Time)
	}

	m.voters[botID][userID] = now

	bot = copyBot(bot)
	return &VoteResult{Bot: &bot, Accepted: true, NextEligibleAt: now.Add(window)}, nil
}

func (m *Memory) LastVoteAt(ctx context.Context, botID, userID string) (time.Time, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lastVoteAt, voted := m.voters[botID][userID]
	return lastVoteAt, voted, nil
}

func (m *Memory) ResetAllVotes(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, bot := range m.bots {
		bot.Votes = 0
		m.bots[id] = bot
	}

	m.voters = make(map[string]map[string]time.Time)
	return nil
}
