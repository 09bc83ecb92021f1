// The bot directory service itself.
//
// All durable state lives in the store; the service is stateless between
// calls and safe for concurrent use. Mutating operations take the acting
// user explicitly, as verified upstream by the auth layer.
package bots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"botdex/perms"
	"botdex/ranking"
	"botdex/store"
	"botdex/types"
	"botdex/votes"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Number of bots on an index page
const DefaultPerPage = 18

// Size of the canned "top bots" listing
const TopCount = 6

var (
	ErrNotFound  = errors.New("bot was not found")
	ErrForbidden = errors.New("you do not have sufficient permission for this")
)

// CooldownError is returned by Vote while the voters cooldown window is
// still running. NextEligibleAt must reach the caller verbatim so it can be
// shown to the user.
type CooldownError struct {
	NextEligibleAt time.Time
}

func (e *CooldownError) Error() string {
	return "you need to wait until " + e.NextEligibleAt.Format(time.RFC3339) + " to vote again"
}

// Actor is the verified identity of the user making a request
type Actor struct {
	ID   string
	Role perms.RoleLevel
}

type Service struct {
	Store  store.BotStore
	Window time.Duration

	// Injectable for tests
	Now func() time.Time
}

func New(s store.BotStore, window time.Duration) *Service {
	if window <= 0 {
		window = votes.DefaultCooldown
	}

	return &Service{
		Store:  s,
		Window: window,
		Now:    time.Now,
	}
}

func (s *Service) Show(ctx context.Context, id string) (*types.Bot, error) {
	bot, err := s.Store.GetByID(ctx, id)

	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to fetch bot: %w", err)
	}

	return bot, nil
}

func (s *Service) List(ctx context.Context, search string, order ranking.Order, page, perPage int, tags []string) ([]types.IndexBot, error) {
	if page < 1 {
		page = 1
	}

	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	return s.Store.Search(ctx, store.SearchQuery{
		Search:  search,
		Order:   order,
		Page:    page,
		PerPage: perPage,
		Tags:    tags,
	})
}

// Top is the canned "top bots" listing: most voted, first page, no filters
func (s *Service) Top(ctx context.Context) ([]types.IndexBot, error) {
	return s.List(ctx, "", ranking.OrderMostVoted, 1, TopCount, nil)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.Store.Count(ctx)
}

// Upsert creates a bot when the payload carries no id, and edits an
// existing one otherwise. Anyone may create; editing needs admin or bot
// ownership. Edits never touch votes, the owner or the creation time.
func (s *Service) Upsert(ctx context.Context, payload types.CreateBot, actor Actor) (*types.Bot, error) {
	if payload.BotID == "" {
		return s.create(ctx, payload, actor)
	}

	return s.update(ctx, payload, actor)
}

func (s *Service) create(ctx context.Context, payload types.CreateBot, actor Actor) (*types.Bot, error) {
	bot := &types.Bot{
		BotID:     uuid.NewString(),
		Owner:     actor.ID,
		Votes:     0,
		CreatedAt: s.Now().UTC(),
	}

	applyDetails(bot, payload)

	err := s.Store.Insert(ctx, bot)

	if err != nil {
		return nil, fmt.Errorf("failed to insert bot: %w", err)
	}

	return bot, nil
}

func (s *Service) update(ctx context.Context, payload types.CreateBot, actor Actor) (*types.Bot, error) {
	bot, err := s.Store.GetByID(ctx, payload.BotID)

	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to fetch bot: %w", err)
	}

	if !perms.CanMutate(actor.Role, bot.Owner, actor.ID) {
		return nil, ErrForbidden
	}

	applyDetails(bot, payload)

	err = s.Store.Replace(ctx, bot)

	if err != nil {
		return nil, fmt.Errorf("failed to update bot: %w", err)
	}

	return bot, nil
}

func applyDetails(bot *types.Bot, payload types.CreateBot) {
	bot.Name = payload.Name
	bot.Prefix = payload.Prefix
	bot.AdditionalOwners = payload.AdditionalOwners
	bot.Tags = payload.Tags
	bot.Short = payload.Short
	bot.Long = payload.Long
	bot.IsHTML = payload.IsHTML
	bot.Library = payload.Library
	bot.Website = pgtype.Text{String: payload.Website, Valid: payload.Website != ""}
	bot.Support = pgtype.Text{String: payload.Support, Valid: payload.Support != ""}
	bot.Invite = pgtype.Text{String: payload.Invite, Valid: payload.Invite != ""}
}

// Delete removes a bot. Deletion is idempotent: an id that resolves to
// nothing reports deleted=false instead of erroring, since the permission
// check is moot for a bot that no longer exists.
func (s *Service) Delete(ctx context.Context, id string, actor Actor) (bool, error) {
	bot, err := s.Store.GetByID(ctx, id)

	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to fetch bot: %w", err)
	}

	if !perms.CanMutate(actor.Role, bot.Owner, actor.ID) {
		return false, ErrForbidden
	}

	return s.Store.DeleteByID(ctx, id)
}

// Vote casts a vote by userID on a bot. The cooldown check and the counter
// increment are one atomic store operation; on a running cooldown the
// returned error carries when the user may vote next.
func (s *Service) Vote(ctx context.Context, id, userID string) (*types.Bot, error) {
	res, err := s.Store.AtomicVote(ctx, id, userID, s.Now().UTC(), s.Window)

	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to vote: %w", err)
	}

	if !res.Accepted {
		return nil, &CooldownError{NextEligibleAt: res.NextEligibleAt}
	}

	return res.Bot, nil
}

// VoteCheck reports whether a user can vote for a bot right now, and if
// not, how long they have to wait
func (s *Service) VoteCheck(ctx context.Context, id, userID string) (*types.UserVote, error) {
	_, err := s.Store.GetByID(ctx, id)

	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to fetch bot: %w", err)
	}

	lastVoteAt, voted, err := s.Store.LastVoteAt(ctx, id, userID)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch last vote: %w", err)
	}

	now := s.Now().UTC()
	decision := votes.Evaluate(lastVoteAt, voted, now, s.Window)

	userVote := &types.UserVote{
		HasVoted: !decision.Allowed,
	}

	if voted {
		userVote.LastVoteAt = &lastVoteAt
		userVote.NextVote = &decision.NextEligibleAt
	}

	if !decision.Allowed {
		userVote.Wait = votes.Wait(decision.NextEligibleAt, now)
	}

	return userVote, nil
}

// ResetVotes zeroes every bots vote count and clears all voter timestamps.
// Only the list owner may do this.
func (s *Service) ResetVotes(ctx context.Context, actor Actor) error {
	if !perms.CanResetAll(actor.Role) {
		return ErrForbidden
	}

	err := s.Store.ResetAllVotes(ctx)

	if err != nil {
		return fmt.Errorf("failed to reset votes: %w", err)
	}

	return nil
}
