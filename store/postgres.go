package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"botdex/db"
	"botdex/ranking"
	"botdex/types"
	"botdex/votes"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	botColsArr = db.GetCols(types.Bot{})
	botCols    = strings.Join(botColsArr, ",")

	indexBotColsArr = db.GetCols(types.IndexBot{})
	indexBotCols    = strings.Join(indexBotColsArr, ",")
)

// Postgres is the pgx-backed bot store
type Postgres struct {
	Pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{Pool: pool}
}

func (p *Postgres) GetByID(ctx context.Context, id string) (*types.Bot, error) {
	rows, err := p.Pool.Query(ctx, "SELECT "+botCols+" FROM bots WHERE bot_id = $1", id)

	if err != nil {
		return nil, fmt.Errorf("failed to query bot: %w", err)
	}

	bot, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[types.Bot])

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to collect bot: %w", err)
	}

	return &bot, nil
}

func (p *Postgres) Search(ctx context.Context, q SearchQuery) ([]types.IndexBot, error) {
	page := q.Page

	if page < 1 {
		page = 1
	}

	tags := q.Tags

	if tags == nil {
		tags = []string{}
	}

	rows, err := p.Pool.Query(
		ctx,
		"SELECT "+indexBotCols+" FROM bots WHERE ($1 = '' OR name ILIKE $2 OR short ILIKE $2 OR long ILIKE $2) AND (cardinality($3::text[]) = 0 OR tags && $3) ORDER BY "+ranking.SQLOrder(q.Order)+" OFFSET $4 LIMIT $5",
		q.Search,
		"%"+q.Search+"%",
		tags,
		(page-1)*q.PerPage,
		q.PerPage,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to search bots: %w", err)
	}

	indexBots, err := pgx.CollectRows(rows, pgx.RowToStructByName[types.IndexBot])

	if errors.Is(err, pgx.ErrNoRows) {
		return []types.IndexBot{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to collect bots: %w", err)
	}

	return indexBots, nil
}

func (p *Postgres) Count(ctx context.Context) (int64, error) {
	var count int64

	err := p.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM bots").Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("failed to count bots: %w", err)
	}

	return count, nil
}

func (p *Postgres) Insert(ctx context.Context, bot *types.Bot) error {
	_, err := p.Pool.Exec(
		ctx,
		"INSERT INTO bots (bot_id, name, prefix, owner, additional_owners, tags, short, long, is_html, library, website, support, invite, votes, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)",
		bot.BotID,
		bot.Name,
		bot.Prefix,
		bot.Owner,
		bot.AdditionalOwners,
		bot.Tags,
		bot.Short,
		bot.Long,
		bot.IsHTML,
		bot.Library,
		bot.Website,
		bot.Support,
		bot.Invite,
		bot.Votes,
		bot.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert bot: %w", err)
	}

	return nil
}

func (p *Postgres) Replace(ctx context.Context, bot *types.Bot) error {
	tag, err := p.Pool.Exec(
		ctx,
		"UPDATE bots SET name = $2, prefix = $3, additional_owners = $4, tags = $5, short = $6, long = $7, is_html = $8, library = $9, website = $10, support = $11, invite = $12 WHERE bot_id = $1",
		bot.BotID,
		bot.Name,
		bot.Prefix,
		bot.AdditionalOwners,
		bot.Tags,
		bot.Short,
		bot.Long,
		bot.IsHTML,
		bot.Library,
		bot.Website,
		bot.Support,
		bot.Invite,
	)

	if err != nil {
		return fmt.Errorf("failed to update bot: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (p *Postgres) DeleteByID(ctx context.Context, id string) (bool, error) {
	tag, err := p.Pool.Exec(ctx, "DELETE FROM bots WHERE bot_id = $1", id)

	if err != nil {
		return false, fmt.Errorf("failed to delete bot: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// AtomicVote locks the bot row for the duration of the transaction, so a
// concurrent vote by the same user serializes behind this one and observes
// the timestamp written here
func (p *Postgres) AtomicVote(ctx context.Context, botID, userID string, now time.Time, window time.Duration) (*VoteResult, error) {
	tx, err := p.Pool.Begin(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to begin vote transaction: %w", err)
	}

	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, "SELECT "+botCols+" FROM bots WHERE bot_id = $1 FOR UPDATE", botID)

	if err != nil {
		return nil, fmt.Errorf("failed to lock bot row: %w", err)
	}

	bot, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[types.Bot])

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to collect bot: %w", err)
	}

	var lastVoteAt time.Time
	var voted bool

	err = tx.QueryRow(ctx, "SELECT last_vote_at FROM bot_voters WHERE bot_id = $1 AND user_id = $2", botID, userID).Scan(&lastVoteAt)

	if err == nil {
		voted = true
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to fetch last vote: %w", err)
	}

	decision := votes.Evaluate(lastVoteAt, voted, now, window)

	if !decision.Allowed {
		return &VoteResult{Bot: &bot, NextEligibleAt: decision.NextEligibleAt}, nil
	}

	err = tx.QueryRow(ctx, "UPDATE bots SET votes = votes + 1 WHERE bot_id = $1 RETURNING votes", botID).Scan(&bot.Votes)

	if err != nil {
		return nil, fmt.Errorf("failed to increment votes: %w", err)
	}

	_, err = tx.Exec(
		ctx,
		"INSERT INTO bot_voters (bot_id, user_id, last_vote_at) VALUES ($1, $2, $3) ON CONFLICT (bot_id, user_id) DO UPDATE SET last_vote_at = EXCLUDED.last_vote_at",
		botID,
		userID,
		now,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to record voter: %w", err)
	}

	err = tx.Commit(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to commit vote: %w", err)
	}

	return &VoteResult{Bot: &bot, Accepted: true, NextEligibleAt: now.Add(window)}, nil
}

func (p *Postgres) LastVoteAt(ctx context.Context, botID, userID string) (time.Time, bool, error) {
	var lastVoteAt time.Time

	err := p.Pool.QueryRow(ctx, "SELECT last_vote_at FROM bot_voters WHERE bot_id = $1 AND user_id = $2", botID, userID).Scan(&lastVoteAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, false, nil
	}

	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to fetch last vote: %w", err)
	}

	return lastVoteAt, true, nil
}

// ResetAllVotes runs in one transaction, but gives no ordering guarantee
// against in-flight votes: a vote racing the reset may land before or after
// it
func (p *Postgres) ResetAllVotes(ctx context.Context) error {
	tx, err := p.Pool.Begin(ctx)

	if err != nil {
		return fmt.Errorf("failed to begin reset transaction: %w", err)
	}

	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, "UPDATE bots SET votes = 0")

	if err != nil {
		return fmt.Errorf("failed to zero vote counts: %w", err)
	}

	_, err = tx.Exec(ctx, "DELETE FROM bot_voters")

	if err != nil {
		return fmt.Errorf("failed to clear voters: %w", err)
	}

	return tx.Commit(ctx)
}
