package store

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"botdex/ranking"
	"botdex/types"
	"botdex/votes"
)

var t0 = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func seedBot(t *testing.T, m *Memory, id string) {
	t.Helper()

	err := m.Insert(context.Background(), &types.Bot{
		BotID:     id,
		Name:      "Bot " + id,
		Prefix:    "!",
		Owner:     "owner-" + id,
		Tags:      []string{"fun"},
		Short:     "A bot named " + id,
		Library:   "discordgo",
		CreatedAt: t0,
	})

	if err != nil {
		t.Fatalf("failed to insert bot: %v", err)
	}
}

func TestAtomicVoteConcurrentUsers(t *testing.T) {
	m := NewMemory()
	seedBot(t, m, "b1")

	const voters = 50

	var wg sync.WaitGroup

	for i := 0; i < voters; i++ {
		wg.Add(1)

		go func(n int) {
			defer wg.Done()

			res, err := m.AtomicVote(context.Background(), "b1", "user-"+strconv.Itoa(n), t0.Add(time.Hour), votes.DefaultCooldown)

			if err != nil {
				t.Errorf("vote failed: %v", err)
				return
			}

			if !res.Accepted {
				t.Errorf("vote by user-%d unexpectedly rejected", n)
			}
		}(i)
	}

	wg.Wait()

	bot, err := m.GetByID(context.Background(), "b1")

	if err != nil {
		t.Fatalf("failed to fetch bot: %v", err)
	}

	if bot.Votes != voters {
		t.Errorf("votes = %d, want %d (no lost updates)", bot.Votes, voters)
	}
}

func TestAtomicVoteConcurrentSameUser(t *testing.T) {
	m := NewMemory()
	seedBot(t, m, "b1")

	const attempts = 20

	var wg sync.WaitGroup
	var mu sync.Mutex
	var accepted int

	for i := 0; i < attempts; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			res, err := m.AtomicVote(context.Background(), "b1", "u1", t0.Add(time.Hour), votes.DefaultCooldown)

			if err != nil {
				t.Errorf("vote failed: %v", err)
				return
			}

			if res.Accepted {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	if accepted != 1 {
		t.Errorf("accepted = %d, want exactly 1 for concurrent same-user votes", accepted)
	}

	bot, _ := m.GetByID(context.Background(), "b1")

	if bot.Votes != 1 {
		t.Errorf("votes = %d, want 1", bot.Votes)
	}
}

func TestAtomicVoteUnknownBot(t *testing.T) {
	m := NewMemory()

	_, err := m.AtomicVote(context.Background(), "nope", "u1", t0, votes.DefaultCooldown)

	if err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestResetAllVotes(t *testing.T) {
	m := NewMemory()
	seedBot(t, m, "b1")
	seedBot(t, m, "b2")

	m.AtomicVote(context.Background(), "b1", "u1", t0, votes.DefaultCooldown)
	m.AtomicVote(context.Background(), "b2", "u2", t0, votes.DefaultCooldown)

	err := m.ResetAllVotes(context.Background())

	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	for _, id := range []string{"b1", "b2"} {
		bot, _ := m.GetByID(context.Background(), id)

		if bot.Votes != 0 {
			t.Errorf("bot %s votes = %d after reset, want 0", id, bot.Votes)
		}
	}

	// Cooldowns are gone too: the same users may vote again immediately
	res, err := m.AtomicVote(context.Background(), "b1", "u1", t0.Add(time.Minute), votes.DefaultCooldown)

	if err != nil || !res.Accepted {
		t.Errorf("vote after reset: accepted=%v err=%v, want accepted", res != nil && res.Accepted, err)
	}
}

func TestReplaceDoesNotTouchVotes(t *testing.T) {
	m := NewMemory()
	seedBot(t, m, "b1")

	m.AtomicVote(context.Background(), "b1", "u1", t0, votes.DefaultCooldown)

	err := m.Replace(context.Background(), &types.Bot{
		BotID:   "b1",
		Name:    "Renamed",
		Prefix:  "?",
		Owner:   "someone-else", // must be ignored
		Tags:    []string{"music"},
		Short:   "Renamed bot",
		Library: "discordpy",
		Votes:   999, // must be ignored
	})

	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	bot, _ := m.GetByID(context.Background(), "b1")

	if bot.Name != "Renamed" {
		t.Errorf("name = %q, want Renamed", bot.Name)
	}

	if bot.Votes != 1 {
		t.Errorf("votes = %d, replace must not touch the counter", bot.Votes)
	}

	if bot.Owner != "owner-b1" {
		t.Errorf("owner = %q, replace must not touch ownership", bot.Owner)
	}
}

func TestDeleteByID(t *testing.T) {
	m := NewMemory()
	seedBot(t, m, "b1")

	deleted, err := m.DeleteByID(context.Background(), "b1")

	if err != nil || !deleted {
		t.Fatalf("delete: deleted=%v err=%v", deleted, err)
	}

	deleted, err = m.DeleteByID(context.Background(), "b1")

	if err != nil || deleted {
		t.Errorf("second delete: deleted=%v err=%v, want false and no error", deleted, err)
	}
}

func TestSearchOrderAndPaging(t *testing.T) {
	m := NewMemory()

	for i := 0; i < 5; i++ {
		id := "b" + strconv.Itoa(i)

		m.Insert(context.Background(), &types.Bot{
			BotID:     id,
			Name:      "Bot " + id,
			Prefix:    "!",
			Owner:     "o",
			Tags:      []string{"fun"},
			Short:     "s",
			Library:   "discordgo",
			Votes:     i,
			CreatedAt: t0.Add(time.Duration(i) * time.Hour),
		})
	}

	got, err := m.Search(context.Background(), SearchQuery{Order: ranking.OrderMostVoted, Page: 1, PerPage: 3})

	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if len(got) != 3 || got[0].BotID != "b4" || got[1].BotID != "b3" {
		t.Errorf("unexpected mostVoted page: %+v", got)
	}

	// Way out of range pages are empty, not an error
	got, err = m.Search(context.Background(), SearchQuery{Order: ranking.OrderRecent, Page: 100, PerPage: 18})

	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if len(got) != 0 {
		t.Errorf("expected empty page, got %d results", len(got))
	}
}
