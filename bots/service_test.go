package bots

import (
	"context"
	"errors"
	"testing"
	"time"

	"botdex/perms"
	"botdex/ranking"
	"botdex/store"
	"botdex/types"
)

var epoch = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

// clock is a settable Now for tests
type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func (c *clock) set(t time.Time) { c.t = t }

func newService() (*Service, *clock) {
	c := &clock{t: epoch}
	svc := New(store.NewMemory(), 0)
	svc.Now = c.now
	return svc, c
}

func payload(name string) types.CreateBot {
	return types.CreateBot{
		Name:    name,
		Prefix:  "!",
		Tags:    []string{"fun"},
		Short:   "A bot named " + name,
		Library: "discordgo",
	}
}

func mustCreate(t *testing.T, svc *Service, actor Actor, name string) *types.Bot {
	t.Helper()

	bot, err := svc.Upsert(context.Background(), payload(name), actor)

	if err != nil {
		t.Fatalf("failed to create bot: %v", err)
	}

	return bot
}

func TestVoteTimeline(t *testing.T) {
	svc, c := newService()

	owner := Actor{ID: "owner1", Role: perms.RoleMember}
	bot := mustCreate(t, svc, owner, "Timeline")

	ctx := context.Background()

	// First vote an hour in lands
	c.set(epoch.Add(1 * time.Hour))
	got, err := svc.Vote(ctx, bot.BotID, "u1")

	if err != nil {
		t.Fatalf("first vote failed: %v", err)
	}

	if got.Votes != 1 {
		t.Errorf("votes = %d, want 1", got.Votes)
	}

	// One hour later u1 is still inside the window
	c.set(epoch.Add(2 * time.Hour))
	_, err = svc.Vote(ctx, bot.BotID, "u1")

	var cooldown *CooldownError

	if !errors.As(err, &cooldown) {
		t.Fatalf("expected CooldownError, got %v", err)
	}

	if want := epoch.Add(9 * time.Hour); !cooldown.NextEligibleAt.Equal(want) {
		t.Errorf("NextEligibleAt = %v, want %v", cooldown.NextEligibleAt, want)
	}

	// A different user is unaffected by u1s cooldown
	c.set(epoch.Add(3 * time.Hour))
	got, err = svc.Vote(ctx, bot.BotID, "u2")

	if err != nil {
		t.Fatalf("vote by second user failed: %v", err)
	}

	if got.Votes != 2 {
		t.Errorf("votes = %d, want 2", got.Votes)
	}

	// Exactly at the end of the window u1 may vote again
	c.set(epoch.Add(9 * time.Hour))
	got, err = svc.Vote(ctx, bot.BotID, "u1")

	if err != nil {
		t.Fatalf("vote at window boundary failed: %v", err)
	}

	if got.Votes != 3 {
		t.Errorf("votes = %d, want 3", got.Votes)
	}
}

func TestVoteUnknownBot(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Vote(context.Background(), "nope", "u1")

	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestVoteCheck(t *testing.T) {
	svc, c := newService()

	owner := Actor{ID: "owner1", Role: perms.RoleMember}
	bot := mustCreate(t, svc, owner, "Checked")

	ctx := context.Background()

	uv, err := svc.VoteCheck(ctx, bot.BotID, "u1")

	if err != nil {
		t.Fatalf("vote check failed: %v", err)
	}

	if uv.HasVoted || uv.LastVoteAt != nil || uv.Wait != nil {
		t.Errorf("fresh user should be clear to vote: %+v", uv)
	}

	c.set(epoch.Add(time.Hour))

	if _, err := svc.Vote(ctx, bot.BotID, "u1"); err != nil {
		t.Fatalf("vote failed: %v", err)
	}

	c.set(epoch.Add(2 * time.Hour))
	uv, err = svc.VoteCheck(ctx, bot.BotID, "u1")

	if err != nil {
		t.Fatalf("vote check failed: %v", err)
	}

	if !uv.HasVoted {
		t.Error("user inside the window must report HasVoted")
	}

	if uv.NextVote == nil || !uv.NextVote.Equal(epoch.Add(9*time.Hour)) {
		t.Errorf("NextVote = %v, want %v", uv.NextVote, epoch.Add(9*time.Hour))
	}

	if uv.Wait == nil || uv.Wait.Hours != 7 || uv.Wait.Minutes != 0 || uv.Wait.Seconds != 0 {
		t.Errorf("unexpected wait: %+v", uv.Wait)
	}

	if _, err := svc.VoteCheck(ctx, "nope", "u1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpsertCreate(t *testing.T) {
	svc, _ := newService()

	actor := Actor{ID: "creator", Role: perms.RoleMember}
	bot := mustCreate(t, svc, actor, "Fresh")

	if bot.BotID == "" {
		t.Fatal("create must assign an id")
	}

	if bot.Owner != "creator" {
		t.Errorf("owner = %q, want creator", bot.Owner)
	}

	if bot.Votes != 0 {
		t.Errorf("a new bot must start at zero votes, got %d", bot.Votes)
	}

	if !bot.CreatedAt.Equal(epoch) {
		t.Errorf("createdAt = %v, want %v", bot.CreatedAt, epoch)
	}
}

func TestUpsertEditPermissions(t *testing.T) {
	svc, c := newService()
	ctx := context.Background()

	owner := Actor{ID: "owner1", Role: perms.RoleMember}
	bot := mustCreate(t, svc, owner, "Guarded")

	c.set(epoch.Add(time.Hour))
	svc.Vote(ctx, bot.BotID, "u1")

	edit := payload("Guarded v2")
	edit.BotID = bot.BotID

	// A random member is rejected
	_, err := svc.Upsert(ctx, edit, Actor{ID: "stranger", Role: perms.RoleMember})

	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	// The bots owner may edit, and the edit leaves votes, owner and
	// creation time alone
	updated, err := svc.Upsert(ctx, edit, owner)

	if err != nil {
		t.Fatalf("edit by owner failed: %v", err)
	}

	if updated.Name != "Guarded v2" {
		t.Errorf("name = %q, want Guarded v2", updated.Name)
	}

	if updated.Votes != 1 || updated.Owner != "owner1" || !updated.CreatedAt.Equal(epoch) {
		t.Errorf("edit must not touch votes/owner/createdAt: %+v", updated)
	}

	// Admins may edit anything
	if _, err := svc.Upsert(ctx, edit, Actor{ID: "stranger", Role: perms.RoleAdmin}); err != nil {
		t.Errorf("edit by admin failed: %v", err)
	}

	// Unknown ids are a not found, not a create
	edit.BotID = "nope"

	if _, err := svc.Upsert(ctx, edit, owner); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	owner := Actor{ID: "owner1", Role: perms.RoleMember}
	bot := mustCreate(t, svc, owner, "Doomed")

	// Strangers may not delete
	_, err := svc.Delete(ctx, bot.BotID, Actor{ID: "stranger", Role: perms.RoleMember})

	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	deleted, err := svc.Delete(ctx, bot.BotID, owner)

	if err != nil || !deleted {
		t.Fatalf("delete: deleted=%v err=%v", deleted, err)
	}

	// A missing bot reports false without an error
	deleted, err = svc.Delete(ctx, bot.BotID, owner)

	if err != nil || deleted {
		t.Errorf("second delete: deleted=%v err=%v, want false and no error", deleted, err)
	}
}

func TestResetVotes(t *testing.T) {
	svc, c := newService()
	ctx := context.Background()

	owner := Actor{ID: "owner1", Role: perms.RoleMember}
	bot := mustCreate(t, svc, owner, "Counted")

	c.set(epoch.Add(time.Hour))
	svc.Vote(ctx, bot.BotID, "u1")

	if err := svc.ResetVotes(ctx, Actor{ID: "a", Role: perms.RoleAdmin}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("admin reset: err = %v, want ErrForbidden", err)
	}

	if err := svc.ResetVotes(ctx, Actor{ID: "boss", Role: perms.RoleOwner}); err != nil {
		t.Fatalf("owner reset failed: %v", err)
	}

	got, err := svc.Show(ctx, bot.BotID)

	if err != nil {
		t.Fatalf("show failed: %v", err)
	}

	if got.Votes != 0 {
		t.Errorf("votes = %d after reset, want 0", got.Votes)
	}
}

func TestListAndTop(t *testing.T) {
	svc, c := newService()
	ctx := context.Background()

	actor := Actor{ID: "creator", Role: perms.RoleMember}

	var ids []string

	for i, name := range []string{"Alpha", "Beta", "Gamma"} {
		c.set(epoch.Add(time.Duration(i) * time.Minute))
		ids = append(ids, mustCreate(t, svc, actor, name).BotID)
	}

	// Gamma gets two votes, Beta one
	c.set(epoch.Add(time.Hour))
	svc.Vote(ctx, ids[2], "u1")
	svc.Vote(ctx, ids[2], "u2")
	svc.Vote(ctx, ids[1], "u1")

	top, err := svc.Top(ctx)

	if err != nil {
		t.Fatalf("top failed: %v", err)
	}

	if len(top) != 3 || top[0].BotID != ids[2] || top[1].BotID != ids[1] {
		t.Errorf("unexpected top listing: %+v", top)
	}

	recent, err := svc.List(ctx, "", ranking.OrderRecent, 1, 2, nil)

	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(recent) != 2 || recent[0].BotID != ids[2] || recent[1].BotID != ids[1] {
		t.Errorf("unexpected recent page: %+v", recent)
	}

	// Bad page numbers clamp to the first page
	clamped, err := svc.List(ctx, "", ranking.OrderRecent, -5, 2, nil)

	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(clamped) != 2 || clamped[0].BotID != recent[0].BotID {
		t.Errorf("page clamp broken: %+v", clamped)
	}

	count, err := svc.Count(ctx)

	if err != nil || count != 3 {
		t.Errorf("count = %d err=%v, want 3", count, err)
	}
}
