// Ordering and filtering for listing queries.
//
// Both bot stores share this package: the in-memory store runs the
// predicates and sorts directly, while the Postgres store mirrors them in
// SQL via SQLOrder. Keeping the tiebreaks in one place is what makes the two
// stores return identical pages.
package ranking

import (
	"strings"
	"time"

	"botdex/types"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/exp/slices"
)

type Order string

const (
	OrderRecent    Order = "recent"
	OrderMostVoted Order = "mostVoted"
)

// ParseOrder maps a query string value to an Order, defaulting to recent
func ParseOrder(s string) Order {
	if s == string(OrderMostVoted) {
		return OrderMostVoted
	}

	return OrderRecent
}

// Matches reports whether a bot matches a search string and tag filter.
//
// The search is a case-insensitive substring match against name and both
// descriptions. The tag filter matches on any overlap between the bots tags
// and the requested tags, not a superset.
func Matches(b *types.Bot, search string, tags []string) bool {
	if search != "" {
		needle := strings.ToLower(search)

		if !strings.Contains(strings.ToLower(b.Name), needle) &&
			!strings.Contains(strings.ToLower(b.Short), needle) &&
			!strings.Contains(strings.ToLower(b.Long), needle) {
			return false
		}
	}

	if len(tags) > 0 {
		want := mapset.NewSet[string](tags...)
		have := mapset.NewSet[string](b.Tags...)

		if want.Intersect(have).Cardinality() == 0 {
			return false
		}
	}

	return true
}

// Sort orders bots in place. Tiebreaks are fixed so pagination is
// deterministic: recent breaks ties on id ascending, mostVoted on creation
// time descending then id ascending.
func Sort(bots []types.Bot, order Order) {
	switch order {
	case OrderMostVoted:
		slices.SortStableFunc(bots, func(a, b types.Bot) int {
			if a.Votes != b.Votes {
				return b.Votes - a.Votes
			}

			if c := cmpTimeDesc(a.CreatedAt, b.CreatedAt); c != 0 {
				return c
			}

			return strings.Compare(a.BotID, b.BotID)
		})
	default:
		slices.SortStableFunc(bots, func(a, b types.Bot) int {
			if c := cmpTimeDesc(a.CreatedAt, b.CreatedAt); c != 0 {
				return c
			}

			return strings.Compare(a.BotID, b.BotID)
		})
	}
}

func cmpTimeDesc(a, b time.Time) int {
	if a.After(b) {
		return -1
	}

	if a.Before(b) {
		return 1
	}

	return 0
}

// Page slices out a 1-indexed page. Pages past the end of the sequence are
// empty, not an error.
func Page(bots []types.Bot, page, perPage int) []types.Bot {
	if page < 1 {
		page = 1
	}

	start := (page - 1) * perPage

	if start >= len(bots) {
		return []types.Bot{}
	}

	end := start + perPage

	if end > len(bots) {
		end = len(bots)
	}

	return bots[start:end]
}

// SQLOrder returns the ORDER BY clause matching Sort for the given order.
// The return value is built purely from the enum, never from user input.
func SQLOrder(order Order) string {
	if order == OrderMostVoted {
		return "votes DESC, created_at DESC, bot_id ASC"
	}

	return "created_at DESC, bot_id ASC"
}
