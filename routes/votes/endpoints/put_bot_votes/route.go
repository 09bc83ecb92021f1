package put_bot_votes

import (
	"errors"
	"net/http"
	"time"

	"botdex/bots"
	"botdex/state"
	"botdex/types"

	"github.com/go-chi/chi/v5"
	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
	"go.uber.org/zap"
)

type VoteResponse struct {
	Bot *types.Bot `json:"bot" description:"The bot, with its updated vote count"`
}

type CooldownResponse struct {
	Reason   string    `json:"reason" description:"Why the vote was rejected"`
	NextVote time.Time `json:"next_vote" description:"When the user may vote for this bot again"`
}

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Create Bot Vote",
		Description: "Casts a vote for a bot as the authenticated user. A user may vote for the same bot once every cooldown window; a rejected vote returns 429 with the time of the next allowed vote.",
		Params: []docs.Parameter{
			{
				Name:        "id",
				Description: "The bots ID",
				Required:    true,
				In:          "path",
				Schema:      docs.IdSchema,
			},
		},
		Resp: VoteResponse{},
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	id := chi.URLParam(r, "id")

	if id == "" {
		return uapi.DefaultResponse(http.StatusBadRequest)
	}

	bot, err := state.Bots.Vote(d.Context, id, d.Auth.ID)

	if errors.Is(err, bots.ErrNotFound) {
		return uapi.DefaultResponse(http.StatusNotFound)
	}

	var cooldown *bots.CooldownError

	if errors.As(err, &cooldown) {
		return uapi.HttpResponse{
			Status: http.StatusTooManyRequests,
			Json: CooldownResponse{
				Reason:   "You need to wait " + state.Bots.Window.String() + " between votes on the same bot",
				NextVote: cooldown.NextEligibleAt,
			},
		}
	}

	if err != nil {
		state.Logger.Error("Failed to vote", zap.Error(err), zap.String("botID", id), zap.String("userID", d.Auth.ID))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	state.Redis.Del(d.Context, "bc-"+id)

	return uapi.HttpResponse{
		Json: VoteResponse{Bot: bot},
	}
}
