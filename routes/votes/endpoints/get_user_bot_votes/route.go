package get_user_bot_votes

import (
	"errors"
	"net/http"

	"botdex/bots"
	"botdex/state"
	"botdex/types"

	"github.com/go-chi/chi/v5"
	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
	"go.uber.org/zap"
)

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Get User Bot Votes",
		Description: "Returns whether a user can vote for a bot right now and, if not, how long they have to wait",
		Params: []docs.Parameter{
			{
				Name:        "uid",
				Description: "The users ID",
				Required:    true,
				In:          "path",
				Schema:      docs.IdSchema,
			},
			{
				Name:        "id",
				Description: "The bots ID",
				Required:    true,
				In:          "path",
				Schema:      docs.IdSchema,
			},
		},
		Resp: types.UserVote{},
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	uid := chi.URLParam(r, "uid")
	id := chi.URLParam(r, "id")

	if uid == "" || id == "" {
		return uapi.DefaultResponse(http.StatusBadRequest)
	}

	userVote, err := state.Bots.VoteCheck(d.Context, id, uid)

	if errors.Is(err, bots.ErrNotFound) {
		return uapi.DefaultResponse(http.StatusNotFound)
	}

	if err != nil {
		state.Logger.Error("Failed to check vote", zap.Error(err), zap.String("botID", id), zap.String("userID", uid))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	return uapi.HttpResponse{
		Json: userVote,
	}
}
