package reset_bot_votes

import (
	"errors"
	"net/http"

	"botdex/api"
	"botdex/bots"
	"botdex/state"
	"botdex/types"

	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
	"go.uber.org/zap"
)

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Reset Bot Votes",
		Description: "With ``?type=resetVotes``, zeroes the vote count of every bot on the list and clears all voter timestamps. Only the list owner may do this. Returns 204 on success.",
		Params: []docs.Parameter{
			{
				Name:        "type",
				Description: "The bulk update to perform. Only resetVotes is supported.",
				Required:    true,
				In:          "query",
				Schema:      docs.IdSchema,
			},
		},
		Resp: types.ApiError{},
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	if r.URL.Query().Get("type") != "resetVotes" {
		return uapi.HttpResponse{
			Status: http.StatusBadRequest,
			Json:   types.ApiError{Message: "Unknown bulk update type"},
		}
	}

	actor, err := api.GetActor(d.Context, d.Auth.ID)

	if err != nil {
		state.Logger.Error("Failed to resolve actor", zap.Error(err), zap.String("userID", d.Auth.ID))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	err = state.Bots.ResetVotes(d.Context, actor)

	if errors.Is(err, bots.ErrForbidden) {
		return uapi.HttpResponse{
			Status: http.StatusForbidden,
			Json:   types.ApiError{Message: "You do not have sufficient permission to use this endpoint."},
		}
	}

	if err != nil {
		state.Logger.Error("Failed to reset votes", zap.Error(err), zap.String("userID", d.Auth.ID))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	return uapi.DefaultResponse(http.StatusNoContent)
}
