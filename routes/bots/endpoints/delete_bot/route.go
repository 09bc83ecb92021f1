package delete_bot

import (
	"errors"
	"net/http"

	"botdex/api"
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
		Summary:     "Delete Bot",
		Description: "Removes a bot from the list. Only the bots owner or an admin may do this.",
		Params: []docs.Parameter{
			{
				Name:        "id",
				Description: "The bots ID",
				Required:    true,
				In:          "path",
				Schema:      docs.IdSchema,
			},
		},
		Resp: types.Deleted{},
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	id := chi.URLParam(r, "id")

	if id == "" {
		return uapi.DefaultResponse(http.StatusBadRequest)
	}

	actor, err := api.GetActor(d.Context, d.Auth.ID)

	if err != nil {
		state.Logger.Error("Failed to resolve actor", zap.Error(err), zap.String("userID", d.Auth.ID))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	deleted, err := state.Bots.Delete(d.Context, id, actor)

	if errors.Is(err, bots.ErrForbidden) {
		return uapi.HttpResponse{
			Status: http.StatusForbidden,
			Json:   types.ApiError{Message: "You do not have sufficient permission to remove this bot."},
		}
	}

	if err != nil {
		state.Logger.Error("Failed to delete bot", zap.Error(err), zap.String("botID", id))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	if !deleted {
		return uapi.DefaultResponse(http.StatusNotFound)
	}

	state.Redis.Del(d.Context, "bc-"+id)

	return uapi.HttpResponse{
		Json: types.Deleted{Deleted: deleted},
	}
}
