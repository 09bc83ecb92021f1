package get_bot

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

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Get Bot",
		Description: "Gets a bot on the list by its ID",
		Params: []docs.Parameter{
			{
				Name:        "id",
				Description: "The bots ID",
				Required:    true,
				In:          "path",
				Schema:      docs.IdSchema,
			},
		},
		Resp: types.Bot{},
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	id := chi.URLParam(r, "id")

	if id == "" {
		return uapi.DefaultResponse(http.StatusBadRequest)
	}

	// Check cache to avoid hammering the database for hot bots
	cache := state.Redis.Get(d.Context, "bc-"+id).Val()

	if cache != "" {
		return uapi.HttpResponse{
			Data: cache,
			Headers: map[string]string{
				"X-Cached": "true",
			},
		}
	}

	bot, err := state.Bots.Show(d.Context, id)

	if errors.Is(err, bots.ErrNotFound) {
		return uapi.DefaultResponse(http.StatusNotFound)
	}

	if err != nil {
		state.Logger.Error("Failed to fetch bot", zap.Error(err), zap.String("botID", id))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	return uapi.HttpResponse{
		Json:      bot,
		CacheKey:  "bc-" + id,
		CacheTime: 3 * time.Minute,
	}
}
