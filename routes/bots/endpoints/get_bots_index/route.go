package get_bots_index

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"botdex/ranking"
	"botdex/state"
	"botdex/types"

	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
	"go.uber.org/zap"
)

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary: "Get Bots Index",
		Description: `Lists bots on the index.

With ` + "``?type=count``" + ` only the total bot count is returned, with ` + "``?type=top``" + ` the six most voted bots are returned. Any other request returns a page of the index filtered by ` + "``search``" + ` and ` + "``tags``" + ` (comma separated) and ordered by ` + "``order``" + ` (recent or mostVoted).`,
		Params: []docs.Parameter{
			{
				Name:        "type",
				Description: "The index query type: count, top, or empty for a normal listing",
				Required:    false,
				In:          "query",
				Schema:      docs.IdSchema,
			},
			{
				Name:        "search",
				Description: "Text to search for in bot names and descriptions",
				Required:    false,
				In:          "query",
				Schema:      docs.IdSchema,
			},
			{
				Name:        "order",
				Description: "The ordering: recent (default) or mostVoted",
				Required:    false,
				In:          "query",
				Schema:      docs.IdSchema,
			},
			{
				Name:        "page",
				Description: "The 1-indexed page to return",
				Required:    false,
				In:          "query",
				Schema:      docs.IdSchema,
			},
			{
				Name:        "tags",
				Description: "Comma separated tags to filter by. Bots matching any of the tags are returned.",
				Required:    false,
				In:          "query",
				Schema:      docs.IdSchema,
			},
		},
		Resp: []types.IndexBot{},
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	switch r.URL.Query().Get("type") {
	case "count":
		count, err := state.Bots.Count(d.Context)

		if err != nil {
			state.Logger.Error("Failed to count bots", zap.Error(err))
			return uapi.DefaultResponse(http.StatusInternalServerError)
		}

		return uapi.HttpResponse{
			Json: types.BotCount{BotsCount: count},
		}
	case "top":
		cache := state.Redis.Get(d.Context, "top-bots").Val()

		if cache != "" {
			return uapi.HttpResponse{
				Data: cache,
				Headers: map[string]string{
					"X-Cached": "true",
				},
			}
		}

		top, err := state.Bots.Top(d.Context)

		if err != nil {
			state.Logger.Error("Failed to fetch top bots", zap.Error(err))
			return uapi.DefaultResponse(http.StatusInternalServerError)
		}

		return uapi.HttpResponse{
			Json:      top,
			CacheKey:  "top-bots",
			CacheTime: time.Minute,
		}
	default:
		// Pages below 1 are clamped rather than erroring
		page, err := strconv.Atoi(r.URL.Query().Get("page"))

		if err != nil || page < 1 {
			page = 1
		}

		var tags []string

		if tagList := r.URL.Query().Get("tags"); tagList != "" {
			tags = strings.Split(tagList, ",")
		}

		indexBots, err := state.Bots.List(
			d.Context,
			r.URL.Query().Get("search"),
			ranking.ParseOrder(r.URL.Query().Get("order")),
			page,
			state.Config.Meta.IndexPageSize,
			tags,
		)

		if err != nil {
			state.Logger.Error("Failed to list bots", zap.Error(err))
			return uapi.DefaultResponse(http.StatusInternalServerError)
		}

		if len(indexBots) == 0 {
			return uapi.HttpResponse{
				Status: http.StatusNotFound,
				Json:   types.ApiError{Message: "No bot found in the list"},
			}
		}

		return uapi.HttpResponse{
			Json: indexBots,
		}
	}
}
