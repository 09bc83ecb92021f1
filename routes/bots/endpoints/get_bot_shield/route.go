package get_bot_shield

import (
	"errors"
	"net/http"

	"botdex/bots"
	"botdex/shields"
	"botdex/state"

	"github.com/go-chi/chi/v5"
	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Get Bot Shield",
		Description: "Renders a tiny SVG shield for a bot. The default shield shows the bots vote count; ``?type=tinyOwnerBot`` shows the bots owner instead.",
		Params: []docs.Parameter{
			{
				Name:        "id",
				Description: "The bots ID",
				Required:    true,
				In:          "path",
				Schema:      docs.IdSchema,
			},
			{
				Name:        "type",
				Description: "The shield type: tinyOwnerBot or empty for the vote shield",
				Required:    false,
				In:          "query",
				Schema:      docs.IdSchema,
			},
		},
		Resp: "",
	}
}

func ownerTag(d uapi.RouteData, ownerID string) string {
	var username, discriminator string

	err := state.Pool.QueryRow(d.Context, "SELECT username, discriminator FROM users WHERE user_id = $1", ownerID).Scan(&username, &discriminator)

	if errors.Is(err, pgx.ErrNoRows) {
		return ownerID
	}

	if err != nil {
		state.Logger.Error("Failed to fetch owner", zap.Error(err), zap.String("userID", ownerID))
		return ownerID
	}

	return username + "#" + discriminator
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	id := chi.URLParam(r, "id")

	if id == "" {
		return uapi.DefaultResponse(http.StatusBadRequest)
	}

	bot, err := state.Bots.Show(d.Context, id)

	if errors.Is(err, bots.ErrNotFound) {
		return uapi.DefaultResponse(http.StatusNotFound)
	}

	if err != nil {
		state.Logger.Error("Failed to fetch bot", zap.Error(err), zap.String("botID", id))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	var svg string

	switch r.URL.Query().Get("type") {
	case "tinyOwnerBot":
		svg = shields.TinyOwnerShield(ownerTag(d, bot.Owner), bot.Owner)
	default:
		svg = shields.TinyUpvoteShield(bot.Votes, bot.BotID)
	}

	return uapi.HttpResponse{
		Data: svg,
		Headers: map[string]string{
			"Content-Type":  "image/svg+xml",
			"Cache-Control": "no-cache",
		},
	}
}
