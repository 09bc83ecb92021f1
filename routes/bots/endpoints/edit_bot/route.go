package edit_bot

import (
	"errors"
	"net/http"

	"botdex/api"
	"botdex/bots"
	"botdex/state"
	"botdex/types"

	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var compiledMessages = uapi.CompileValidationErrors(types.CreateBot{})

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Edit Bot",
		Description: "Edits a bot on the list. Only the bots owner or an admin may do this. Votes, ownership and creation time are never changed by an edit.",
		Req:         types.CreateBot{},
		Resp:        types.Bot{},
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	var payload types.CreateBot

	hresp, ok := uapi.MarshalReq(r, &payload)

	if !ok {
		return hresp
	}

	if payload.BotID == "" {
		return uapi.HttpResponse{
			Status: http.StatusBadRequest,
			Json:   types.ApiError{Message: "bot_id must be specified when editing a bot"},
		}
	}

	err := state.Validator.Struct(payload)

	if err != nil {
		return uapi.ValidatorErrorResponse(compiledMessages, err.(validator.ValidationErrors))
	}

	actor, err := api.GetActor(d.Context, d.Auth.ID)

	if err != nil {
		state.Logger.Error("Failed to resolve actor", zap.Error(err), zap.String("userID", d.Auth.ID))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	bot, err := state.Bots.Upsert(d.Context, payload, actor)

	if errors.Is(err, bots.ErrNotFound) {
		return uapi.DefaultResponse(http.StatusNotFound)
	}

	if errors.Is(err, bots.ErrForbidden) {
		return uapi.HttpResponse{
			Status: http.StatusForbidden,
			Json:   types.ApiError{Message: "You do not have sufficient permission to update this bot."},
		}
	}

	if err != nil {
		state.Logger.Error("Failed to update bot", zap.Error(err), zap.String("botID", payload.BotID))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	// The cached copy is now stale
	state.Redis.Del(d.Context, "bc-"+bot.BotID)

	return uapi.HttpResponse{
		Json: bot,
	}
}
