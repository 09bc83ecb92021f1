package add_bot

import (
	"net/http"

	"botdex/api"
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
		Summary:     "Add Bot",
		Description: "Adds a bot to the list. The authenticated user becomes its owner. Any bot_id in the payload is ignored; the list assigns one.",
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

	err := state.Validator.Struct(payload)

	if err != nil {
		return uapi.ValidatorErrorResponse(compiledMessages, err.(validator.ValidationErrors))
	}

	actor, err := api.GetActor(d.Context, d.Auth.ID)

	if err != nil {
		state.Logger.Error("Failed to resolve actor", zap.Error(err), zap.String("userID", d.Auth.ID))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	// Force the create path
	payload.BotID = ""

	bot, err := state.Bots.Upsert(d.Context, payload, actor)

	if err != nil {
		state.Logger.Error("Failed to add bot", zap.Error(err), zap.String("userID", d.Auth.ID))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	return uapi.HttpResponse{
		Status: http.StatusCreated,
		Json:   bot,
	}
}
