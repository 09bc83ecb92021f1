package bots

import (
	"botdex/api"
	"botdex/routes/bots/endpoints/add_bot"
	"botdex/routes/bots/endpoints/delete_bot"
	"botdex/routes/bots/endpoints/edit_bot"
	"botdex/routes/bots/endpoints/get_bot"
	"botdex/routes/bots/endpoints/get_bot_shield"
	"botdex/routes/bots/endpoints/get_bots_index"
	"botdex/routes/bots/endpoints/reset_bot_votes"

	"github.com/go-chi/chi/v5"
	"github.com/infinitybotlist/eureka/uapi"
)

const tagName = "Bots"

type Router struct{}

func (b Router) Tag() (string, string) {
	return tagName, "These API endpoints are related to bots on the list"
}

func (b Router) Routes(r *chi.Mux) {
	uapi.Route{
		Pattern: "/bots",
		OpId:    "get_bots_index",
		Method:  uapi.GET,
		Docs:    get_bots_index.Docs,
		Handler: get_bots_index.Route,
	}.Route(r)

	uapi.Route{
		Pattern: "/bots",
		OpId:    "add_bot",
		Method:  uapi.POST,
		Docs:    add_bot.Docs,
		Handler: add_bot.Route,
		Auth: []uapi.AuthType{
			{
				Type: api.TargetTypeUser,
			},
		},
	}.Route(r)

	uapi.Route{
		Pattern: "/bots",
		OpId:    "edit_bot",
		Method:  uapi.PUT,
		Docs:    edit_bot.Docs,
		Handler: edit_bot.Route,
		Auth: []uapi.AuthType{
			{
				Type: api.TargetTypeUser,
			},
		},
	}.Route(r)

	uapi.Route{
		Pattern: "/bots",
		OpId:    "reset_bot_votes",
		Method:  uapi.PATCH,
		Docs:    reset_bot_votes.Docs,
		Handler: reset_bot_votes.Route,
		Auth: []uapi.AuthType{
			{
				Type: api.TargetTypeUser,
			},
		},
	}.Route(r)

	uapi.Route{
		Pattern: "/bots/{id}",
		OpId:    "get_bot",
		Method:  uapi.GET,
		Docs:    get_bot.Docs,
		Handler: get_bot.Route,
	}.Route(r)

	uapi.Route{
		Pattern: "/bots/{id}",
		OpId:    "delete_bot",
		Method:  uapi.DELETE,
		Docs:    delete_bot.Docs,
		Handler: delete_bot.Route,
		Auth: []uapi.AuthType{
			{
				Type: api.TargetTypeUser,
			},
		},
	}.Route(r)

	uapi.Route{
		Pattern: "/bots/{id}/shield",
		OpId:    "get_bot_shield",
		Method:  uapi.GET,
		Docs:    get_bot_shield.Docs,
		Handler: get_bot_shield.Route,
	}.Route(r)
}
