package votes

import (
	"botdex/api"
	"botdex/routes/votes/endpoints/get_user_bot_votes"
	"botdex/routes/votes/endpoints/put_bot_votes"

	"github.com/go-chi/chi/v5"
	"github.com/infinitybotlist/eureka/uapi"
)

const tagName = "Votes"

type Router struct{}

func (b Router) Tag() (string, string) {
	return tagName, "These API endpoints are related to voting for bots on the list"
}

func (b Router) Routes(r *chi.Mux) {
	uapi.Route{
		Pattern: "/bots/{id}/votes",
		OpId:    "put_bot_votes",
		Method:  uapi.POST,
		Docs:    put_bot_votes.Docs,
		Handler: put_bot_votes.Route,
		Auth: []uapi.AuthType{
			{
				Type: api.TargetTypeUser,
			},
		},
	}.Route(r)

	uapi.Route{
		Pattern: "/users/{uid}/bots/{id}/votes",
		OpId:    "get_user_bot_votes",
		Method:  uapi.GET,
		Docs:    get_user_bot_votes.Docs,
		Handler: get_user_bot_votes.Route,
		Auth: []uapi.AuthType{
			{
				URLVar: "uid",
				Type:   api.TargetTypeUser,
			},
		},
	}.Route(r)
}
