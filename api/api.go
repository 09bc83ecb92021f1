// Binds onto eureka uapi
package api

import (
	"net/http"
	"strings"

	"botdex/constants"
	"botdex/state"
	"botdex/types"

	"github.com/go-chi/chi/v5"
	"github.com/infinitybotlist/eureka/uapi"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

const (
	TargetTypeUser = "user"
)

// Stores the current doc tag
var CurrentTag string

// An API router, not to be confused with chi.Router
type APIRouter interface {
	Routes(r *chi.Mux)
	Tag() (string, string)
}

type DefaultResponder struct{}

func (d DefaultResponder) New(err string, ctx map[string]string) any {
	return types.ApiError{
		Message: err,
		Context: ctx,
	}
}

// Authorizes a request off the users api_token. Roles are not resolved
// here; mutating endpoints fetch the actor with GetActor.
func Authorize(r uapi.Route, req *http.Request) (uapi.AuthData, uapi.HttpResponse, bool) {
	authHeader := req.Header.Get("Authorization")

	if len(r.Auth) > 0 && authHeader == "" && !r.AuthOptional {
		return uapi.AuthData{}, uapi.DefaultResponse(http.StatusUnauthorized), false
	}

	authData := uapi.AuthData{}

	for _, auth := range r.Auth {
		if authData.Authorized {
			break
		}

		if authHeader == "" {
			continue
		}

		if auth.Type != TargetTypeUser {
			continue
		}

		var id pgtype.Text
		var banned bool

		err := state.Pool.QueryRow(state.Context, "SELECT user_id, banned FROM users WHERE api_token = $1", strings.Replace(authHeader, "User ", "", 1)).Scan(&id, &banned)

		if err != nil {
			continue
		}

		if !id.Valid {
			continue
		}

		authData = uapi.AuthData{
			TargetType: TargetTypeUser,
			ID:         id.String,
			Authorized: true,
			Banned:     banned,
		}

		if auth.URLVar != "" {
			state.Logger.Info("Checking URL variable against user ID from auth token", zap.String("URLVar", auth.URLVar))

			if !slices.Contains([]string{id.String}, chi.URLParam(req, auth.URLVar)) {
				authData = uapi.AuthData{} // Remove auth data
			}
		}

		// Banned users cannot use the API at all
		if authData.Banned {
			return uapi.AuthData{}, uapi.HttpResponse{
				Status: http.StatusForbidden,
				Json:   types.ApiError{Message: "You are banned from the list. If you think this is a mistake, please contact support."},
			}, false
		}
	}

	if len(r.Auth) > 0 && !authData.Authorized && !r.AuthOptional {
		return uapi.AuthData{}, uapi.DefaultResponse(http.StatusUnauthorized), false
	}

	return authData, uapi.HttpResponse{}, true
}

func Setup() {
	uapi.SetupState(uapi.UAPIState{
		Logger:    state.Logger.Desugar(),
		Authorize: Authorize,
		AuthTypeMap: map[string]string{
			TargetTypeUser: "user",
		},
		Redis:   state.Redis,
		Context: state.Context,
		Constants: &uapi.UAPIConstants{
			ResourceNotFound:    constants.ResourceNotFound,
			BadRequest:          constants.BadRequest,
			Forbidden:           constants.Forbidden,
			Unauthorized:        constants.Unauthorized,
			InternalServerError: constants.InternalServerError,
			MethodNotAllowed:    constants.MethodNotAllowed,
			BodyRequired:        constants.BodyRequired,
		},
		DefaultResponder: DefaultResponder{},
	})
}
