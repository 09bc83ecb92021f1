package main

import (
	"net/http"
	"strings"
	"time"

	"botdex/api"
	"botdex/constants"
	"botdex/ratelimit"
	"botdex/routes/bots"
	"botdex/routes/votes"
	"botdex/state"
	"botdex/types"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/zapchi"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// limit body to 10mb
		r.Body = http.MaxBytesReader(w, r.Body, 10*1024*1024)

		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE")

		if r.Method == "OPTIONS" {
			w.Write([]byte{})
			return
		}

		// Both ``User-Auth`` and ``Authorization`` headers are supported
		if r.Header.Get("User-Auth") != "" {
			if strings.HasPrefix(r.Header.Get("User-Auth"), "User ") {
				r.Header.Set("Authorization", r.Header.Get("User-Auth"))
			} else {
				r.Header.Set("Authorization", "User "+r.Header.Get("User-Auth"))
			}
		}

		w.Header().Set("Content-Type", "application/json")

		next.ServeHTTP(w, r)
	})
}

func main() {
	state.Setup()

	docs.DocsSetupData = &docs.SetupData{
		URL:         state.Config.Sites.API,
		ErrorStruct: types.ApiError{},
		Info: docs.Info{
			Title:       "Botdex API",
			Version:     "1.0",
			Description: "The public API for the botdex bot list",
		},
	}

	docs.Setup()

	docs.AddSecuritySchema("User", "User-Auth", "Requires a user token. Usually must be prefixed with `User `. Note that both ``User-Auth`` and ``Authorization`` headers are supported")

	api.Setup()

	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer,
		middleware.RealIP,
		middleware.CleanPath,
		corsMiddleware,
		ratelimit.Middleware(ratelimit.GlobalBucket),
		zapchi.Logger(state.Logger, "api"),
		middleware.Timeout(30*time.Second),
	)

	routers := []api.APIRouter{
		bots.Router{},
		votes.Router{},
	}

	for _, router := range routers {
		name, desc := router.Tag()

		if name == "" {
			panic("Router tag name cannot be empty")
		}

		docs.AddTag(name, desc)
		api.CurrentTag = name

		router.Routes(r)
	}

	// Load openapi here to avoid marshalling in every request
	openapi, err := json.Marshal(docs.GetSchema())

	if err != nil {
		panic(err)
	}

	r.Get("/openapi", func(w http.ResponseWriter, r *http.Request) {
		w.Write(openapi)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(constants.NotFoundPage))
	})

	state.Logger.Info("Starting botdex API on " + state.Config.Meta.Port)

	err = http.ListenAndServe(state.Config.Meta.Port, r)

	if err != nil {
		state.Logger.Fatal(err)
	}
}
