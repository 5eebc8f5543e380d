package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"primetime-picks/interfaces"
	"primetime-picks/logging"
	"primetime-picks/middleware"
	"primetime-picks/services"
)

// Pinger reports backing-store health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the services the API is built from.
type Deps struct {
	Games         interfaces.GameService
	Picks         interfaces.PickService
	Stats         interfaces.StatsService
	Leaderboard   interfaces.LeaderboardService
	Tokens        *services.TokenService
	Store         Pinger
	Teams         TeamLookup
	CurrentSeason int
	Development   bool
	BehindProxy   bool
	Origins       []string
	Logger        *logging.Logger
}

// NewRouter wires every route of the JSON API. With allowed origins set the
// router sits behind CORS so preflight requests never reach it.
func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = logging.WithPrefix("HTTP")
	}
	auth := middleware.NewAuthMiddleware(d.Tokens)
	games := NewGameHandler(d.Games, d.CurrentSeason)
	picks := NewPickHandler(d.Picks, d.Stats, d.CurrentSeason)
	standings := NewStandingsHandler(d.Leaderboard, d.Stats)

	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.SecurityHeaders(d.BehindProxy))

	r.HandleFunc("/healthz", healthHandler(d.Store)).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/games", games.ListGames).Methods(http.MethodGet)
	api.HandleFunc("/games/primetime", games.PrimetimeGames).Methods(http.MethodGet)
	api.Handle("/games/needing-picks", auth.RequireAuth(http.HandlerFunc(games.NeedingPicks))).Methods(http.MethodGet)
	api.HandleFunc("/games/{id:[0-9]+}", games.GetGame).Methods(http.MethodGet)

	api.Handle("/picks", auth.RequireAuth(http.HandlerFunc(picks.SubmitPicks))).Methods(http.MethodPost)
	api.Handle("/picks", auth.RequireAuth(http.HandlerFunc(picks.ListPicks))).Methods(http.MethodGet)

	if d.Teams.All != nil && d.Teams.Find != nil {
		teams := NewTeamHandler(d.Teams)
		api.HandleFunc("/teams", teams.ListTeams).Methods(http.MethodGet)
		api.HandleFunc("/teams/{abbr}", teams.GetTeam).Methods(http.MethodGet)
	}

	api.Handle("/leaderboard", auth.OptionalAuth(http.HandlerFunc(standings.Leaderboard))).Methods(http.MethodGet)
	api.HandleFunc("/stats/{user:[0-9]+}", standings.UserStats).Methods(http.MethodGet)

	if d.Development {
		api.HandleFunc("/auth/dev-token", NewAuthHandler(d.Tokens).DevToken).Methods(http.MethodPost)
	}

	if len(d.Origins) > 0 {
		return middleware.CORS(d.Origins)(r)
	}
	return r
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func healthHandler(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Database: "memory"})
			return
		}
		if err := store.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded", Database: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Database: "mongodb"})
	}
}
