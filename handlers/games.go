package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"primetime-picks/interfaces"
	"primetime-picks/middleware"
	"primetime-picks/models"
	"primetime-picks/services"
)

// GameHandler serves schedule endpoints.
type GameHandler struct {
	games         interfaces.GameService
	currentSeason int
}

func NewGameHandler(games interfaces.GameService, currentSeason int) *GameHandler {
	return &GameHandler{games: games, currentSeason: currentSeason}
}

// ListGames handles GET /api/games?season=&week=
func (h *GameHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	season, week, err := seasonWeek(r, h.currentSeason)
	if err != nil {
		writeError(w, err)
		return
	}
	views, err := h.games.WeekGames(r.Context(), season, week)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// PrimetimeGames handles GET /api/games/primetime?season=&week=
func (h *GameHandler) PrimetimeGames(w http.ResponseWriter, r *http.Request) {
	season, week, err := seasonWeek(r, h.currentSeason)
	if err != nil {
		writeError(w, err)
		return
	}
	views, err := h.games.PrimetimeGames(r.Context(), season, week)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// GetGame handles GET /api/games/{id}
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	view, err := h.games.Game(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// NeedingPicks handles GET /api/games/needing-picks?season=&week=&league=
// for the authenticated user.
func (h *GameHandler) NeedingPicks(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFromContext(r.Context())
	season, week, err := seasonWeek(r, h.currentSeason)
	if err != nil {
		writeError(w, err)
		return
	}
	league, err := queryInt(r, "league", 0)
	if err != nil {
		writeError(w, err)
		return
	}
	views, err := h.games.GamesNeedingPicks(r.Context(), id.UserID, league, season, week)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// TeamLookup resolves team display records.
type TeamLookup struct {
	All  func() []models.Team
	Find func(abbr string) (models.Team, bool)
}

// TeamHandler serves the read-only team table.
type TeamHandler struct {
	teams TeamLookup
}

func NewTeamHandler(teams TeamLookup) *TeamHandler {
	return &TeamHandler{teams: teams}
}

// ListTeams handles GET /api/teams
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.teams.All())
}

// GetTeam handles GET /api/teams/{abbr}
func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	abbr := mux.Vars(r)["abbr"]
	team, ok := h.teams.Find(abbr)
	if !ok {
		writeError(w, fmt.Errorf("team %q: %w", abbr, services.ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, team)
}
