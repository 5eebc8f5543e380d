package handlers

import (
	"fmt"
	"net/http"

	"primetime-picks/interfaces"
	"primetime-picks/middleware"
	"primetime-picks/models"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// StandingsHandler serves leaderboards and per-user stats.
type StandingsHandler struct {
	leaderboard interfaces.LeaderboardService
	stats       interfaces.StatsService
}

func NewStandingsHandler(leaderboard interfaces.LeaderboardService, stats interfaces.StatsService) *StandingsHandler {
	return &StandingsHandler{leaderboard: leaderboard, stats: stats}
}

type leaderboardResponse struct {
	LeagueID int                       `json:"league_id"`
	Total    int                       `json:"total"`
	Offset   int                       `json:"offset"`
	Entries  []models.LeaderboardEntry `json:"entries"`
	Caller   *models.LeaderboardEntry  `json:"caller,omitempty"`
}

// Leaderboard handles GET /api/leaderboard?league=&offset=&limit=
// An authenticated caller also gets their own entry, wherever it ranks.
func (h *StandingsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	league, err := queryInt(r, "league", models.GlobalLeague)
	if err != nil {
		writeError(w, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(w, err)
		return
	}
	limit, err := queryInt(r, "limit", defaultPageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	if offset < 0 || limit <= 0 || limit > maxPageSize {
		writeError(w, fmt.Errorf("%w: offset must be >= 0 and limit in 1..%d", errBadRequest, maxPageSize))
		return
	}

	entries, total, err := h.leaderboard.Standings(r.Context(), league, offset, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	resp := leaderboardResponse{LeagueID: league, Total: total, Offset: offset, Entries: entries}

	if id, ok := middleware.IdentityFromContext(r.Context()); ok {
		resp.Caller, err = h.leaderboard.Position(r.Context(), league, id.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// UserStats handles GET /api/stats/{user}?league=
func (h *StandingsHandler) UserStats(w http.ResponseWriter, r *http.Request) {
	userID, err := pathInt(r, "user")
	if err != nil {
		writeError(w, err)
		return
	}
	league, err := queryInt(r, "league", models.GlobalLeague)
	if err != nil {
		writeError(w, err)
		return
	}
	stats, err := h.stats.Get(r.Context(), models.StatsKey{UserID: userID, LeagueID: league})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
