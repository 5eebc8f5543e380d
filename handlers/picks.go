package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"primetime-picks/interfaces"
	"primetime-picks/logging"
	"primetime-picks/middleware"
	"primetime-picks/models"
	"primetime-picks/services"
)

// maxPickBody caps the submission payload.
const maxPickBody = 64 << 10

// PickHandler accepts and lists the caller's picks.
type PickHandler struct {
	picks         interfaces.PickService
	stats         interfaces.StatsService
	currentSeason int
}

func NewPickHandler(picks interfaces.PickService, stats interfaces.StatsService, currentSeason int) *PickHandler {
	return &PickHandler{picks: picks, stats: stats, currentSeason: currentSeason}
}

type submitRequest struct {
	Picks []models.PickSubmission `json:"picks"`
}

// SubmitPicks handles POST /api/picks?league=
// Per-game rejections are reported in the body; the request only fails
// as a whole when the payload cannot be read.
func (h *PickHandler) SubmitPicks(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFromContext(r.Context())
	league, err := queryInt(r, "league", models.GlobalLeague)
	if err != nil {
		writeError(w, err)
		return
	}

	var req submitRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPickBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	if len(req.Picks) == 0 {
		writeError(w, fmt.Errorf("%w: no picks submitted", errBadRequest))
		return
	}

	result, err := h.picks.SubmitPicks(r.Context(), id.UserID, league, req.Picks)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(result.Saved) > 0 {
		// Pending counts moved; the pick itself is already stored.
		if _, err := h.stats.Recompute(r.Context(), models.StatsKey{UserID: id.UserID, LeagueID: league}); err != nil {
			logging.Warnf("stats refresh after submission failed for user %d: %v", id.UserID, err)
		}
	}
	writeJSON(w, statusFor(result), result)
}

func statusFor(result services.SubmitResult) int {
	switch {
	case len(result.Errors) == 0:
		return http.StatusOK
	case len(result.Saved) == 0:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusMultiStatus
	}
}

// ListPicks handles GET /api/picks?season=&week=&league=
func (h *PickHandler) ListPicks(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFromContext(r.Context())
	season, week, err := seasonWeek(r, h.currentSeason)
	if err != nil {
		writeError(w, err)
		return
	}
	league, err := queryInt(r, "league", models.GlobalLeague)
	if err != nil {
		writeError(w, err)
		return
	}
	picks, err := h.picks.UserPicks(r.Context(), id.UserID, league, season, week)
	if err != nil {
		writeError(w, err)
		return
	}
	if picks == nil {
		picks = []models.Pick{}
	}
	writeJSON(w, http.StatusOK, picks)
}
