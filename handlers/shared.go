package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"primetime-picks/logging"
	"primetime-picks/scoring"
	"primetime-picks/services"
)

var errBadRequest = errors.New("bad request")

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Errorf("failed to encode response: %v", err)
	}
}

// writeError maps service errors to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, services.ErrInvalidSubmission),
		scoring.IsValidationError(err):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		logging.Errorf("request failed: %v", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

// queryInt reads an integer query parameter, returning def when absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", errBadRequest, name)
	}
	return n, nil
}

func pathInt(r *http.Request, name string) (int, error) {
	n, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", errBadRequest, name)
	}
	return n, nil
}

// seasonWeek reads season (defaulting to the current one) and a
// required week.
func seasonWeek(r *http.Request, currentSeason int) (int, int, error) {
	season, err := queryInt(r, "season", currentSeason)
	if err != nil {
		return 0, 0, err
	}
	week, err := queryInt(r, "week", 0)
	if err != nil {
		return 0, 0, err
	}
	if week <= 0 {
		return 0, 0, fmt.Errorf("%w: week is required", errBadRequest)
	}
	return season, week, nil
}
