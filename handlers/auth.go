package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"primetime-picks/services"
)

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(id services.Identity) (string, error)
}

// AuthHandler hands out development tokens. Real sign-in lives outside
// this service; the route is only mounted in development.
type AuthHandler struct {
	issuer   TokenIssuer
	validate *validator.Validate
}

func NewAuthHandler(issuer TokenIssuer) *AuthHandler {
	return &AuthHandler{issuer: issuer, validate: validator.New()}
}

type devTokenRequest struct {
	UserID int    `json:"user_id" validate:"required,gt=0"`
	Name   string `json:"name" validate:"required,max=64"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// DevToken handles POST /api/auth/dev-token.
func (h *AuthHandler) DevToken(w http.ResponseWriter, r *http.Request) {
	var req devTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	if err := h.validate.StructCtx(r.Context(), req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	token, err := h.issuer.Issue(services.Identity{UserID: req.UserID, Name: req.Name})
	if err != nil {
		writeError(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}
