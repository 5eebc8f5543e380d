package middleware

import (
	"context"
	"net/http"
	"strings"

	"primetime-picks/services"
)

type contextKey string

const identityKey contextKey = "identity"

// TokenVerifier turns a bearer token into the caller's identity.
type TokenVerifier interface {
	Verify(token string) (services.Identity, error)
}

// AuthMiddleware attaches the caller identity carried by a JWT.
type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth rejects requests without a valid token.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := m.identityFromRequest(r)
		if !ok {
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// OptionalAuth attaches the identity when a valid token is present.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := m.identityFromRequest(r); ok {
			r = r.WithContext(WithIdentity(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// identityFromRequest reads "Authorization: Bearer <token>" or the
// auth_token cookie.
func (m *AuthMiddleware) identityFromRequest(r *http.Request) (services.Identity, bool) {
	token := ""
	if scheme, value, ok := strings.Cut(r.Header.Get("Authorization"), " "); ok && strings.EqualFold(scheme, "Bearer") {
		token = strings.TrimSpace(value)
	} else if cookie, err := r.Cookie("auth_token"); err == nil {
		token = cookie.Value
	}
	if token == "" {
		return services.Identity{}, false
	}

	id, err := m.verifier.Verify(token)
	if err != nil {
		return services.Identity{}, false
	}
	return id, true
}

func WithIdentity(ctx context.Context, id services.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the authenticated caller, if any.
func IdentityFromContext(ctx context.Context) (services.Identity, bool) {
	id, ok := ctx.Value(identityKey).(services.Identity)
	return id, ok
}
