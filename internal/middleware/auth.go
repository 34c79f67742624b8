package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/BaGreal2/kino-server/internal/auth"
)

type contextKey string

const claimsKey contextKey = "claims"

// Auth gates a handler behind bearer-token verification. On success the
// verified claims are attached to the request context; anything else is a
// 401 before the handler runs.
func Auth(secret string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				unauthorized(w)
				return
			}

			claims, err := auth.Verify(secret, strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next(w, r.WithContext(ctx))
		}
	}
}

// ClaimsFrom returns the verified claims attached by Auth, or nil on an
// unguarded request.
func ClaimsFrom(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

// UserID returns the authenticated account id, or 0 when unauthenticated.
func UserID(r *http.Request) int {
	if claims := ClaimsFrom(r.Context()); claims != nil {
		return claims.UserID
	}
	return 0
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": "Authentication failed"})
}
