package middleware

import (
	"context"
	"net/http"

	"github.com/akshatdev/bitblog/internal/auth"
)

type contextKey string

const claimsKey contextKey = "claims"

// Auth validates the session cookie and puts the token claims in the request
// context.
func Auth(tokens *auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.CookieName)
			if err != nil {
				unauthorized(w, "Missing session cookie")
				return
			}

			claims, err := tokens.Parse(cookie.Value)
			if err != nil {
				unauthorized(w, "Invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaims extracts the session claims set by Auth. The second return is
// false outside an authenticated request.
func GetClaims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"success":false,"statusCode":401,"message":"` + message + `"}`))
}
