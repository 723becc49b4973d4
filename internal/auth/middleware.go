// internal/auth/middleware.go
//
// Chi middleware that gates API routes behind a bearer token.

package auth

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// RequireAuth verifies the Authorization bearer token and stores the
// subject in the request context.  Missing or invalid tokens get a 401;
// the handler chain never runs.
func RequireAuth(secret []byte) func(http.Handler) http.Handler {
	if len(secret) == 0 {
		panic("auth.RequireAuth: secret must be non-empty")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(raw, "Bearer ")
			if !ok || tokenString == "" {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			subject, err := SubjectFromToken(tokenString, secret)
			if err != nil {
				zap.S().Debugw("token rejected", "err", err)
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), subject)))
		})
	}
}
