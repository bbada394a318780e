package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/KOFI-GYIMAH/portfolio/pkg/errors"
	"github.com/gorilla/mux"
)

// * RequireBearer guards admin routes. Without a token the routes answer 503,
// * unless allowOpen is set for local development.
func RequireBearer(token string, allowOpen bool) mux.MiddlewareFunc {
	expected := []byte(strings.TrimSpace(token))

	return func(next http.Handler) http.Handler {
		if len(expected) == 0 {
			if allowOpen {
				return next
			}
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				errors.WriteHTTPError(w, errors.New(
					"ADMIN_DISABLED",
					"Admin API not configured",
					"ADMIN_TOKEN is not set",
					nil,
					errors.LevelError,
				).WithKind(errors.KindConfig).WithStatus(http.StatusServiceUnavailable))
			})
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(strings.TrimSpace(got)), expected) != 1 {
				w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
				errors.WriteHTTPError(w, errors.New(
					"ADMIN_UNAUTHORIZED",
					"Unauthorized",
					"A valid admin bearer token is required",
					nil,
					errors.LevelWarning,
				).WithKind(errors.KindAuth))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
