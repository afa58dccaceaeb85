package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/ohadbenami/gaya-daily-reports/pkg/apiErrors"
	"github.com/ohadbenami/gaya-daily-reports/pkg/log"
)

// AdminAuth guards a route with the static admin bearer token. With no token
// configured the route is closed, never open.
func AdminAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				log.ForContext(r.Context()).Warn("admin token not configured, rejecting request")
				apiErrors.WriteError(w, apiErrors.ErrAdminTokenMissing, "admin API disabled: no admin token configured", nil)
				return
			}

			presented := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "invalid admin token", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
