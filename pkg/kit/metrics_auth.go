package kit

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// MetricsAuth guards the scrape endpoint with a static bearer token.
// An empty token disables access entirely.
func MetricsAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			got, ok := BearerToken(r.Header.Get("Authorization"))
			if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// BearerToken extracts the credential from an Authorization header value.
// Both "Bearer <tok>" and a bare "<tok>" are accepted.
func BearerToken(authz string) (string, bool) {
	authz = strings.TrimSpace(authz)
	if authz == "" || strings.EqualFold(authz, "Bearer") {
		return "", false
	}

	if scheme, rest, found := strings.Cut(authz, " "); found && strings.EqualFold(scheme, "Bearer") {
		authz = strings.TrimSpace(rest)
	}
	return authz, authz != ""
}
