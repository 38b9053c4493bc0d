package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const UserKey contextKey = "user"

// UserHeader carries the console user id. There is no authentication; the
// id only scopes history and recommendations.
const UserHeader = "X-User-ID"

// IdentifyUser stores the caller's user id in the request context. The id is
// taken from X-User-ID, then the ?user= query parameter, then defaultUser.
// Malformed ids fall back to defaultUser.
func IdentifyUser(defaultUser string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := strings.TrimSpace(r.Header.Get(UserHeader))
			if user == "" {
				user = strings.TrimSpace(r.URL.Query().Get("user"))
			}
			if user == "" || ValidateUserID(user) != nil {
				user = defaultUser
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), UserKey, user)))
		})
	}
}

// GetUserFromContext extracts the user id set by IdentifyUser.
func GetUserFromContext(ctx context.Context) string {
	if user, ok := ctx.Value(UserKey).(string); ok {
		return user
	}
	return ""
}
