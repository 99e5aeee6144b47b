package middleware

import (
	"net/http"
	"strconv"

	"github.com/vilkasoft/backoffice/internal/auth"
	"github.com/vilkasoft/backoffice/pkg/logger"
)

// UserContext tags the request log context with the authenticated account.
// Must run after the auth middleware has resolved the user.
func UserContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok || user == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := logger.With(r.Context(), "userID", strconv.FormatInt(user.ID, 10), "role", user.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
