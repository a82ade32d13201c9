package middleware

import (
	"net/http"

	"github.com/hongminglow/civic-tracker/internal/guard"
	"github.com/hongminglow/civic-tracker/internal/http/respond"
)

// Guard evaluates the route guard for view on every request and only calls
// next when the decision is Allowed.
func Guard(table *guard.Table, view string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision := table.Decide(SnapshotFromContext(r.Context()), view)
		switch decision.State {
		case guard.Allowed:
			next.ServeHTTP(w, r)
		case guard.Loading:
			w.Header().Set("Retry-After", "1")
			respond.Error(w, http.StatusServiceUnavailable, "session is loading")
		case guard.Denied:
			switch decision.Reason {
			case guard.Unauthenticated:
				respond.Redirect(w, http.StatusUnauthorized, "authentication required", decision.Redirect)
			case guard.Forbidden:
				respond.Redirect(w, http.StatusForbidden, "admin privileges required", decision.Redirect)
			case guard.Scope:
				respond.Redirect(w, http.StatusForbidden, "not available to directorate accounts", decision.Redirect)
			default:
				respond.Error(w, http.StatusForbidden, "access denied")
			}
		default:
			respond.Error(w, http.StatusNotFound, "not found")
		}
	})
}
