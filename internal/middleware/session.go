package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/hongminglow/civic-tracker/internal/session"
)

// TokenParser extracts a session id from a bearer token.
type TokenParser interface {
	Parse(token string) (string, error)
}

// SessionLookup resolves a session id to its Manager.
type SessionLookup interface {
	Get(ctx context.Context, id string) (*session.Manager, error)
}

// Current is the session attached to a request.
type Current struct {
	ID      string
	Manager *session.Manager
}

type sessionKey struct{}

// Session resolves the bearer token of the request to a session and stores it
// in the context. Requests without a usable token continue without a session;
// the route guard treats them as unauthenticated.
func Session(tokens TokenParser, sessions SessionLookup, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}
			id, err := tokens.Parse(raw)
			if err != nil {
				log.Debug("ignoring session token", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			m, err := sessions.Get(r.Context(), id)
			if err != nil {
				log.Debug("ignoring session", zap.String("session_id", id), zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			ctx := WithSession(r.Context(), Current{ID: id, Manager: m})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// WithSession stores cur in ctx.
func WithSession(ctx context.Context, cur Current) context.Context {
	return context.WithValue(ctx, sessionKey{}, cur)
}

// SessionFromContext returns the session attached to ctx.
func SessionFromContext(ctx context.Context) (Current, bool) {
	cur, ok := ctx.Value(sessionKey{}).(Current)
	return cur, ok && cur.Manager != nil
}

// SnapshotFromContext returns a fresh snapshot of the request's session, or
// the zero Snapshot when there is none.
func SnapshotFromContext(ctx context.Context) session.Snapshot {
	cur, ok := SessionFromContext(ctx)
	if !ok {
		return session.Snapshot{}
	}
	return cur.Manager.Snapshot()
}
