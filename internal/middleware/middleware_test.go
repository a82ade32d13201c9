package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/civic-tracker/internal/auth"
	"github.com/hongminglow/civic-tracker/internal/guard"
	"github.com/hongminglow/civic-tracker/internal/models"
	"github.com/hongminglow/civic-tracker/internal/session"
	"github.com/hongminglow/civic-tracker/internal/storage/memory"
)

var testCreds = func() *auth.CredentialStore {
	store, err := auth.NewCredentialStore(auth.CredentialConfig{
		AdminPassword:       "admin123",
		StaffPassword:       "staff123",
		DirectoratePassword: "Belediye22",
		Cost:                bcrypt.MinCost,
	}, models.Directorates())
	if err != nil {
		panic(err)
	}
	return store
}()

func loggedIn(t *testing.T, username, password string) *session.Manager {
	t.Helper()
	m := session.NewManager(memory.NewStore(), testCreds)
	m.Restore(context.Background())
	if username != "" {
		_, err := m.Login(context.Background(), username, password)
		require.NoError(t, err)
	}
	return m
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
}

func serveGuarded(m *session.Manager, view string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/x", nil)
	if m != nil {
		req = req.WithContext(WithSession(req.Context(), Current{ID: "s", Manager: m}))
	}
	rec := httptest.NewRecorder()
	Guard(guard.DefaultTable(), view, okHandler()).ServeHTTP(rec, req)
	return rec
}

func TestGuardResponses(t *testing.T) {
	staff := loggedIn(t, "staff", "staff123")
	admin := loggedIn(t, "admin", "admin123")
	fen := loggedIn(t, "Fen İşleri Müdürlüğü", "Belediye22")
	loading := session.NewManager(memory.NewStore(), testCreds)

	cases := []struct {
		name     string
		m        *session.Manager
		view     string
		status   int
		location string
	}{
		{"no session", nil, "/visits", http.StatusUnauthorized, guard.LoginPath},
		{"logged out session", loggedIn(t, "", ""), "/visits", http.StatusUnauthorized, guard.LoginPath},
		{"loading", loading, "/visits", http.StatusServiceUnavailable, ""},
		{"staff on settings", staff, "/settings", http.StatusForbidden, guard.UnauthorizedPath},
		{"admin on settings", admin, "/settings", http.StatusTeapot, ""},
		{"staff on visits", staff, "/visits", http.StatusTeapot, ""},
		{"directorate on visits", fen, "/visits", http.StatusForbidden, guard.DirectoratePath},
		{"directorate on directorates", fen, "/directorates", http.StatusTeapot, ""},
		{"unknown view", admin, "/nowhere", http.StatusNotFound, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serveGuarded(tc.m, tc.view)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.location, rec.Header().Get("Location"))
		})
	}
}

func TestGuardLoadingSetsRetryAfter(t *testing.T) {
	rec := serveGuarded(session.NewManager(memory.NewStore(), testCreds), "/visits")
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestGuardReevaluatesAfterLogout(t *testing.T) {
	m := loggedIn(t, "admin", "admin123")
	assert.Equal(t, http.StatusTeapot, serveGuarded(m, "/reports").Code)

	require.NoError(t, m.Logout(context.Background()))
	assert.Equal(t, http.StatusUnauthorized, serveGuarded(m, "/reports").Code)
}

type stubTokens map[string]string

func (s stubTokens) Parse(token string) (string, error) {
	id, ok := s[token]
	if !ok {
		return "", errors.New("bad token")
	}
	return id, nil
}

type stubSessions map[string]*session.Manager

func (s stubSessions) Get(_ context.Context, id string) (*session.Manager, error) {
	m, ok := s[id]
	if !ok {
		return nil, session.ErrUnknownSession
	}
	return m, nil
}

func TestSessionMiddleware(t *testing.T) {
	m := loggedIn(t, "staff", "staff123")
	mw := Session(stubTokens{"good": "sid-1", "orphan": "sid-2"}, stubSessions{"sid-1": m}, zap.NewNop())

	var got Current
	var found bool
	h := mw(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, found = SessionFromContext(r.Context())
	}))

	cases := []struct {
		header string
		found  bool
	}{
		{"Bearer good", true},
		{"Bearer  good ", true},
		{"", false},
		{"Basic good", false},
		{"Bearer bad", false},
		{"Bearer orphan", false},
	}
	for _, tc := range cases {
		t.Run(tc.header, func(t *testing.T) {
			found = false
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tc.found, found)
			if tc.found {
				assert.Equal(t, "sid-1", got.ID)
				assert.Same(t, m, got.Manager)
			}
		})
	}
}

func TestSnapshotFromContextWithoutSession(t *testing.T) {
	snap := SnapshotFromContext(context.Background())
	assert.False(t, snap.IsAuthenticated())
	assert.False(t, snap.Loading)
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"http://dashboard.test"})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/visits", nil)
	req.Header.Set("Origin", "http://DASHBOARD.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://DASHBOARD.test", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/api/visits", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSWildcard(t *testing.T) {
	h := CORS([]string{"*"})(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://any.test")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc", seen)
	assert.Equal(t, "abc", rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
}

func TestLoggingRecordsStatusAndUser(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := loggedIn(t, "admin", "admin123")
	h := RequestID(Logging(zap.New(core))(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	req = req.WithContext(WithSession(req.Context(), Current{ID: "sid-9", Manager: m}))
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, "/api/settings", fields["path"])
	assert.Equal(t, "admin", fields["username"])
	assert.Equal(t, "sid-9", fields["session_id"])
	assert.IsType(t, time.Duration(0), fields["duration"])
}

func TestRateLimitPerClient(t *testing.T) {
	h := RateLimit(1, 2)(okHandler())
	hit := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusTeapot, hit("10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusTeapot, hit("10.0.0.1:5001").Code)
	limited := hit("10.0.0.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusTeapot, hit("10.0.0.2:5000").Code)
}

func TestRateLimitDisabled(t *testing.T) {
	h := RateLimit(0, 1)(okHandler())
	for range 10 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/login", nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}
}
