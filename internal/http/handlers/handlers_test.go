package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/civic-tracker/internal/auth"
	"github.com/hongminglow/civic-tracker/internal/guard"
	"github.com/hongminglow/civic-tracker/internal/middleware"
	"github.com/hongminglow/civic-tracker/internal/models"
	"github.com/hongminglow/civic-tracker/internal/records"
	"github.com/hongminglow/civic-tracker/internal/session"
	"github.com/hongminglow/civic-tracker/internal/storage/memory"
)

func testCreds(t *testing.T) *auth.CredentialStore {
	t.Helper()
	creds, err := auth.NewCredentialStore(auth.CredentialConfig{
		AdminPassword:       "admin123",
		StaffPassword:       "staff123",
		DirectoratePassword: "Belediye22",
		Cost:                bcrypt.MinCost,
	}, models.Directorates())
	require.NoError(t, err)
	return creds
}

type stubIssuer struct{}

func (stubIssuer) Generate(id string) (string, error) { return "token-" + id, nil }

func serve(h http.Handler, method, target, body string, m *session.Manager) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if m != nil {
		req = req.WithContext(middleware.WithSession(req.Context(), middleware.Current{ID: "sid", Manager: m}))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLoginForgetsFreshSessionOnFailure(t *testing.T) {
	creds := testCreds(t)
	reg := session.NewRegistry(memory.NewStore(), creds)
	mux := http.NewServeMux()
	NewAuthHandler(reg, stubIssuer{}, zap.NewNop()).Register(mux)

	rec := serve(mux, http.MethodPost, "/api/login", `{"username":"admin","password":"nope"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(mux, http.MethodPost, "/api/login", `{"username":"admin",`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(mux, http.MethodPost, "/api/login", `{"username":"admin","password":"admin123"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"token-`)
	assert.Contains(t, rec.Body.String(), `"redirect":"/dashboard"`)
}

func TestLoginReusesCallerSession(t *testing.T) {
	creds := testCreds(t)
	mux := http.NewServeMux()
	NewAuthHandler(session.NewRegistry(memory.NewStore(), creds), stubIssuer{}, zap.NewNop()).Register(mux)

	m := session.NewManager(memory.NewStore(), creds)
	m.Restore(context.Background())
	rec := serve(mux, http.MethodPost, "/api/login", `{"username":"Su ve Kanalizasyon Müdürlüğü","password":"Belediye22"}`, m)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"token-sid"`)
	assert.Contains(t, rec.Body.String(), `"redirect":"/directorates"`)
	assert.True(t, m.Snapshot().IsDirectorate())
}

func TestLoginOnRetiredSessionUsesLiveManager(t *testing.T) {
	ctx := context.Background()
	creds := testCreds(t)
	reg := session.NewRegistry(memory.NewStore(), creds)
	mux := http.NewServeMux()
	NewAuthHandler(reg, stubIssuer{}, zap.NewNop()).Register(mux)

	id, stale := reg.Open(ctx)
	reg.Forget(id)

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"staff","password":"staff123"}`))
	req = req.WithContext(middleware.WithSession(req.Context(), middleware.Current{ID: id, Manager: stale}))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	live, err := reg.Get(ctx, id)
	require.NoError(t, err)
	assert.NotSame(t, stale, live)
	assert.Equal(t, "staff", live.Snapshot().Username())
	assert.False(t, stale.Snapshot().IsAuthenticated())
}

func TestLogoutWithoutSession(t *testing.T) {
	mux := http.NewServeMux()
	NewAuthHandler(session.NewRegistry(memory.NewStore(), testCreds(t)), stubIssuer{}, zap.NewNop()).Register(mux)

	rec := serve(mux, http.MethodPost, "/api/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, guard.LoginPath, rec.Header().Get("Location"))
}

func TestNavigationRejectsRelativePath(t *testing.T) {
	mux := http.NewServeMux()
	NewNavigationHandler(guard.DefaultTable()).Register(mux)

	assert.Equal(t, http.StatusBadRequest, serve(mux, http.MethodGet, "/api/navigation?path=visits", "", nil).Code)

	rec := serve(mux, http.MethodGet, "/api/navigation?path=/login", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"state":"allowed"`)

	rec = serve(mux, http.MethodGet, "/api/navigation?path=/nowhere", "", nil)
	assert.Contains(t, rec.Body.String(), `"state":"not_found"`)
}

func TestEventDeleteAndValidation(t *testing.T) {
	creds := testCreds(t)
	store := records.NewStore(creds)
	mux := http.NewServeMux()
	NewEventHandler(store, guard.DefaultTable(), zap.NewNop()).Register(mux)

	m := session.NewManager(memory.NewStore(), creds)
	m.Restore(context.Background())
	_, err := m.Login(context.Background(), "staff", "staff123")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, serve(mux, http.MethodDelete, "/api/events/1", "", m).Code)
	assert.Equal(t, http.StatusNotFound, serve(mux, http.MethodDelete, "/api/events/1", "", m).Code)
	assert.Equal(t, http.StatusBadRequest, serve(mux, http.MethodGet, "/api/events/0", "", m).Code)

	rec := serve(mux, http.MethodPost, "/api/events", `{"requestorName":"Hasan Çelik","activityName":"Sergi","address":"Kültür Merkezi","date":"2024-06-01T00:00:00Z"}`, m)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "attendee")
}

func TestParseRange(t *testing.T) {
	cases := []struct {
		query string
		ok    bool
		want  time.Time
	}{
		{"", true, time.Time{}},
		{"?to=2023-04-30", true, time.Date(2023, 4, 30, 23, 59, 59, 999999999, time.UTC)},
		{"?from=2023-05-01&to=2023-04-01", false, time.Time{}},
		{"?to=yesterday", false, time.Time{}},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			rec := httptest.NewRecorder()
			rng, ok := parseRange(rec, httptest.NewRequest(http.MethodGet, "/"+tc.query, nil))
			assert.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, tc.want, rng.To)
			} else {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			}
		})
	}
}
