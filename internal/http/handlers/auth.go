package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/hongminglow/civic-tracker/internal/auth"
	"github.com/hongminglow/civic-tracker/internal/guard"
	"github.com/hongminglow/civic-tracker/internal/http/respond"
	"github.com/hongminglow/civic-tracker/internal/middleware"
	"github.com/hongminglow/civic-tracker/internal/models"
	"github.com/hongminglow/civic-tracker/internal/models/dto"
	"github.com/hongminglow/civic-tracker/internal/session"
)

const dashboardPath = "/dashboard"

// Sessions opens, looks up and drops client sessions.
type Sessions interface {
	Open(ctx context.Context) (string, *session.Manager)
	Get(ctx context.Context, id string) (*session.Manager, error)
	Forget(id string)
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Generate(sessionID string) (string, error)
}

// AuthHandler owns the login, logout and session endpoints.
type AuthHandler struct {
	sessions Sessions
	tokens   TokenIssuer
	log      *zap.Logger
	limit    func(http.Handler) http.Handler
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(sessions Sessions, tokens TokenIssuer, log *zap.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, tokens: tokens, log: log}
}

// LimitLogin wraps the login endpoint with mw, typically a rate limiter.
func (h *AuthHandler) LimitLogin(mw func(http.Handler) http.Handler) *AuthHandler {
	h.limit = mw
	return h
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	var login http.Handler = http.HandlerFunc(h.handleLogin)
	if h.limit != nil {
		login = h.limit(login)
	}
	mux.Handle("POST /api/login", login)
	mux.HandleFunc("POST /api/logout", h.handleLogout)
	mux.HandleFunc("GET /api/me", h.handleMe)
}

// handleLogin signs in within the caller's session, or a new one when the
// request carries no token. A successful login always returns a fresh token.
func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "username and password are required")
		return
	}

	cur, ok := middleware.SessionFromContext(r.Context())
	fresh := !ok
	if fresh {
		cur.ID, cur.Manager = h.sessions.Open(r.Context())
	}

	principal, err := cur.Manager.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, session.ErrSessionRetired) {
		// The session was logged out and dropped after this request resolved it.
		if live, getErr := h.sessions.Get(r.Context(), cur.ID); getErr == nil {
			cur.Manager = live
			principal, err = live.Login(r.Context(), req.Username, req.Password)
		}
	}
	if err != nil {
		if fresh {
			h.sessions.Forget(cur.ID)
		}
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			respond.Error(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, session.ErrLoginInProgress):
			respond.Error(w, http.StatusConflict, "a login is already in progress")
		case errors.Is(err, session.ErrLoginSuperseded):
			respond.Error(w, http.StatusConflict, "login cancelled by logout")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			respond.Error(w, http.StatusRequestTimeout, "login cancelled")
		default:
			h.log.Error("login failed", zap.String("session_id", cur.ID), zap.Error(err))
			respond.Error(w, http.StatusInternalServerError, "failed to persist session")
		}
		return
	}

	token, err := h.tokens.Generate(cur.ID)
	if err != nil {
		h.log.Error("generate token", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	landing := dashboardPath
	if principal.Role == models.RoleDirectorate {
		landing = guard.DirectoratePath
	}
	respond.JSON(w, http.StatusOK, "login successful", dto.LoginResponse{Token: token, User: principal, Redirect: landing})
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	cur, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		respond.Redirect(w, http.StatusUnauthorized, "authentication required", guard.LoginPath)
		return
	}
	err := cur.Manager.Logout(r.Context())
	h.sessions.Forget(cur.ID)
	if err != nil {
		h.log.Error("logout: clear persisted session", zap.String("session_id", cur.ID), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "logged out, but persisted session could not be cleared")
		return
	}
	respond.JSON(w, http.StatusOK, "logged out", map[string]string{"redirect": guard.LoginPath})
}

func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.SessionFromContext(r.Context()); !ok {
		respond.Redirect(w, http.StatusUnauthorized, "authentication required", guard.LoginPath)
		return
	}
	snap := middleware.SnapshotFromContext(r.Context())
	name, _ := snap.CurrentDirectorateName()
	respond.JSON(w, http.StatusOK, "session", dto.SessionResponse{
		User:          snap.Principal,
		Authenticated: snap.IsAuthenticated(),
		Loading:       snap.Loading,
		Admin:         snap.IsAdmin(),
		Directorate:   name,
	})
}
