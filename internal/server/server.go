package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hongminglow/civic-tracker/internal/auth"
	"github.com/hongminglow/civic-tracker/internal/config"
	"github.com/hongminglow/civic-tracker/internal/guard"
	"github.com/hongminglow/civic-tracker/internal/http/handlers"
	"github.com/hongminglow/civic-tracker/internal/middleware"
	"github.com/hongminglow/civic-tracker/internal/models"
	"github.com/hongminglow/civic-tracker/internal/records"
	"github.com/hongminglow/civic-tracker/internal/session"
	"github.com/hongminglow/civic-tracker/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server. Sessions
// persist in kv.
func New(cfg config.Config, kv storage.KV, log *zap.Logger) (*Server, error) {
	creds, err := auth.NewCredentialStore(auth.CredentialConfig{
		AdminPassword:       cfg.AdminPassword,
		StaffPassword:       cfg.StaffPassword,
		DirectoratePassword: cfg.DirectoratePassword,
		Cost:                cfg.BcryptCost,
	}, models.Directorates())
	if err != nil {
		return nil, fmt.Errorf("build credential table: %w", err)
	}

	registry := session.NewRegistry(kv, creds,
		session.WithLogger(log.Named("session")),
		session.WithLoginDelay(cfg.LoginDelay),
		session.WithClearAuditOnLogout(cfg.ClearAuditOnLogout),
	)
	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	store := records.NewStore(creds)
	table := guard.DefaultTable()

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now(), cfg.StorageDriver).Register(mux)
	handlers.NewAuthHandler(registry, tokenManager, log).
		LimitLogin(middleware.RateLimit(cfg.LoginRatePerMinute, cfg.LoginBurst)).
		Register(mux)
	handlers.NewNavigationHandler(table).Register(mux)
	handlers.NewOverviewHandler(store, creds, table).Register(mux)
	handlers.NewVisitHandler(store, table, log).Register(mux)
	handlers.NewEventHandler(store, table, log).Register(mux)
	handlers.NewDirectorateHandler(store, creds, table, log).Register(mux)
	handlers.NewReportHandler(store, table).Register(mux)
	handlers.NewSettingsHandler(store, table, log).Register(mux)

	var handler http.Handler = middleware.CORS(cfg.CORSOrigins)(mux)
	handler = middleware.Logging(log)(handler)
	handler = middleware.Session(tokenManager, registry, log)(handler)
	handler = middleware.RequestID(handler)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10*time.Second + cfg.LoginDelay,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}, nil
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.inner.Handler
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
