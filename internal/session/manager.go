package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hongminglow/civic-tracker/internal/models"
	"github.com/hongminglow/civic-tracker/internal/storage"
)

// Keys of the persisted session state.
const (
	KeyUser      = "user"
	KeyLoginLogs = "loginLogs"
)

// ErrLoginInProgress is returned when a login is attempted while another one
// on the same session has not finished.
var ErrLoginInProgress = errors.New("login already in progress")

// ErrLoginSuperseded is returned when a logout ran while the login was
// pending. The login is dropped and the session stays logged out.
var ErrLoginSuperseded = errors.New("login superseded by logout")

// ErrSessionRetired is returned by Login on a Manager its Registry has dropped.
// Callers fetch the live Manager from the Registry again.
var ErrSessionRetired = errors.New("session retired")

// Authenticator resolves credentials and knows the directorate catalog.
type Authenticator interface {
	Authenticate(username, password string) (models.Principal, error)
	Directorate(id int64) (models.Directorate, bool)
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for login and restore events.
func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// WithClock overrides the time source used for audit timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLoginDelay makes every login wait d before checking credentials.
func WithLoginDelay(d time.Duration) Option {
	return func(m *Manager) { m.delay = d }
}

// WithClearAuditOnLogout makes Logout also drop the login audit log.
func WithClearAuditOnLogout(enabled bool) Option {
	return func(m *Manager) { m.clearAuditOnLogout = enabled }
}

// Manager owns one session: the current principal, its login audit log and
// their persisted mirror. It is the only writer of that state.
type Manager struct {
	kv                 storage.KV
	creds              Authenticator
	log                *zap.Logger
	now                func() time.Time
	delay              time.Duration
	clearAuditOnLogout bool

	// writeMu serializes login commits and logouts, including their storage I/O.
	writeMu sync.Mutex

	mu        sync.Mutex
	principal *models.Principal
	logs      []models.LoginAuditRecord
	restoring bool
	loggingIn bool
	retired   bool
	// logouts counts completed logouts; a login commits only if it is unchanged.
	logouts uint64
}

// NewManager returns a Manager in the loading state. Call Restore before use.
func NewManager(kv storage.KV, creds Authenticator, opts ...Option) *Manager {
	m := &Manager{
		kv:        kv,
		creds:     creds,
		log:       zap.NewNop(),
		now:       time.Now,
		restoring: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Restore loads the persisted principal and audit log. Missing, unreadable or
// malformed state is treated as absent; Restore never fails.
func (m *Manager) Restore(ctx context.Context) {
	m.mu.Lock()
	m.restoring = true
	m.mu.Unlock()

	principal := m.loadPrincipal(ctx)
	logs := m.loadLogs(ctx)

	m.mu.Lock()
	m.principal = principal
	m.logs = logs
	m.restoring = false
	m.mu.Unlock()
}

func (m *Manager) loadPrincipal(ctx context.Context) *models.Principal {
	raw, err := m.kv.Get(ctx, KeyUser)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			m.log.Warn("restore session: read principal", zap.Error(err))
		}
		return nil
	}
	var p models.Principal
	if err := json.Unmarshal(raw, &p); err != nil {
		m.log.Warn("restore session: malformed principal", zap.Error(err))
		return nil
	}
	if err := p.Validate(); err != nil {
		m.log.Warn("restore session: rejected principal", zap.Error(err))
		return nil
	}
	if p.Role == models.RoleDirectorate {
		d, ok := m.creds.Directorate(p.DirectorateID)
		if !ok {
			m.log.Warn("restore session: unknown directorate", zap.Int64("directorate_id", p.DirectorateID))
			return nil
		}
		if d.Name != p.Username {
			m.log.Warn("restore session: directorate name mismatch", zap.Int64("directorate_id", p.DirectorateID))
			return nil
		}
	}
	return &p
}

func (m *Manager) loadLogs(ctx context.Context) []models.LoginAuditRecord {
	raw, err := m.kv.Get(ctx, KeyLoginLogs)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			m.log.Warn("restore session: read login logs", zap.Error(err))
		}
		return nil
	}
	var logs []models.LoginAuditRecord
	if err := json.Unmarshal(raw, &logs); err != nil {
		m.log.Warn("restore session: malformed login logs", zap.Error(err))
		return nil
	}
	return logs
}

// Login authenticates the pair and, on success, makes the principal current,
// appends a login audit record and persists both. On any failure the session
// is left as it was.
func (m *Manager) Login(ctx context.Context, username, password string) (models.Principal, error) {
	m.mu.Lock()
	if m.retired {
		m.mu.Unlock()
		return models.Principal{}, ErrSessionRetired
	}
	if m.loggingIn {
		m.mu.Unlock()
		return models.Principal{}, ErrLoginInProgress
	}
	m.loggingIn = true
	generation := m.logouts
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.loggingIn = false
		m.mu.Unlock()
	}()

	if m.delay > 0 {
		timer := time.NewTimer(m.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return models.Principal{}, ctx.Err()
		case <-timer.C:
		}
	}

	principal, err := m.creds.Authenticate(username, password)
	if err != nil {
		m.log.Info("login rejected", zap.String("username", username), zap.Error(err))
		return models.Principal{}, err
	}

	if err := m.commitLogin(ctx, principal, generation); err != nil {
		return models.Principal{}, err
	}
	m.log.Info("login succeeded", zap.String("username", principal.Username), zap.String("role", principal.Role.String()))
	return principal, nil
}

func (m *Manager) commitLogin(ctx context.Context, principal models.Principal, generation uint64) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.mu.Lock()
	if m.logouts != generation {
		m.mu.Unlock()
		m.log.Info("login dropped after logout", zap.String("username", principal.Username))
		return ErrLoginSuperseded
	}
	logs := make([]models.LoginAuditRecord, len(m.logs), len(m.logs)+1)
	copy(logs, m.logs)
	m.mu.Unlock()

	logs = append(logs, models.LoginAuditRecord{
		ID:        len(logs) + 1,
		Username:  principal.Username,
		Timestamp: m.now(),
		Role:      principal.Role,
	})

	userJSON, err := json.Marshal(principal)
	if err != nil {
		return fmt.Errorf("encode principal: %w", err)
	}
	logsJSON, err := json.Marshal(logs)
	if err != nil {
		return fmt.Errorf("encode login logs: %w", err)
	}

	prevUser, prevErr := m.kv.Get(ctx, KeyUser)
	if err := m.kv.Put(ctx, KeyUser, userJSON); err != nil {
		return fmt.Errorf("persist principal: %w", err)
	}
	if err := m.kv.Put(ctx, KeyLoginLogs, logsJSON); err != nil {
		m.revertUser(ctx, prevUser, prevErr)
		return fmt.Errorf("persist login logs: %w", err)
	}

	m.mu.Lock()
	m.principal = &principal
	m.logs = logs
	m.mu.Unlock()
	return nil
}

func (m *Manager) revertUser(ctx context.Context, prev []byte, prevErr error) {
	var err error
	switch {
	case prevErr == nil:
		err = m.kv.Put(ctx, KeyUser, prev)
	case errors.Is(prevErr, storage.ErrNotFound):
		err = m.kv.Delete(ctx, KeyUser)
	default:
		return
	}
	if err != nil {
		m.log.Error("login rollback failed", zap.Error(err))
	}
}

// Logout clears the current principal and its persisted copy. The audit log
// is kept unless the Manager was built WithClearAuditOnLogout(true). The
// in-memory session is always cleared; a storage error is returned afterwards.
func (m *Manager) Logout(ctx context.Context) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.mu.Lock()
	username := ""
	if m.principal != nil {
		username = m.principal.Username
	}
	m.principal = nil
	m.logouts++
	if m.clearAuditOnLogout {
		m.logs = nil
	}
	m.mu.Unlock()

	var errs []error
	if err := m.kv.Delete(ctx, KeyUser); err != nil {
		errs = append(errs, fmt.Errorf("remove principal: %w", err))
	}
	if m.clearAuditOnLogout {
		if err := m.kv.Delete(ctx, KeyLoginLogs); err != nil {
			errs = append(errs, fmt.Errorf("remove login logs: %w", err))
		}
	}
	if username != "" {
		m.log.Info("logout", zap.String("username", username))
	}
	return errors.Join(errs...)
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := Snapshot{Loading: m.restoring || m.loggingIn}
	if m.principal != nil {
		p := *m.principal
		snap.Principal = &p
	}
	return snap
}

// LoginLogs returns a copy of the audit log, oldest first.
func (m *Manager) LoginLogs() []models.LoginAuditRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.LoginAuditRecord(nil), m.logs...)
}

// retire marks m as dropped by its Registry. It refuses while a login is in
// flight so that the pending login and later requests share one Manager.
func (m *Manager) retire() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loggingIn {
		return false
	}
	m.retired = true
	return true
}
