package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/hongminglow/civic-tracker/internal/storage"
)

// ErrUnknownSession is returned for session ids that are not well formed.
var ErrUnknownSession = errors.New("unknown session")

// Registry hands out one Manager per client session. Each session persists
// under its own key prefix of the shared store.
type Registry struct {
	kv    storage.KV
	creds Authenticator
	opts  []Option

	mu       sync.Mutex
	sessions map[string]*Manager
}

// NewRegistry builds a registry whose managers share kv, creds and opts.
func NewRegistry(kv storage.KV, creds Authenticator, opts ...Option) *Registry {
	return &Registry{
		kv:       kv,
		creds:    creds,
		opts:     opts,
		sessions: make(map[string]*Manager),
	}
}

// Open starts a new, restored session and returns its id.
func (r *Registry) Open(ctx context.Context) (string, *Manager) {
	id := uuid.NewString()
	m := r.newManager(id)

	r.mu.Lock()
	r.sessions[id] = m
	r.mu.Unlock()

	m.Restore(ctx)
	return id, m
}

// Get returns the live Manager for id. A session that is not in memory, for
// example after a restart, is rebuilt and restored from storage. While that
// restore runs, concurrent callers receive the same Manager in its loading state.
func (r *Registry) Get(ctx context.Context, id string) (*Manager, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrUnknownSession
	}

	r.mu.Lock()
	if m, ok := r.sessions[id]; ok {
		r.mu.Unlock()
		return m, nil
	}
	m := r.newManager(id)
	r.sessions[id] = m
	r.mu.Unlock()

	m.Restore(ctx)
	return m, nil
}

func (r *Registry) newManager(id string) *Manager {
	return NewManager(storage.Prefixed(r.kv, "session/"+id+"/"), r.creds, r.opts...)
}

// Forget drops the in-memory Manager for id. Persisted state is untouched, so
// a later Get rebuilds the session from storage. A Manager with a login in
// flight is kept; a dropped Manager rejects further logins with ErrSessionRetired.
func (r *Registry) Forget(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.sessions[id]; ok && m.retire() {
		delete(r.sessions, id)
	}
}
