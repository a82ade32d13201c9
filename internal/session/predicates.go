package session

import "github.com/hongminglow/civic-tracker/internal/models"

// Snapshot is a read-only copy of session state. The zero value describes a
// session that is logged out and not loading, so every predicate is safe to
// call before a restore has happened.
type Snapshot struct {
	Principal *models.Principal
	Loading   bool
}

// IsAuthenticated reports whether a principal is present.
func (s Snapshot) IsAuthenticated() bool {
	return s.Principal != nil
}

// IsAdmin reports whether the principal is the admin account.
func (s Snapshot) IsAdmin() bool {
	return s.Principal != nil && s.Principal.Role == models.RoleAdmin
}

// IsDirectorate reports whether the principal is a directorate account.
func (s Snapshot) IsDirectorate() bool {
	return s.Principal != nil && s.Principal.Role == models.RoleDirectorate
}

// CurrentDirectorateName returns the directorate name of a directorate principal.
func (s Snapshot) CurrentDirectorateName() (string, bool) {
	if !s.IsDirectorate() {
		return "", false
	}
	return s.Principal.Username, true
}

// Username returns the principal's username or "" when logged out.
func (s Snapshot) Username() string {
	if s.Principal == nil {
		return ""
	}
	return s.Principal.Username
}
