package models

import (
	"errors"
	"fmt"
)

// ErrInvalidPrincipal marks a principal that breaks the role/directorate invariant.
var ErrInvalidPrincipal = errors.New("invalid principal")

// Principal is the authenticated identity of a session.
// DirectorateID is non-zero if and only if Role is RoleDirectorate.
type Principal struct {
	Username      string `json:"username"`
	Role          Role   `json:"role"`
	DirectorateID int64  `json:"directorateId,omitempty"`
}

// Validate checks the shape of the principal. It does not check that the
// directorate exists; callers holding the catalog do that.
func (p Principal) Validate() error {
	if p.Username == "" {
		return fmt.Errorf("%w: empty username", ErrInvalidPrincipal)
	}
	switch p.Role {
	case RoleAdmin, RoleStaff:
		if p.DirectorateID != 0 {
			return fmt.Errorf("%w: role %s carries directorate %d", ErrInvalidPrincipal, p.Role, p.DirectorateID)
		}
	case RoleDirectorate:
		if p.DirectorateID <= 0 {
			return fmt.Errorf("%w: directorate principal without directorate id", ErrInvalidPrincipal)
		}
	default:
		return fmt.Errorf("%w: unknown role %q", ErrInvalidPrincipal, p.Role)
	}
	return nil
}
