// Package guard decides whether a navigation to a view is permitted for the
// current session.
//
// The decision is a UI convenience: all data in this system is served to the
// same client that evaluates the guard, so every rule here must be enforced
// again by whatever backend owns the data in a real deployment.
package guard

import "github.com/hongminglow/civic-tracker/internal/session"

// Entry points a denied navigation redirects to.
const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
	DirectoratePath  = "/directorates"
)

// State is the outcome of a guard evaluation.
type State int

const (
	Loading State = iota
	Allowed
	Denied
	NotFound
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Allowed:
		return "allowed"
	case Denied:
		return "denied"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Reason qualifies a Denied decision.
type Reason int

const (
	NoReason Reason = iota
	Unauthenticated
	Forbidden
	Scope
)

func (r Reason) String() string {
	switch r {
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	case Scope:
		return "scope"
	default:
		return ""
	}
}

// Decision is the result of evaluating a route for a session.
type Decision struct {
	State    State
	Reason   Reason
	Redirect string
}

// Route describes the capabilities a protected view requires.
type Route struct {
	Path             string
	RequireAdmin     bool
	AllowDirectorate bool
}

// Evaluate applies the guard rules in order: a restoring session waits, a
// missing principal goes to login, a non-admin on an admin route goes to the
// unauthorized page, a directorate principal outside its scope goes to its
// landing page, and everything else is allowed.
func Evaluate(snap session.Snapshot, route Route, currentPath string) Decision {
	if snap.Loading {
		return Decision{State: Loading}
	}
	if !snap.IsAuthenticated() {
		return Decision{State: Denied, Reason: Unauthenticated, Redirect: LoginPath}
	}
	if route.RequireAdmin && !snap.IsAdmin() {
		return Decision{State: Denied, Reason: Forbidden, Redirect: UnauthorizedPath}
	}
	if snap.IsDirectorate() && !route.AllowDirectorate && currentPath != DirectoratePath {
		return Decision{State: Denied, Reason: Scope, Redirect: DirectoratePath}
	}
	return Decision{State: Allowed}
}
