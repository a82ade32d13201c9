package guard

import "github.com/hongminglow/civic-tracker/internal/session"

// Table is the navigation surface: public routes plus protected routes.
type Table struct {
	public    map[string]struct{}
	protected map[string]Route
}

// NewTable builds a table from public paths and protected routes.
func NewTable(public []string, routes []Route) *Table {
	t := &Table{
		public:    make(map[string]struct{}, len(public)),
		protected: make(map[string]Route, len(routes)),
	}
	for _, p := range public {
		t.public[p] = struct{}{}
	}
	for _, r := range routes {
		t.protected[r.Path] = r
	}
	return t
}

// DefaultTable returns the dashboard's navigation surface.
func DefaultTable() *Table {
	return NewTable(
		[]string{LoginPath, UnauthorizedPath},
		[]Route{
			{Path: "/"},
			{Path: "/dashboard"},
			{Path: "/visits"},
			{Path: "/events"},
			{Path: "/departments"},
			{Path: "/directorates", AllowDirectorate: true},
			{Path: "/profile", AllowDirectorate: true},
			{Path: "/reports", RequireAdmin: true},
			{Path: "/settings", RequireAdmin: true},
		},
	)
}

// Route returns the protected route registered for path.
func (t *Table) Route(path string) (Route, bool) {
	r, ok := t.protected[path]
	return r, ok
}

// Decide evaluates a navigation to path. Public routes are always allowed and
// unknown paths resolve to NotFound.
func (t *Table) Decide(snap session.Snapshot, path string) Decision {
	if _, ok := t.public[path]; ok {
		return Decision{State: Allowed}
	}
	route, ok := t.protected[path]
	if !ok {
		return Decision{State: NotFound}
	}
	return Evaluate(snap, route, path)
}
