// Package scope restricts record sets to what the current principal should
// see. Like the route guard it is a presentation boundary only and does not
// replace authorization by the owner of the data.
package scope

import (
	"strings"

	"github.com/hongminglow/civic-tracker/internal/models"
	"github.com/hongminglow/civic-tracker/internal/session"
)

// Record is anything linked to a directorate by name.
type Record interface {
	Directorate() string
}

// Filter returns the records visible to snap. Directorate principals see only
// records linked to their own directorate and cannot widen that with
// selected. Admin and staff see everything, narrowed to selected when it is
// not empty. Logged-out sessions see nothing.
func Filter[T Record](snap session.Snapshot, records []T, selected string) []T {
	if !snap.IsAuthenticated() {
		return []T{}
	}
	want := selected
	if name, ok := snap.CurrentDirectorateName(); ok {
		want = name
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		if want == "" || r.Directorate() == want {
			out = append(out, r)
		}
	}
	return out
}

// Directorates filters the directorate list by a case-insensitive search term.
// A directorate principal only ever sees its own entry.
func Directorates(snap session.Snapshot, all []models.Directorate, search string) []models.Directorate {
	if !snap.IsAuthenticated() {
		return []models.Directorate{}
	}
	own, isDirectorate := snap.CurrentDirectorateName()
	term := strings.ToLower(search)
	out := make([]models.Directorate, 0, len(all))
	for _, d := range all {
		if isDirectorate && d.Name != own {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(d.Name), term) {
			continue
		}
		out = append(out, d)
	}
	return out
}
