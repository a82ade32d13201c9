package records

import (
	"fmt"
	"strings"

	"github.com/hongminglow/civic-tracker/internal/models"
)

// Settings returns the current system settings.
func (s *Store) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings validates and replaces the system settings.
func (s *Store) UpdateSettings(next models.Settings) (models.Settings, error) {
	next.SystemName = strings.TrimSpace(next.SystemName)
	next.MunicipalityName = strings.TrimSpace(next.MunicipalityName)
	next.AdminEmail = strings.TrimSpace(next.AdminEmail)
	if next.SystemName == "" || next.MunicipalityName == "" {
		return models.Settings{}, fmt.Errorf("%w: system and municipality names are required", ErrInvalid)
	}
	if !strings.Contains(next.AdminEmail, "@") {
		return models.Settings{}, fmt.Errorf("%w: admin email is not valid", ErrInvalid)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = next
	return next, nil
}
