package models

// Settings holds the editable system settings.
type Settings struct {
	SystemName       string `json:"systemName"`
	MunicipalityName string `json:"municipalityName"`
	AdminEmail       string `json:"adminEmail"`
	Notifications    bool   `json:"notifications"`
}

// DefaultSettings returns the settings a fresh install starts with.
func DefaultSettings() Settings {
	return Settings{
		SystemName:       "Civic Visit Tracker",
		MunicipalityName: "Riverdale City",
		AdminEmail:       "admin@riverdale.gov",
		Notifications:    true,
	}
}
