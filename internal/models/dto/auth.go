package dto

import "github.com/hongminglow/civic-tracker/internal/models"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string           `json:"token"`
	User     models.Principal `json:"user"`
	Redirect string           `json:"redirect"`
}

// SessionResponse describes the caller's session and the role predicates derived from it.
type SessionResponse struct {
	User          *models.Principal `json:"user"`
	Authenticated bool              `json:"isAuthenticated"`
	Loading       bool              `json:"isLoading"`
	Admin         bool              `json:"isAdmin"`
	Directorate   string            `json:"directorate,omitempty"`
}

type ProfileResponse struct {
	User        models.Principal    `json:"user"`
	Directorate *models.Directorate `json:"directorate,omitempty"`
}

type NavigationResponse struct {
	Path     string `json:"path"`
	State    string `json:"state"`
	Reason   string `json:"reason,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}
