package models

// Role is the closed set of principal kinds known to the dashboard.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleStaff       Role = "staff"
	RoleDirectorate Role = "directorate"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleDirectorate:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
