package models

import "time"

// LoginAuditRecord is one entry of the per-session login log.
type LoginAuditRecord struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
	Role      Role      `json:"role"`
}
