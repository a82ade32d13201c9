package models

import "time"

// Task statuses.
const (
	TaskPending    = "Beklemede"
	TaskInProgress = "İşlemde"
	TaskCompleted  = "Tamamlandı"
)

// Task is a case forwarded to a directorate.
type Task struct {
	ID          int64     `json:"id"`
	VisitID     int64     `json:"visitId"`
	CitizenName string    `json:"citizenName"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
	ForwardedTo string    `json:"forwardedTo"`
}

// Directorate returns the directorate that owns the task.
func (t Task) Directorate() string {
	return t.ForwardedTo
}
