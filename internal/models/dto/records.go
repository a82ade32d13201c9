package dto

import (
	"time"

	"github.com/hongminglow/civic-tracker/internal/models"
)

type CreateVisitRequest struct {
	CitizenName    string    `json:"citizenName"`
	Date           time.Time `json:"date"`
	Time           string    `json:"time"`
	ReasonCategory string    `json:"reasonCategory"`
	Description    string    `json:"description"`
	DepartmentID   string    `json:"departmentId"`
	Status         string    `json:"status"`
}

type ForwardVisitRequest struct {
	Directorate string `json:"directorate"`
}

type ForwardVisitResponse struct {
	Visit models.Visit `json:"visit"`
	Task  models.Task  `json:"task"`
}

type CreateEventRequest struct {
	RequestorName  string    `json:"requestorName"`
	ActivityName   string    `json:"activityName"`
	Address        string    `json:"address"`
	Date           time.Time `json:"date"`
	Time           string    `json:"time"`
	Attendees      []string  `json:"attendees"`
	AdditionalInfo string    `json:"additionalInfo"`
}

type DashboardResponse struct {
	TotalVisits    int            `json:"totalVisits"`
	VisitsByStatus map[string]int `json:"visitsByStatus"`
	TotalEvents    int            `json:"totalEvents"`
	OpenTasks      int            `json:"openTasks"`
}
