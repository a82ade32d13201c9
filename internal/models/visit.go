package models

import "time"

// Visit statuses.
const (
	VisitOpen       = "Açık"
	VisitInProgress = "İşlemde"
	VisitCompleted  = "Tamamlandı"
	VisitCancelled  = "İptal Edildi"
	VisitNoShow     = "Gelmedi"
)

// VisitStatuses lists every accepted visit status.
var VisitStatuses = []string{VisitOpen, VisitInProgress, VisitCompleted, VisitCancelled, VisitNoShow}

// VisitReasons lists the accepted visit reason categories.
var VisitReasons = []string{
	"Evrak Teslimi",
	"Bilgi Talebi",
	"Hizmet Kaydı",
	"Şikayet",
	"Ruhsat Başvurusu",
	"Ödeme",
	"Danışma",
	"Diğer",
}

// Visit is a recorded citizen visit.
type Visit struct {
	ID             int64     `json:"id"`
	CitizenName    string    `json:"citizenName"`
	Date           time.Time `json:"date"`
	ReasonCategory string    `json:"reasonCategory"`
	Description    string    `json:"description"`
	DepartmentID   string    `json:"departmentId"`
	Status         string    `json:"status"`
	ForwardedTo    string    `json:"forwardedTo,omitempty"`
}

// Directorate returns the directorate the visit was forwarded to, if any.
func (v Visit) Directorate() string {
	return v.ForwardedTo
}
