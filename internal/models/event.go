package models

import "time"

// ActivityTypes lists the known event activity names.
var ActivityTypes = []string{"Açılış", "Toplantı", "Ziyaret", "Konferans", "Festival", "Sergi", "Diğer"}

// DefaultAttendees are the officials that can be assigned to an event.
var DefaultAttendees = []string{
	"Başkan Mehmet Özcan",
	"Başkan Yardımcısı İsmail Büyükvarlık",
	"Başkan Yardımcısı Bilgin Atlı",
}

// Event is a scheduled municipal event.
type Event struct {
	ID             int64     `json:"id"`
	RequestorName  string    `json:"requestorName"`
	ActivityName   string    `json:"activityName"`
	Address        string    `json:"address"`
	Date           time.Time `json:"date"`
	Attendees      []string  `json:"attendees"`
	AdditionalInfo string    `json:"additionalInfo"`
}
