package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/civic-tracker/internal/models"
)

func at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestVisitsReport(t *testing.T) {
	visits := []models.Visit{
		{ID: 1, Date: at(2023, time.March, 3), DepartmentID: "2", Status: models.VisitCompleted},
		{ID: 2, Date: at(2023, time.April, 16), DepartmentID: "2", Status: models.VisitInProgress},
		{ID: 3, Date: at(2023, time.April, 17), DepartmentID: "3", Status: models.VisitOpen},
		{ID: 4, Date: at(2023, time.April, 18), DepartmentID: "3", Status: models.VisitCancelled},
		{ID: 5, Date: at(2023, time.April, 18), DepartmentID: "7", Status: models.VisitCompleted},
	}

	report := Visits(visits, Range{})
	assert.Equal(t, 5, report.TotalVisits)
	assert.InDelta(t, 0.4, report.ResolvedRate, 1e-9)
	assert.Equal(t, []MonthlyVisits{
		{Month: "2023-03", Visits: 1, Resolved: 1},
		{Month: "2023-04", Visits: 4, Resolved: 1},
	}, report.Monthly)

	require.Len(t, report.Departments, 6)
	assert.Equal(t, DepartmentPerformance{Department: "Vergi", Resolved: 1, Pending: 1}, report.Departments[1])
	assert.Equal(t, DepartmentPerformance{Department: "Su ve Kanalizasyon", Pending: 1}, report.Departments[2])
	assert.Equal(t, DepartmentPerformance{Department: "7", Resolved: 1}, report.Departments[5])
}

func TestVisitsReportRange(t *testing.T) {
	visits := []models.Visit{
		{ID: 1, Date: at(2023, time.March, 3), DepartmentID: "1", Status: models.VisitCompleted},
		{ID: 2, Date: at(2023, time.April, 16), DepartmentID: "1", Status: models.VisitOpen},
	}

	report := Visits(visits, Range{From: at(2023, time.April, 1), To: at(2023, time.April, 30)})
	assert.Equal(t, 1, report.TotalVisits)
	assert.Zero(t, report.ResolvedRate)
	assert.Equal(t, []MonthlyVisits{{Month: "2023-04", Visits: 1}}, report.Monthly)
	assert.Len(t, report.Departments, 5)
}

func TestEventsReport(t *testing.T) {
	events := []models.Event{
		{ID: 1, ActivityName: "Açılış", Date: at(2023, time.June, 15), Attendees: []string{"Başkan Mehmet Özcan", "Başkan Yardımcısı İsmail Büyükvarlık"}},
		{ID: 2, ActivityName: "Toplantı", Date: at(2023, time.June, 17), Attendees: []string{"Başkan Yardımcısı Bilgin Atlı"}},
		{ID: 3, ActivityName: "Açılış", Date: at(2023, time.July, 1), Attendees: []string{"Başkan Mehmet Özcan"}},
	}

	report := Events(events, Range{})
	assert.Equal(t, 3, report.TotalEvents)
	assert.Equal(t, []MonthlyEvents{
		{Month: "2023-06", Events: 2, Attendees: 3},
		{Month: "2023-07", Events: 1, Attendees: 1},
	}, report.Monthly)
	assert.Equal(t, []NamedCount{{Name: "Açılış", Value: 2}, {Name: "Toplantı", Value: 1}}, report.ByActivity)
	assert.Equal(t, NamedCount{Name: "Başkan Mehmet Özcan", Value: 2}, report.Attendance[0])
	assert.Len(t, report.Attendance, 3)
}

func TestEventsReportEmpty(t *testing.T) {
	report := Events(nil, Range{})
	assert.Zero(t, report.TotalEvents)
	assert.Empty(t, report.Monthly)
	assert.Empty(t, report.ByActivity)
}
