// Package reports aggregates visits and events for the admin report views.
package reports

import (
	"sort"
	"strconv"
	"time"

	"github.com/hongminglow/civic-tracker/internal/models"
)

// Range bounds a report by date, inclusive. Zero ends are unbounded.
type Range struct {
	From time.Time
	To   time.Time
}

func (r Range) contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

type MonthlyVisits struct {
	Month    string `json:"month"`
	Visits   int    `json:"visits"`
	Resolved int    `json:"resolved"`
}

type DepartmentPerformance struct {
	Department string `json:"department"`
	Resolved   int    `json:"resolved"`
	Pending    int    `json:"pending"`
}

type VisitReport struct {
	Monthly      []MonthlyVisits         `json:"monthly"`
	Departments  []DepartmentPerformance `json:"departments"`
	TotalVisits  int                     `json:"totalVisits"`
	ResolvedRate float64                 `json:"resolvedRate"`
}

type MonthlyEvents struct {
	Month     string `json:"month"`
	Events    int    `json:"events"`
	Attendees int    `json:"attendees"`
}

type NamedCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type EventReport struct {
	Monthly     []MonthlyEvents `json:"monthly"`
	ByActivity  []NamedCount    `json:"byActivity"`
	Attendance  []NamedCount    `json:"attendance"`
	TotalEvents int             `json:"totalEvents"`
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// Visits builds the visit report for visits inside r.
func Visits(visits []models.Visit, r Range) VisitReport {
	monthly := map[string]*MonthlyVisits{}
	perDept := map[string]*DepartmentPerformance{}
	departments := map[string]string{}
	for _, d := range models.Departments() {
		id := strconv.FormatInt(d.ID, 10)
		departments[id] = d.Name
		perDept[id] = &DepartmentPerformance{Department: d.Name}
	}

	var report VisitReport
	resolved := 0
	for _, v := range visits {
		if !r.contains(v.Date) {
			continue
		}
		report.TotalVisits++
		key := monthKey(v.Date)
		m, ok := monthly[key]
		if !ok {
			m = &MonthlyVisits{Month: key}
			monthly[key] = m
		}
		m.Visits++

		dept, ok := perDept[v.DepartmentID]
		if !ok {
			dept = &DepartmentPerformance{Department: v.DepartmentID}
			perDept[v.DepartmentID] = dept
		}
		switch v.Status {
		case models.VisitCompleted:
			m.Resolved++
			dept.Resolved++
			resolved++
		case models.VisitOpen, models.VisitInProgress:
			dept.Pending++
		}
	}
	if report.TotalVisits > 0 {
		report.ResolvedRate = float64(resolved) / float64(report.TotalVisits)
	}

	for _, m := range monthly {
		report.Monthly = append(report.Monthly, *m)
	}
	sort.Slice(report.Monthly, func(i, j int) bool { return report.Monthly[i].Month < report.Monthly[j].Month })

	for _, d := range models.Departments() {
		report.Departments = append(report.Departments, *perDept[strconv.FormatInt(d.ID, 10)])
	}
	var unknown []string
	for id := range perDept {
		if _, ok := departments[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	sort.Strings(unknown)
	for _, id := range unknown {
		report.Departments = append(report.Departments, *perDept[id])
	}
	return report
}

// Events builds the event report for events inside r.
func Events(events []models.Event, r Range) EventReport {
	monthly := map[string]*MonthlyEvents{}
	activity := map[string]int{}
	attendance := map[string]int{}

	var report EventReport
	for _, e := range events {
		if !r.contains(e.Date) {
			continue
		}
		report.TotalEvents++
		key := monthKey(e.Date)
		m, ok := monthly[key]
		if !ok {
			m = &MonthlyEvents{Month: key}
			monthly[key] = m
		}
		m.Events++
		m.Attendees += len(e.Attendees)
		activity[e.ActivityName]++
		for _, a := range e.Attendees {
			attendance[a]++
		}
	}

	for _, m := range monthly {
		report.Monthly = append(report.Monthly, *m)
	}
	sort.Slice(report.Monthly, func(i, j int) bool { return report.Monthly[i].Month < report.Monthly[j].Month })
	report.ByActivity = sortedCounts(activity)
	report.Attendance = sortedCounts(attendance)
	return report
}

// sortedCounts orders by value descending, then name.
func sortedCounts(counts map[string]int) []NamedCount {
	out := make([]NamedCount, 0, len(counts))
	for name, v := range counts {
		out = append(out, NamedCount{Name: name, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}
