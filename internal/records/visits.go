package records

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hongminglow/civic-tracker/internal/models"
	"github.com/hongminglow/civic-tracker/internal/models/dto"
)

// Visits returns the visits whose citizen name, description or reason
// contains search, case-insensitively. An empty search returns all visits.
func (s *Store) Visits(search string) []models.Visit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	term := strings.ToLower(search)
	out := make([]models.Visit, 0, len(s.visits))
	for _, v := range s.visits {
		if term == "" ||
			strings.Contains(strings.ToLower(v.CitizenName), term) ||
			strings.Contains(strings.ToLower(v.Description), term) ||
			strings.Contains(strings.ToLower(v.ReasonCategory), term) {
			out = append(out, v)
		}
	}
	return out
}

// Visit returns the visit with id.
func (s *Store) Visit(id int64) (models.Visit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.visits {
		if v.ID == id {
			return v, nil
		}
	}
	return models.Visit{}, ErrNotFound
}

// CreateVisit validates req and records a new visit.
func (s *Store) CreateVisit(req dto.CreateVisitRequest) (models.Visit, error) {
	if err := validateVisit(req); err != nil {
		return models.Visit{}, err
	}
	date := req.Date
	if date.IsZero() {
		date = s.now()
	}
	if req.Time != "" {
		date = withClock(date, req.Time)
	}
	status := req.Status
	if status == "" {
		status = models.VisitOpen
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	v := models.Visit{
		ID:             nextID(s.visits, func(v models.Visit) int64 { return v.ID }),
		CitizenName:    strings.TrimSpace(req.CitizenName),
		Date:           date,
		ReasonCategory: req.ReasonCategory,
		Description:    strings.TrimSpace(req.Description),
		DepartmentID:   req.DepartmentID,
		Status:         status,
	}
	s.visits = append(s.visits, v)
	return v, nil
}

func validateVisit(req dto.CreateVisitRequest) error {
	if utf8.RuneCountInString(strings.TrimSpace(req.CitizenName)) < 2 {
		return fmt.Errorf("%w: citizen name is required", ErrInvalid)
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.Description)) < 5 {
		return fmt.Errorf("%w: description must be at least 5 characters", ErrInvalid)
	}
	if !slices.Contains(models.VisitReasons, req.ReasonCategory) {
		return fmt.Errorf("%w: unknown reason category %q", ErrInvalid, req.ReasonCategory)
	}
	if !knownDepartment(req.DepartmentID) {
		return fmt.Errorf("%w: unknown department %q", ErrInvalid, req.DepartmentID)
	}
	if req.Status != "" && !slices.Contains(models.VisitStatuses, req.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, req.Status)
	}
	if req.Time != "" && !clockPattern.MatchString(req.Time) {
		return fmt.Errorf("%w: time must be HH:MM", ErrInvalid)
	}
	return nil
}

func knownDepartment(id string) bool {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return false
	}
	for _, d := range models.Departments() {
		if d.ID == n {
			return true
		}
	}
	return false
}

// ForwardVisit hands the visit over to a directorate and opens a task for it.
func (s *Store) ForwardVisit(id int64, directorate string) (models.Visit, models.Task, error) {
	if _, ok := s.directorates.DirectorateByName(directorate); !ok {
		return models.Visit{}, models.Task{}, fmt.Errorf("%w: unknown directorate %q", ErrInvalid, directorate)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.IndexFunc(s.visits, func(v models.Visit) bool { return v.ID == id })
	if idx < 0 {
		return models.Visit{}, models.Task{}, ErrNotFound
	}
	visit := s.visits[idx]
	if visit.ForwardedTo == directorate {
		return models.Visit{}, models.Task{}, fmt.Errorf("%w: visit %d is already forwarded to %s", ErrInvalid, id, directorate)
	}

	visit.ForwardedTo = directorate
	s.visits[idx] = visit
	task := models.Task{
		ID:          nextID(s.tasks, func(t models.Task) int64 { return t.ID }),
		VisitID:     visit.ID,
		CitizenName: visit.CitizenName,
		Description: visit.Description,
		Date:        s.now(),
		Status:      models.TaskPending,
		ForwardedTo: directorate,
	}
	s.tasks = append(s.tasks, task)
	return visit, task, nil
}
