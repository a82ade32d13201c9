package records

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/hongminglow/civic-tracker/internal/models"
	"github.com/hongminglow/civic-tracker/internal/models/dto"
)

// Events returns the events whose requestor, activity or address contains
// search, case-insensitively.
func (s *Store) Events(search string) []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	term := strings.ToLower(search)
	out := make([]models.Event, 0, len(s.events))
	for _, e := range s.events {
		if term == "" ||
			strings.Contains(strings.ToLower(e.RequestorName), term) ||
			strings.Contains(strings.ToLower(e.ActivityName), term) ||
			strings.Contains(strings.ToLower(e.Address), term) {
			out = append(out, cloneEvent(e))
		}
	}
	return out
}

// Event returns the event with id.
func (s *Store) Event(id int64) (models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.events {
		if e.ID == id {
			return cloneEvent(e), nil
		}
	}
	return models.Event{}, ErrNotFound
}

// CreateEvent validates req and schedules a new event.
func (s *Store) CreateEvent(req dto.CreateEventRequest) (models.Event, error) {
	if err := validateEvent(req); err != nil {
		return models.Event{}, err
	}
	date := req.Date
	if req.Time != "" {
		date = withClock(date, req.Time)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e := models.Event{
		ID:             nextID(s.events, func(e models.Event) int64 { return e.ID }),
		RequestorName:  strings.TrimSpace(req.RequestorName),
		ActivityName:   strings.TrimSpace(req.ActivityName),
		Address:        strings.TrimSpace(req.Address),
		Date:           date,
		Attendees:      slices.Clone(req.Attendees),
		AdditionalInfo: req.AdditionalInfo,
	}
	s.events = append(s.events, e)
	return cloneEvent(e), nil
}

// DeleteEvent removes the event with id.
func (s *Store) DeleteEvent(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.IndexFunc(s.events, func(e models.Event) bool { return e.ID == id })
	if idx < 0 {
		return ErrNotFound
	}
	s.events = slices.Delete(s.events, idx, idx+1)
	return nil
}

func validateEvent(req dto.CreateEventRequest) error {
	if utf8.RuneCountInString(strings.TrimSpace(req.RequestorName)) < 2 {
		return fmt.Errorf("%w: requestor name is required", ErrInvalid)
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.ActivityName)) < 2 {
		return fmt.Errorf("%w: activity name is required", ErrInvalid)
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.Address)) < 5 {
		return fmt.Errorf("%w: address must be at least 5 characters", ErrInvalid)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalid)
	}
	if req.Time != "" && !clockPattern.MatchString(req.Time) {
		return fmt.Errorf("%w: time must be HH:MM", ErrInvalid)
	}
	if len(req.Attendees) == 0 {
		return fmt.Errorf("%w: at least one attendee is required", ErrInvalid)
	}
	return nil
}

func cloneEvent(e models.Event) models.Event {
	e.Attendees = slices.Clone(e.Attendees)
	return e
}
