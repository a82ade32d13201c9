// Package records keeps the dashboard's working data (visits, events,
// directorate tasks and settings) in memory, seeded with sample data.
package records

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hongminglow/civic-tracker/internal/models"
)

var (
	// ErrNotFound indicates a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("invalid record")
)

var clockPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// DirectorateLookup resolves a directorate by exact name.
type DirectorateLookup interface {
	DirectorateByName(name string) (models.Directorate, bool)
}

// Store guards all records with a single lock.
type Store struct {
	directorates DirectorateLookup
	now          func() time.Time

	mu       sync.RWMutex
	visits   []models.Visit
	events   []models.Event
	tasks    []models.Task
	settings models.Settings
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for defaults and task dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithoutSeed starts the store empty.
func WithoutSeed() Option {
	return func(s *Store) {
		s.visits = nil
		s.events = nil
		s.tasks = nil
	}
}

// NewStore returns a store holding the sample data.
func NewStore(directorates DirectorateLookup, opts ...Option) *Store {
	s := &Store{
		directorates: directorates,
		now:          time.Now,
		visits:       seedVisits(),
		events:       seedEvents(),
		tasks:        seedTasks(),
		settings:     models.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// withClock sets the hour and minute of day from a validated "HH:MM" string.
func withClock(day time.Time, clock string) time.Time {
	hh, mm, _ := strings.Cut(clock, ":")
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location())
}

func nextID[T any](items []T, id func(T) int64) int64 {
	var highest int64
	for _, item := range items {
		if v := id(item); v > highest {
			highest = v
		}
	}
	return highest + 1
}
