package records

import (
	"slices"

	"github.com/hongminglow/civic-tracker/internal/models"
)

// Tasks returns every directorate task.
func (s *Store) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

// Task returns the task with id.
func (s *Store) Task(id int64) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Task{}, ErrNotFound
}

// CompleteTask marks the task completed. Completing a completed task is a no-op.
func (s *Store) CompleteTask(id int64) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.IndexFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
	if idx < 0 {
		return models.Task{}, ErrNotFound
	}
	s.tasks[idx].Status = models.TaskCompleted
	return s.tasks[idx], nil
}
