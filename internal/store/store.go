// Package store owns the authoritative, ordered list of tasks and the only
// operations allowed to change it.
//
// Every mutation builds a complete replacement record, checks it, and then
// swaps it in. A failed call leaves the list exactly as it was.
package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/existflow/taskcal/internal/calendar"
	"github.com/existflow/taskcal/internal/logger"
	"github.com/existflow/taskcal/internal/model"
	"github.com/google/uuid"
)

// Store errors.
var (
	ErrInvariantViolation = errors.New("task invariant violated")
	ErrEmptyName          = fmt.Errorf("%w: task name is empty", ErrInvariantViolation)
	ErrInvalidRange       = fmt.Errorf("%w: start date is after end date", ErrInvariantViolation)
	ErrInvalidCategory    = fmt.Errorf("%w: unknown category", ErrInvariantViolation)
	ErrTaskNotFound       = errors.New("task not found")
)

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the default uuid generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// Store is an in-memory task collection.
type Store struct {
	mu    sync.RWMutex
	tasks []model.Task
	newID func() string
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create appends a new task spanning [start, end].
//
// The name is trimmed before use. A blank name, an unknown category or a
// start after end is rejected with an error wrapping ErrInvariantViolation;
// the dates are never swapped on the caller's behalf.
func (s *Store) Create(name string, category model.Category, start, end time.Time) (model.Task, error) {
	task := model.Task{
		Name:     strings.TrimSpace(name),
		Category: category,
		Start:    calendar.StartOfDay(start),
		End:      calendar.StartOfDay(end),
	}
	if err := validate(task); err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = s.newID()
	s.tasks = append(s.tasks, task)

	logger.Debug("Task created",
		logger.F("id", task.ID),
		logger.F("start", task.Start.Format(calendar.DayLayout)),
		logger.F("end", task.End.Format(calendar.DayLayout)))
	return task, nil
}

// Move shifts a task so it begins on newStart, keeping its length.
func (s *Store) Move(id string, newStart time.Time) error {
	return s.replace(id, func(t model.Task) model.Task {
		span := t.Days()
		t.Start = calendar.StartOfDay(newStart)
		t.End = calendar.AddDays(t.Start, span-1)
		return t
	})
}

// ResizeStart moves the start edge of a task. It does nothing when
// newStart falls after the current end date.
func (s *Store) ResizeStart(id string, newStart time.Time) error {
	return s.replace(id, func(t model.Task) model.Task {
		if calendar.Before(t.End, newStart) {
			return t
		}
		t.Start = calendar.StartOfDay(newStart)
		return t
	})
}

// ResizeEnd moves the end edge of a task. It does nothing when newEnd
// falls before the current start date.
func (s *Store) ResizeEnd(id string, newEnd time.Time) error {
	return s.replace(id, func(t model.Task) model.Task {
		if calendar.Before(newEnd, t.Start) {
			return t
		}
		t.End = calendar.StartOfDay(newEnd)
		return t
	})
}

// replace computes the next version of a task from its current record and
// commits it only if it is valid.
func (s *Store) replace(id string, next func(model.Task) model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	updated := next(s.tasks[i])
	updated.ID = id
	if err := validate(updated); err != nil {
		return err
	}
	if updated == s.tasks[i] {
		return nil
	}
	s.tasks[i] = updated

	logger.Debug("Task updated",
		logger.F("id", id),
		logger.F("start", updated.Start.Format(calendar.DayLayout)),
		logger.F("end", updated.End.Format(calendar.DayLayout)))
	return nil
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func validate(t model.Task) error {
	if t.Name == "" {
		return ErrEmptyName
	}
	if !t.Category.Valid() {
		return ErrInvalidCategory
	}
	if !t.Valid() {
		return fmt.Errorf("%w (%s > %s)", ErrInvalidRange,
			t.Start.Format(calendar.DayLayout), t.End.Format(calendar.DayLayout))
	}
	return nil
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return model.Task{}, false
}

// Tasks returns a snapshot of every task in insertion order.
func (s *Store) Tasks() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}
