// Package memstore holds the task collection in process memory.
// Nothing is written anywhere; the collection dies with the process.
package memstore

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/idilsaglam/tasks/internal/model"
)

var (
	ErrNotFound      = errors.New("task not found")
	ErrDuplicate     = errors.New("duplicate task id")
	ErrInvalidStatus = errors.New("invalid task status")
)

// Store is the ordered task collection, newest first.
// It is not safe for concurrent use.
type Store struct {
	tasks  []model.Task
	issued map[string]struct{}
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(opts ...Option) *Store {
	s := &Store{
		issued: map[string]struct{}{},
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Create prepends a pending task and returns it.
func (s *Store) Create(title, description string) model.Task {
	now := s.now()
	t := model.Task{
		ID:          s.nextID(now),
		Title:       title,
		Description: description,
		Status:      model.StatusPending,
		CreatedAt:   now,
	}
	s.tasks = append([]model.Task{t}, s.tasks...)
	return t
}

// Insert appends an existing task, keeping the caller's order. Used to load
// seed data. An empty ID is generated from CreatedAt (or the clock).
func (s *Store) Insert(t model.Task) (model.Task, error) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now()
	}
	if t.Status == "" {
		t.Status = model.StatusPending
	}
	if !t.Status.Valid() {
		return model.Task{}, fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if t.ID == "" {
		t.ID = s.nextID(t.CreatedAt)
	} else {
		if _, dup := s.issued[t.ID]; dup {
			return model.Task{}, fmt.Errorf("%w: %s", ErrDuplicate, t.ID)
		}
		s.issued[t.ID] = struct{}{}
	}
	s.tasks = append(s.tasks, t)
	return t, nil
}

// All returns a copy of the collection in display order.
func (s *Store) All() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Len() int { return len(s.tasks) }

func (s *Store) Get(id string) (model.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

// Toggle flips the status of the task with the given id.
func (s *Store) Toggle(id string) (model.Task, error) {
	i := s.index(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.tasks[i].Status = s.tasks[i].Status.Toggle()
	return s.tasks[i], nil
}

// Delete removes the task with the given id and returns it.
func (s *Store) Delete(id string) (model.Task, error) {
	i := s.index(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	t := s.tasks[i]
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return t, nil
}

func (s *Store) index(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// nextID derives an id from the timestamp in milliseconds. Ids are never
// reused, including those of deleted tasks, so a collision bumps the value.
func (s *Store) nextID(at time.Time) string {
	n := at.UnixMilli()
	for {
		id := strconv.FormatInt(n, 10)
		if _, taken := s.issued[id]; !taken {
			s.issued[id] = struct{}{}
			return id
		}
		n++
	}
}
