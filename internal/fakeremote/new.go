// Package fakeremote is an in-memory implementation of the remote task service,
// used by the serve command in development and by end-to-end tests.
package fakeremote

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"smart-todo-client/internal/middleware"
	"smart-todo-client/internal/model"
	"smart-todo-client/pkg/datemath"
	pkgLog "smart-todo-client/pkg/log"
)

// HealthMessage is the message reported by the health endpoint.
const HealthMessage = "Smart ToDo API is running!"

// Service holds the tasks and the parse engine behind the fake endpoints.
type Service struct {
	l      pkgLog.Logger
	now    func() time.Time
	parser *TaskParser

	mu     sync.Mutex
	tasks  map[int64]model.Task
	nextID int64
	faults map[fault]int
}

type fault struct {
	op string
	id int64
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l pkgLog.Logger) Option {
	return func(s *Service) { s.l = l }
}

// WithClock replaces time.Now for timestamps, overdue checks and date parsing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates an empty Service that resolves parsed dates in timezone.
func New(timezone string, opts ...Option) (*Service, error) {
	dates, err := datemath.NewParser(timezone)
	if err != nil {
		return nil, err
	}

	s := &Service{
		l:      pkgLog.NewNop(),
		now:    time.Now,
		parser: NewTaskParser(dates),
		tasks:  map[int64]model.Task{},
		faults: map[fault]int{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Seed stores tasks as given. Zero timestamps are stamped with the current time.
func (s *Service) Seed(tasks ...model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	for _, t := range tasks {
		if t.ID == 0 {
			s.nextID++
			t.ID = s.nextID
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
		if t.UpdatedAt.IsZero() {
			t.UpdatedAt = t.CreatedAt
		}
		s.tasks[t.ID] = t
		s.nextID = max(s.nextID, t.ID)
	}
}

// Fail makes op answer status. op uses the gateway operation names ("DeleteTask", "ListTasks", ...);
// id zero matches operations that target no task. A status of zero removes the fault.
func (s *Service) Fail(op string, id int64, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.faults, fault{op, id})
		return
	}
	s.faults[fault{op, id}] = status
}

// Len returns the number of stored tasks.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Handler returns a gin engine serving the remote contract under /api.
func (s *Service) Handler() http.Handler {
	engine := gin.New()
	engine.Use(middleware.New(s.l).Recovery())
	engine.RedirectTrailingSlash = false
	RegisterRoutes(engine.Group("/api"), s)
	return engine
}
