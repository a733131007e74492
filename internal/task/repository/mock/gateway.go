// Package mock provides an in-memory repository.Gateway for tests.
package mock

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"smart-todo-client/internal/model"
	"smart-todo-client/internal/task/repository"
)

var _ repository.Gateway = (*Gateway)(nil)

// Gateway is an in-memory repository.Gateway with per-call fault injection.
type Gateway struct {
	// BeforeCall, when set, runs first in every call. A non-nil error fails the call.
	BeforeCall func(ctx context.Context, op string, id int64) error
	// Now stamps created/updated times; time.Now when nil.
	Now func() time.Time

	mu     sync.Mutex
	tasks  map[int64]model.Task
	nextID int64
	fail   map[string]map[int64]error
	calls  map[string]int
	interp map[string]model.Interpretation
}

// New creates an empty Gateway seeded with tasks.
func New(tasks ...model.Task) *Gateway {
	g := &Gateway{
		tasks:  map[int64]model.Task{},
		fail:   map[string]map[int64]error{},
		calls:  map[string]int{},
		interp: map[string]model.Interpretation{},
	}
	g.Seed(tasks...)
	return g
}

// Seed stores tasks as-is.
func (g *Gateway) Seed(tasks ...model.Task) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, t := range tasks {
		g.tasks[t.ID] = t
		g.nextID = max(g.nextID, t.ID)
	}
}

// Fail makes every call of op on id return err. id zero matches calls that target no task.
func (g *Gateway) Fail(op string, id int64, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail[op] == nil {
		g.fail[op] = map[int64]error{}
	}
	g.fail[op][id] = err
}

// SetInterpretation fixes the result returned for text.
func (g *Gateway) SetInterpretation(text string, res model.Interpretation) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.interp[text] = res
}

// Calls returns how many times op was invoked.
func (g *Gateway) Calls(op string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[op]
}

// Task returns the stored task.
func (g *Gateway) Task(id int64) (model.Task, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	t, ok := g.tasks[id]
	return t, ok
}

// Kind wraps kind the way the HTTP gateway does.
func Kind(op string, id int64, kind error) error {
	return &repository.GatewayError{Op: op, TaskID: id, Kind: kind}
}

func (g *Gateway) enter(ctx context.Context, op string, id int64) error {
	g.mu.Lock()
	g.calls[op]++
	hook := g.BeforeCall
	err := g.fail[op][id]
	g.mu.Unlock()

	if hook != nil {
		if herr := hook(ctx, op, id); herr != nil {
			return herr
		}
	}
	return err
}

func (g *Gateway) now() time.Time {
	if g.Now != nil {
		return g.Now().UTC()
	}
	return time.Now().UTC()
}

// sortedLocked lists tasks in the remote service's order.
func (g *Gateway) sortedLocked() []model.Task {
	out := make([]model.Task, 0, len(g.tasks))
	for _, t := range g.tasks {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b model.Task) int {
		if a.Priority != b.Priority {
			return int(b.Priority) - int(a.Priority)
		}
		return int(a.ID - b.ID)
	})
	return out
}

func (g *Gateway) ListTasks(ctx context.Context, filters model.Filters) ([]model.Task, error) {
	if err := g.enter(ctx, "ListTasks", 0); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []model.Task
	for _, t := range g.sortedLocked() {
		if filters.Match(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (g *Gateway) CreateTask(ctx context.Context, draft model.TaskDraft) (model.Task, error) {
	if err := g.enter(ctx, "CreateTask", 0); err != nil {
		return model.Task{}, err
	}
	if strings.TrimSpace(draft.Title) == "" {
		return model.Task{}, Kind("CreateTask", 0, repository.ErrValidation)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextID++
	now := g.now()
	t := model.Task{
		ID:          g.nextID,
		Title:       strings.TrimSpace(draft.Title),
		Description: draft.Description,
		Due:         draft.Due,
		Priority:    draft.Priority,
		Category:    draft.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if !t.Priority.Valid() {
		t.Priority = model.DefaultPriority
	}
	if t.Category == "" {
		t.Category = model.CategoryOther
	}
	g.tasks[t.ID] = t
	return t, nil
}

func (g *Gateway) UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) (model.Task, error) {
	if err := g.enter(ctx, "UpdateTask", id); err != nil {
		return model.Task{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	t, ok := g.tasks[id]
	if !ok {
		return model.Task{}, Kind("UpdateTask", id, repository.ErrNotFound)
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.ClearDue {
		t.Due = nil
	} else if patch.Due != nil {
		t.Due = patch.Due
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Category != nil {
		t.Category = *patch.Category
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	t.UpdatedAt = g.now()
	g.tasks[id] = t
	return t, nil
}

func (g *Gateway) DeleteTask(ctx context.Context, id int64) error {
	if err := g.enter(ctx, "DeleteTask", id); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.tasks[id]; !ok {
		return Kind("DeleteTask", id, repository.ErrNotFound)
	}
	delete(g.tasks, id)
	return nil
}

func (g *Gateway) ToggleCompletion(ctx context.Context, id int64) (model.Task, error) {
	if err := g.enter(ctx, "ToggleCompletion", id); err != nil {
		return model.Task{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	t, ok := g.tasks[id]
	if !ok {
		return model.Task{}, Kind("ToggleCompletion", id, repository.ErrNotFound)
	}
	t.Completed = !t.Completed
	t.UpdatedAt = g.now()
	g.tasks[id] = t
	return t, nil
}

func (g *Gateway) FetchStats(ctx context.Context) (model.Stats, error) {
	if err := g.enter(ctx, "FetchStats", 0); err != nil {
		return model.Stats{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return model.ComputeStats(g.sortedLocked()), nil
}

func (g *Gateway) InterpretText(ctx context.Context, text string) (model.Interpretation, error) {
	if err := g.enter(ctx, "InterpretText", 0); err != nil {
		return model.Interpretation{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if res, ok := g.interp[text]; ok {
		return res, nil
	}
	if strings.TrimSpace(text) == "" {
		return model.Interpretation{}, Kind("InterpretText", 0, repository.ErrInterpretationFailed)
	}
	draft := model.TaskDraft{Title: strings.TrimSpace(text), Priority: model.DefaultPriority,
		Category: model.CategoryOther}
	return model.Interpretation{Text: text, Parsed: draft, Preview: draft}, nil
}

func (g *Gateway) Health(ctx context.Context) (model.Health, error) {
	if err := g.enter(ctx, "Health", 0); err != nil {
		return model.Health{}, err
	}
	return model.Health{Status: "healthy", Database: "connected", Message: "mock"}, nil
}
