package repository

import (
	"context"

	"smart-todo-client/internal/model"
)

// Gateway is the single choke point for every call to the remote task/NLP service.
// Implementations apply a bounded timeout to each call and never retry.
type Gateway interface {
	// ListTasks returns the server-filtered, server-ordered task list. An empty list is not an error.
	ListTasks(ctx context.Context, filters model.Filters) ([]model.Task, error)
	// CreateTask fails with ErrValidation when the draft title is blank.
	CreateTask(ctx context.Context, draft model.TaskDraft) (model.Task, error)
	// UpdateTask fails with ErrNotFound when id no longer exists.
	UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) (model.Task, error)
	// DeleteTask fails with ErrNotFound when id no longer exists.
	DeleteTask(ctx context.Context, id int64) error
	ToggleCompletion(ctx context.Context, id int64) (model.Task, error)
	FetchStats(ctx context.Context) (model.Stats, error)
	// InterpretText fails with ErrInterpretationFailed for empty or unparseable input.
	InterpretText(ctx context.Context, text string) (model.Interpretation, error)
	// Health is liveness only; the orchestration core never depends on it.
	Health(ctx context.Context) (model.Health, error)
}
