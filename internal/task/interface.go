package task

import (
	"context"

	"smart-todo-client/internal/model"
	"smart-todo-client/internal/task/interpret"
	"smart-todo-client/internal/task/selection"
)

// UseCase is the orchestration surface the presentation layer drives.
type UseCase interface {
	// Reactive reads. Subscribers are told which topic changed and re-read the snapshot.
	View(filters model.Filters) []model.Task
	Stats() model.Stats
	Interpretation() interpret.State
	Selection() selection.State
	Subscribe() (<-chan Event, func())

	// Collection
	Load(ctx context.Context) error
	Refresh(ctx context.Context) error
	ListRemote(ctx context.Context, filters model.Filters) ([]model.Task, error)
	Health(ctx context.Context) (model.Health, error)

	// Free-text input
	SubmitText(text string)
	ClearInput()
	AcceptInterpretation(ctx context.Context) (model.Task, error)
	AcceptInterpretationForEdit(ctx context.Context, id int64) (model.Task, error)

	// Single-task mutations
	CreateTask(ctx context.Context, draft model.TaskDraft) (model.Task, error)
	EditTask(ctx context.Context, id int64, patch model.TaskPatch) (model.Task, error)
	ToggleCompletion(ctx context.Context, id int64) (model.Task, error)
	DeleteTask(ctx context.Context, id int64) error

	// Selection
	Select(id int64) error
	Deselect(id int64)
	ToggleSelect(id int64) error
	SelectAll(filters model.Filters)
	ClearSelection()
	DeletePrompt(ids []int64) string

	// Bulk mutations. Empty ids targets the current selection.
	BulkDelete(ctx context.Context, ids []int64) (selection.BulkResult, error)
	BulkSetCompletion(ctx context.Context, ids []int64, value bool) (selection.BulkResult, error)
	BulkSetPriority(ctx context.Context, ids []int64, value model.Priority) (selection.BulkResult, error)
	BulkSetCategory(ctx context.Context, ids []int64, value model.Category) (selection.BulkResult, error)

	// Close stops the input controller and ends every subscription.
	Close()
}
