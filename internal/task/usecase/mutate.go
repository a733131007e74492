package usecase

import (
	"context"
	"errors"

	"smart-todo-client/internal/model"
	"smart-todo-client/internal/task"
	"smart-todo-client/internal/task/repository"
)

func (uc *implUseCase) CreateTask(ctx context.Context, draft model.TaskDraft) (model.Task, error) {
	created, err := uc.gw.CreateTask(ctx, draft)
	if err != nil {
		uc.l.Warnf(ctx, "usecase.CreateTask.CreateTask: %v", err)
		return model.Task{}, err
	}
	uc.refresh.ApplyTask(created)
	uc.l.Infof(ctx, "usecase.CreateTask: created task %d %q", created.ID, created.Title)

	uc.tryCreateCalendarEvent(ctx, created)
	return created, nil
}

func (uc *implUseCase) EditTask(ctx context.Context, id int64, patch model.TaskPatch) (model.Task, error) {
	if patch.Empty() {
		return model.Task{}, task.ErrEmptyPatch
	}

	updated, err := uc.gw.UpdateTask(ctx, id, patch)
	if err != nil {
		uc.forgetIfNotFound(ctx, id, err)
		return model.Task{}, err
	}
	uc.refresh.ApplyTask(updated)
	return updated, nil
}

func (uc *implUseCase) ToggleCompletion(ctx context.Context, id int64) (model.Task, error) {
	updated, err := uc.gw.ToggleCompletion(ctx, id)
	if err != nil {
		uc.forgetIfNotFound(ctx, id, err)
		return model.Task{}, err
	}
	uc.refresh.ApplyTask(updated)
	return updated, nil
}

// DeleteTask deletes one task. The store and selection drop the id before the follow-up refresh;
// a failed refresh is logged and leaves that local state in place.
func (uc *implUseCase) DeleteTask(ctx context.Context, id int64) error {
	if err := uc.gw.DeleteTask(ctx, id); err != nil {
		uc.forgetIfNotFound(ctx, id, err)
		return err
	}

	if err := uc.refresh.ApplyRemoval(ctx, id); err != nil {
		uc.l.Warnf(ctx, "usecase.DeleteTask.ApplyRemoval: refresh after deleting %d failed: %v", id, err)
	}
	uc.tryDeleteCalendarEvents(ctx, []int64{id})
	return nil
}

// forgetIfNotFound drops id from the store (and so from the selection) when the remote side no longer has it.
func (uc *implUseCase) forgetIfNotFound(ctx context.Context, id int64, err error) {
	uc.l.Warnf(ctx, "usecase: task %d: %v", id, err)
	if errors.Is(err, repository.ErrNotFound) {
		uc.store.Remove(id)
	}
}
