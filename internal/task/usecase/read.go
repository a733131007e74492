package usecase

import (
	"context"

	"smart-todo-client/internal/model"
	"smart-todo-client/internal/task"
	"smart-todo-client/internal/task/interpret"
	"smart-todo-client/internal/task/selection"
)

func (uc *implUseCase) View(filters model.Filters) []model.Task {
	return uc.store.View(filters)
}

func (uc *implUseCase) Stats() model.Stats {
	return uc.store.Stats()
}

func (uc *implUseCase) Interpretation() interpret.State {
	return uc.interp.State()
}

func (uc *implUseCase) Selection() selection.State {
	return uc.selection.State()
}

// Subscribe returns a channel of change events and a func that ends the subscription.
func (uc *implUseCase) Subscribe() (<-chan task.Event, func()) {
	return uc.events.subscribe()
}

// Load fills the store with the remote task list and stats.
func (uc *implUseCase) Load(ctx context.Context) error {
	if err := uc.refresh.Refresh(ctx); err != nil {
		uc.l.Errorf(ctx, "usecase.Load.Refresh: %v", err)
		return err
	}
	uc.l.Infof(ctx, "usecase.Load: %d tasks", uc.store.Len())
	return nil
}

func (uc *implUseCase) Refresh(ctx context.Context) error {
	return uc.refresh.Refresh(ctx)
}

// ListRemote delegates filtering to the remote service. The store is not touched.
func (uc *implUseCase) ListRemote(ctx context.Context, filters model.Filters) ([]model.Task, error) {
	tasks, err := uc.gw.ListTasks(ctx, filters)
	if err != nil {
		uc.l.Warnf(ctx, "usecase.ListRemote.ListTasks: %v", err)
		return nil, err
	}
	return tasks, nil
}

func (uc *implUseCase) Health(ctx context.Context) (model.Health, error) {
	return uc.gw.Health(ctx)
}
