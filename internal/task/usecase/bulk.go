package usecase

import (
	"context"

	"smart-todo-client/internal/model"
	"smart-todo-client/internal/task"
	"smart-todo-client/internal/task/selection"
)

func (uc *implUseCase) BulkDelete(ctx context.Context, ids []int64) (selection.BulkResult, error) {
	return uc.bulk(ctx, ids, func(ids []int64) (selection.BulkResult, error) {
		res, err := uc.selection.BulkDelete(ctx, ids)
		uc.tryDeleteCalendarEvents(ctx, res.Succeeded)
		return res, err
	})
}

func (uc *implUseCase) BulkSetCompletion(ctx context.Context, ids []int64, value bool) (selection.BulkResult, error) {
	return uc.bulk(ctx, ids, func(ids []int64) (selection.BulkResult, error) {
		return uc.selection.BulkSetCompletion(ctx, ids, value)
	})
}

func (uc *implUseCase) BulkSetPriority(ctx context.Context, ids []int64, value model.Priority) (selection.BulkResult, error) {
	return uc.bulk(ctx, ids, func(ids []int64) (selection.BulkResult, error) {
		return uc.selection.BulkSetPriority(ctx, ids, value)
	})
}

func (uc *implUseCase) BulkSetCategory(ctx context.Context, ids []int64, value model.Category) (selection.BulkResult, error) {
	return uc.bulk(ctx, ids, func(ids []int64) (selection.BulkResult, error) {
		return uc.selection.BulkSetCategory(ctx, ids, value)
	})
}

// bulk resolves the target ids, runs op and reconciles the store with one refresh.
func (uc *implUseCase) bulk(ctx context.Context, ids []int64,
	op func(ids []int64) (selection.BulkResult, error)) (selection.BulkResult, error) {
	if len(ids) == 0 {
		ids = uc.selection.State().IDs
	}
	if len(ids) == 0 {
		return selection.BulkResult{}, task.ErrNoSelection
	}

	res, err := op(ids)
	if len(res.Succeeded)+len(res.Failed) == 0 {
		// Rejected before dispatch.
		return res, err
	}

	if rerr := uc.refresh.Refresh(ctx); rerr != nil {
		uc.l.Warnf(ctx, "usecase.bulk.Refresh: after %s: %v", res.Op, rerr)
	}
	return res, err
}
