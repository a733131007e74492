package selection

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"smart-todo-client/internal/model"
	"smart-todo-client/internal/task/repository"
)

// BulkDelete deletes every id. The error is nil or the result's *BulkError.
func (m *Manager) BulkDelete(ctx context.Context, ids []int64) (BulkResult, error) {
	res := m.run(ctx, OpDelete, ids, func(ctx context.Context, id int64) (*model.Task, error) {
		return nil, m.gw.DeleteTask(ctx, id)
	})
	return res, res.Err()
}

// BulkSetCompletion sets completed to value on every id.
func (m *Manager) BulkSetCompletion(ctx context.Context, ids []int64, value bool) (BulkResult, error) {
	res := m.run(ctx, OpSetCompletion, ids, m.patch(model.TaskPatch{Completed: &value}))
	return res, res.Err()
}

// BulkSetPriority sets priority on every id. An out-of-range value fails before any call.
func (m *Manager) BulkSetPriority(ctx context.Context, ids []int64, value model.Priority) (BulkResult, error) {
	if !value.Valid() {
		return BulkResult{Op: OpSetPriority}, fmt.Errorf("%w: priority %d out of range 1..4",
			repository.ErrValidation, value)
	}
	res := m.run(ctx, OpSetPriority, ids, m.patch(model.TaskPatch{Priority: &value}))
	return res, res.Err()
}

// BulkSetCategory sets category on every id. An unknown category fails before any call.
func (m *Manager) BulkSetCategory(ctx context.Context, ids []int64, value model.Category) (BulkResult, error) {
	if !value.Valid() {
		return BulkResult{Op: OpSetCategory}, fmt.Errorf("%w: unknown category %q", repository.ErrValidation, value)
	}
	res := m.run(ctx, OpSetCategory, ids, m.patch(model.TaskPatch{Category: &value}))
	return res, res.Err()
}

func (m *Manager) patch(p model.TaskPatch) mutation {
	return func(ctx context.Context, id int64) (*model.Task, error) {
		t, err := m.gw.UpdateTask(ctx, id, p)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
}

// mutation performs one member call; update-style ops return the updated task.
type mutation func(ctx context.Context, id int64) (*model.Task, error)

type outcome struct {
	task *model.Task
	err  error
}

// run dispatches one call per distinct id and waits for all of them.
// Members never cancel each other and the caller cannot cancel them once dispatched.
func (m *Manager) run(ctx context.Context, op Op, ids []int64, fn mutation) BulkResult {
	ids = distinct(ids)
	res := BulkResult{Op: op, Succeeded: []int64{}, Failed: []int64{}, Errors: map[int64]error{}}
	if len(ids) == 0 {
		return res
	}

	callCtx := context.WithoutCancel(ctx)
	outcomes := make([]outcome, len(ids))

	var g errgroup.Group
	g.SetLimit(m.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			t, err := fn(callCtx, id)
			outcomes[i] = outcome{task: t, err: err}
			return nil
		})
	}
	_ = g.Wait()

	for i, id := range ids {
		o := outcomes[i]
		if o.err != nil {
			res.Failed = append(res.Failed, id)
			res.Errors[id] = o.err
			continue
		}
		res.Succeeded = append(res.Succeeded, id)
		if op == OpDelete {
			m.store.Remove(id)
		} else if o.task != nil {
			m.store.Upsert(*o.task)
		}
	}
	m.settle(res)

	m.metrics.ObserveBulk(string(op), len(res.Succeeded), len(res.Failed))
	if len(res.Failed) > 0 {
		m.l.Warnf(ctx, "selection.run.%s: %d of %d failed: %v", op, len(res.Failed), len(ids), res.Err())
	} else {
		m.l.Infof(ctx, "selection.run.%s: %d succeeded", op, len(res.Succeeded))
	}
	return res
}

func distinct(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
