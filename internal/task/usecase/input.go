package usecase

import (
	"context"

	"smart-todo-client/internal/model"
	"smart-todo-client/internal/task"
	"smart-todo-client/internal/task/interpret"
)

// SubmitText feeds a keystroke to the debounced interpretation controller.
func (uc *implUseCase) SubmitText(text string) {
	uc.interp.SetText(text)
}

func (uc *implUseCase) ClearInput() {
	uc.interp.Clear()
}

// AcceptInterpretation creates a task from the ready interpretation and resets the input.
func (uc *implUseCase) AcceptInterpretation(ctx context.Context) (model.Task, error) {
	res, err := uc.interp.Accept()
	if err != nil {
		return model.Task{}, err
	}
	return uc.CreateTask(ctx, res.Parsed)
}

// AcceptInterpretationForEdit applies the ready interpretation to task id. Non-empty parsed fields win.
func (uc *implUseCase) AcceptInterpretationForEdit(ctx context.Context, id int64) (model.Task, error) {
	current, ok := uc.store.Get(id)
	if !ok {
		return model.Task{}, task.ErrTaskNotFound
	}

	res, err := uc.interp.Accept()
	if err != nil {
		return model.Task{}, err
	}

	patch := interpret.MergeIntoPatch(current, res)
	if patch.Empty() {
		uc.l.Debugf(ctx, "usecase.AcceptInterpretationForEdit: task %d already matches", id)
		return current, nil
	}
	return uc.EditTask(ctx, id, patch)
}
