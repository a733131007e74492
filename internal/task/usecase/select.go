package usecase

import (
	"smart-todo-client/internal/model"
	"smart-todo-client/internal/task/selection"
)

func (uc *implUseCase) Select(id int64) error {
	return uc.selection.Select(id)
}

func (uc *implUseCase) Deselect(id int64) {
	uc.selection.Deselect(id)
}

func (uc *implUseCase) ToggleSelect(id int64) error {
	return uc.selection.Toggle(id)
}

// SelectAll selects every task currently visible under filters.
func (uc *implUseCase) SelectAll(filters model.Filters) {
	uc.selection.SelectAll(uc.store.IDs(filters))
}

func (uc *implUseCase) ClearSelection() {
	uc.selection.Clear()
}

// DeletePrompt returns the confirmation question for deleting ids, or the current selection when empty.
func (uc *implUseCase) DeletePrompt(ids []int64) string {
	if len(ids) == 0 {
		ids = uc.selection.State().IDs
	}

	titles := make([]string, 0, len(ids))
	for _, id := range ids {
		if t, ok := uc.store.Get(id); ok {
			titles = append(titles, t.Title)
		}
	}
	if len(titles) == 1 {
		return selection.DeletePrompt(titles[0])
	}
	return selection.ConfirmationPrompt(titles)
}
