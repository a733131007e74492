package interpret

import (
	"strings"

	"smart-todo-client/internal/model"
)

// MergeIntoPatch turns an interpretation into an edit of task. Non-empty parsed fields replace the task's
// values; empty ones keep them. Fields equal to the task's current value are left out of the patch.
func MergeIntoPatch(task model.Task, interp model.Interpretation) model.TaskPatch {
	var patch model.TaskPatch
	parsed := interp.Parsed

	if title := strings.TrimSpace(parsed.Title); title != "" && title != task.Title {
		patch.Title = &title
	}
	if parsed.Description != "" && parsed.Description != task.Description {
		desc := parsed.Description
		patch.Description = &desc
	}
	if parsed.Due != nil && (task.Due == nil || !parsed.Due.Equal(*task.Due)) {
		due := parsed.Due.UTC()
		patch.Due = &due
	}
	if parsed.Priority.Valid() && parsed.Priority != task.Priority {
		p := parsed.Priority
		patch.Priority = &p
	}
	if parsed.Category.Valid() && parsed.Category != task.Category {
		c := parsed.Category
		patch.Category = &c
	}
	return patch
}
