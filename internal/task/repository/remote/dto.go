package remote

import (
	"time"

	"smart-todo-client/internal/model"
)

// taskDTO mirrors the remote task serializer.
type taskDTO struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    int        `json:"priority"`
	Category    string     `json:"category"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	IsOverdue   bool       `json:"is_overdue"`
}

func (d taskDTO) toModel() model.Task {
	t := model.Task{
		ID:        d.ID,
		Title:     d.Title,
		Priority:  model.Priority(d.Priority),
		Category:  model.Category(d.Category),
		Completed: d.Completed,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
		IsOverdue: d.IsOverdue,
	}
	if d.Description != nil {
		t.Description = *d.Description
	}
	if d.DueDate != nil {
		due := d.DueDate.UTC()
		t.Due = &due
	}
	return t
}

// draftDTO is the body of POST tasks/ and the shape of parsed_task / preview.
type draftDTO struct {
	Title       string     `json:"title" validate:"required"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    int        `json:"priority,omitempty" validate:"omitempty,min=1,max=4"`
	Category    string     `json:"category,omitempty" validate:"omitempty,oneof=personal work study health shopping other"`
}

func newDraftDTO(d model.TaskDraft) draftDTO {
	dto := draftDTO{
		Title:    d.Title,
		DueDate:  utcPtr(d.Due),
		Priority: int(d.Priority),
		Category: string(d.Category),
	}
	if d.Description != "" {
		desc := d.Description
		dto.Description = &desc
	}
	return dto
}

func (d draftDTO) toModel() model.TaskDraft {
	draft := model.TaskDraft{
		Title:    d.Title,
		Due:      utcPtr(d.DueDate),
		Priority: model.Priority(d.Priority),
		Category: model.Category(d.Category),
	}
	if d.Description != nil {
		draft.Description = *d.Description
	}
	return draft
}

// patchDTO carries only the fields present in a TaskPatch. A nil due_date clears it.
type patchDTO map[string]any

func newPatchDTO(p model.TaskPatch) patchDTO {
	body := patchDTO{}
	if p.Title != nil {
		body["title"] = *p.Title
	}
	if p.Description != nil {
		body["description"] = *p.Description
	}
	switch {
	case p.ClearDue:
		body["due_date"] = nil
	case p.Due != nil:
		body["due_date"] = p.Due.UTC()
	}
	if p.Priority != nil {
		body["priority"] = int(*p.Priority)
	}
	if p.Category != nil {
		body["category"] = string(*p.Category)
	}
	if p.Completed != nil {
		body["completed"] = *p.Completed
	}
	return body
}

type statsDTO struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
}

type parseRequest struct {
	Text string `json:"text"`
}

type parseResponse struct {
	ParsedTask *draftDTO `json:"parsed_task"`
	Preview    *draftDTO `json:"preview"`
}

type healthDTO struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Message  string `json:"message"`
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
