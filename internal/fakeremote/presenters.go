package fakeremote

import (
	"time"

	"smart-todo-client/internal/model"
)

type taskResp struct {
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

func newTaskResp(t model.Task, now time.Time) taskResp {
	resp := taskResp{
		ID:        t.ID,
		Title:     t.Title,
		DueDate:   t.Due,
		Priority:  int(t.Priority),
		Category:  string(t.Category),
		Completed: t.Completed,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		IsOverdue: t.Due != nil && !t.Completed && now.After(*t.Due),
	}
	if t.Description != "" {
		desc := t.Description
		resp.Description = &desc
	}
	return resp
}

type createReq struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    *int       `json:"priority"`
	Category    *string    `json:"category"`
}

type parseReq struct {
	Text string `json:"text"`
}

type draftResp struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    int        `json:"priority"`
	Category    string     `json:"category"`
}

func newDraftResp(d model.TaskDraft) draftResp {
	resp := draftResp{
		Title:    d.Title,
		DueDate:  d.Due,
		Priority: int(d.Priority),
		Category: string(d.Category),
	}
	if d.Description != "" {
		desc := d.Description
		resp.Description = &desc
	}
	return resp
}

type parseResp struct {
	ParsedTask draftResp `json:"parsed_task"`
	Preview    draftResp `json:"preview"`
}

type statsResp struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
}

type healthResp struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Database string `json:"database"`
}
