package http

import (
	"time"

	"smart-todo-client/internal/model"
	"smart-todo-client/internal/task/interpret"
	"smart-todo-client/internal/task/selection"
)

// --- Request DTOs ---

type listReq struct {
	Completed *bool   `form:"completed"`
	Category  *string `form:"category" binding:"omitempty,oneof=personal work study health shopping other"`
	Priority  *int    `form:"priority" binding:"omitempty,min=1,max=4"`
}

func (r listReq) toFilters() model.Filters {
	f := model.Filters{Completed: r.Completed}
	if r.Category != nil {
		f.Category = model.Ptr(model.Category(*r.Category))
	}
	if r.Priority != nil {
		f.Priority = model.Ptr(model.Priority(*r.Priority))
	}
	return f
}

type createReq struct {
	Title       string     `json:"title"       binding:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    int        `json:"priority"    binding:"omitempty,min=1,max=4"`
	Category    string     `json:"category"    binding:"omitempty,oneof=personal work study health shopping other"`
}

func (r createReq) toDraft() model.TaskDraft {
	return model.TaskDraft{
		Title:       r.Title,
		Description: r.Description,
		Due:         r.DueDate,
		Priority:    model.Priority(r.Priority),
		Category:    model.Category(r.Category),
	}
}

type editReq struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	ClearDue    bool       `json:"clear_due"`
	Priority    *int       `json:"priority"  binding:"omitempty,min=1,max=4"`
	Category    *string    `json:"category"  binding:"omitempty,oneof=personal work study health shopping other"`
	Completed   *bool      `json:"completed"`
}

func (r editReq) toPatch() model.TaskPatch {
	p := model.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Due:         r.DueDate,
		ClearDue:    r.ClearDue,
		Completed:   r.Completed,
	}
	if r.Priority != nil {
		p.Priority = model.Ptr(model.Priority(*r.Priority))
	}
	if r.Category != nil {
		p.Category = model.Ptr(model.Category(*r.Category))
	}
	return p
}

type inputReq struct {
	Text string `json:"text"`
}

type bulkReq struct {
	IDs       []int64 `json:"ids"`
	Completed *bool   `json:"completed"`
	Priority  int     `json:"priority"`
	Category  string  `json:"category"`
}

// --- Response DTOs ---

type taskResp struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    int        `json:"priority"`
	PriorityTag string     `json:"priority_label"`
	Category    string     `json:"category"`
	Completed   bool       `json:"completed"`
	IsOverdue   bool       `json:"is_overdue"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func newTaskResp(t model.Task) taskResp {
	return taskResp{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.Due,
		Priority:    int(t.Priority),
		PriorityTag: t.Priority.Label(),
		Category:    string(t.Category),
		Completed:   t.Completed,
		IsOverdue:   t.IsOverdue,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func newTaskListResp(tasks []model.Task) []taskResp {
	out := make([]taskResp, len(tasks))
	for i, t := range tasks {
		out[i] = newTaskResp(t)
	}
	return out
}

type statsResp struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
}

func newStatsResp(s model.Stats) statsResp {
	return statsResp{Total: s.Total, Completed: s.Completed, Pending: s.Pending, Overdue: s.Overdue}
}

type draftResp struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date"`
	Priority    int        `json:"priority,omitempty"`
	Category    string     `json:"category,omitempty"`
}

func newDraftResp(d model.TaskDraft) draftResp {
	return draftResp{
		Title:       d.Title,
		Description: d.Description,
		DueDate:     d.Due,
		Priority:    int(d.Priority),
		Category:    string(d.Category),
	}
}

type interpretationResp struct {
	Status  string     `json:"status"`
	Text    string     `json:"text"`
	Token   uint64     `json:"token"`
	Parsed  *draftResp `json:"parsed,omitempty"`
	Preview *draftResp `json:"preview,omitempty"`
	Error   string     `json:"error,omitempty"`
}

func newInterpretationResp(st interpret.State) interpretationResp {
	resp := interpretationResp{Status: st.Status.String(), Text: st.Text, Token: st.Token}
	if st.Result != nil {
		parsed, preview := newDraftResp(st.Result.Parsed), newDraftResp(st.Result.Preview)
		resp.Parsed, resp.Preview = &parsed, &preview
	}
	if st.Err != nil {
		resp.Error = st.Err.Error()
	}
	return resp
}

type selectionResp struct {
	Mode bool    `json:"mode"`
	IDs  []int64 `json:"ids"`
}

func newSelectionResp(st selection.State) selectionResp {
	ids := st.IDs
	if ids == nil {
		ids = []int64{}
	}
	return selectionResp{Mode: st.Mode, IDs: ids}
}

type bulkResp struct {
	Op        string           `json:"op"`
	Succeeded []int64          `json:"succeeded"`
	Failed    []int64          `json:"failed"`
	Errors    map[int64]string `json:"errors,omitempty"`
	Selection selectionResp    `json:"selection"`
}

func newBulkResp(res selection.BulkResult, st selection.State) bulkResp {
	resp := bulkResp{
		Op:        string(res.Op),
		Succeeded: res.Succeeded,
		Failed:    res.Failed,
		Selection: newSelectionResp(st),
	}
	if resp.Succeeded == nil {
		resp.Succeeded = []int64{}
	}
	if resp.Failed == nil {
		resp.Failed = []int64{}
	}
	if len(res.Errors) > 0 {
		resp.Errors = make(map[int64]string, len(res.Errors))
		for id, err := range res.Errors {
			resp.Errors[id] = err.Error()
		}
	}
	return resp
}

type promptResp struct {
	Prompt string `json:"prompt"`
}
