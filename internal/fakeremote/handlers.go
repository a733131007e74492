package fakeremote

import (
	"encoding/json"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"smart-todo-client/internal/model"
	"smart-todo-client/internal/task/store"
)

func (s *Service) list(c *gin.Context) {
	if s.injected(c, "ListTasks", 0) {
		return
	}

	filters, err := parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	now := s.now()
	out := make([]taskResp, 0, len(s.tasks))
	for _, t := range s.sortedLocked() {
		if filters.Match(t) {
			out = append(out, newTaskResp(t, now))
		}
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, out)
}

func (s *Service) create(c *gin.Context) {
	if s.injected(c, "CreateTask", 0) {
		return
	}

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	t := model.Task{
		Title:    strings.TrimSpace(req.Title),
		Due:      utc(req.DueDate),
		Priority: model.DefaultPriority,
		Category: model.CategoryOther,
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Priority != nil {
		t.Priority = model.Priority(*req.Priority)
	}
	if req.Category != nil {
		t.Category = model.Category(*req.Category)
	}
	if errs := validateTask(t); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	s.mu.Lock()
	s.nextID++
	t.ID = s.nextID
	t.CreatedAt = s.now().UTC()
	t.UpdatedAt = t.CreatedAt
	s.tasks[t.ID] = t
	now := s.now()
	s.mu.Unlock()

	s.l.Debugf(c.Request.Context(), "fakeremote.create: task %d %q", t.ID, t.Title)
	c.JSON(http.StatusCreated, newTaskResp(t, now))
}

func (s *Service) detail(c *gin.Context) {
	id, ok := taskID(c)
	if !ok || s.injected(c, "GetTask", id) {
		return
	}

	s.mu.Lock()
	t, found := s.tasks[id]
	now := s.now()
	s.mu.Unlock()
	if !found {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, newTaskResp(t, now))
}

func (s *Service) update(c *gin.Context) {
	id, ok := taskID(c)
	if !ok || s.injected(c, "UpdateTask", id) {
		return
	}

	var fields map[string]json.RawMessage
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t, found := s.tasks[id]
	if !found {
		notFound(c)
		return
	}
	if err := applyFields(&t, fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if errs := validateTask(t); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, errs)
		return
	}
	t.UpdatedAt = s.now().UTC()
	s.tasks[id] = t
	c.JSON(http.StatusOK, newTaskResp(t, s.now()))
}

func (s *Service) delete(c *gin.Context) {
	id, ok := taskID(c)
	if !ok || s.injected(c, "DeleteTask", id) {
		return
	}

	s.mu.Lock()
	_, found := s.tasks[id]
	delete(s.tasks, id)
	s.mu.Unlock()
	if !found {
		notFound(c)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Service) toggle(c *gin.Context) {
	id, ok := taskID(c)
	if !ok || s.injected(c, "ToggleCompletion", id) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t, found := s.tasks[id]
	if !found {
		notFound(c)
		return
	}
	t.Completed = !t.Completed
	t.UpdatedAt = s.now().UTC()
	s.tasks[id] = t
	c.JSON(http.StatusOK, newTaskResp(t, s.now()))
}

func (s *Service) stats(c *gin.Context) {
	if s.injected(c, "FetchStats", 0) {
		return
	}

	s.mu.Lock()
	now := s.now()
	var st statsResp
	for _, t := range s.tasks {
		st.Total++
		if t.Completed {
			st.Completed++
		} else {
			st.Pending++
			if t.Due != nil && now.After(*t.Due) {
				st.Overdue++
			}
		}
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, st)
}

func (s *Service) parse(c *gin.Context) {
	if s.injected(c, "InterpretText", 0) {
		return
	}

	var req parseReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
		return
	}

	draft := s.parser.Parse(req.Text, s.now())
	c.JSON(http.StatusOK, parseResp{ParsedTask: newDraftResp(draft), Preview: newDraftResp(draft)})
}

func (s *Service) health(c *gin.Context) {
	if s.injected(c, "Health", 0) {
		return
	}
	c.JSON(http.StatusOK, healthResp{Status: "healthy", Message: HealthMessage, Database: "connected"})
}

// injected answers the request with an injected fault status and reports whether it did.
func (s *Service) injected(c *gin.Context, op string, id int64) bool {
	s.mu.Lock()
	status, ok := s.faults[fault{op, id}]
	s.mu.Unlock()
	if !ok {
		return false
	}
	c.JSON(status, gin.H{"detail": http.StatusText(status)})
	return true
}

func (s *Service) sortedLocked() []model.Task {
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	slices.SortStableFunc(out, func(a, b model.Task) int {
		if c := store.Compare(a, b); c != 0 {
			return c
		}
		return int(b.ID - a.ID)
	})
	return out
}

func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		notFound(c)
		return 0, false
	}
	return id, true
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

func parseFilters(c *gin.Context) (model.Filters, error) {
	var f model.Filters
	if v := c.Query("completed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, err
		}
		f.Completed = &b
	}
	if v := c.Query("category"); v != "" {
		cat := model.Category(v)
		f.Category = &cat
	}
	if v := c.Query("priority"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, err
		}
		p := model.Priority(n)
		f.Priority = &p
	}
	return f, nil
}

// applyFields copies the present fields onto t. A null due_date clears it.
func applyFields(t *model.Task, fields map[string]json.RawMessage) error {
	for key, raw := range fields {
		var err error
		switch key {
		case "title":
			err = json.Unmarshal(raw, &t.Title)
			t.Title = strings.TrimSpace(t.Title)
		case "description":
			var desc *string
			err = json.Unmarshal(raw, &desc)
			t.Description = ""
			if desc != nil {
				t.Description = *desc
			}
		case "due_date":
			var due *time.Time
			err = json.Unmarshal(raw, &due)
			t.Due = utc(due)
		case "priority":
			err = json.Unmarshal(raw, &t.Priority)
		case "category":
			err = json.Unmarshal(raw, &t.Category)
		case "completed":
			err = json.Unmarshal(raw, &t.Completed)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// validateTask returns field errors keyed by field name.
func validateTask(t model.Task) map[string][]string {
	errs := map[string][]string{}
	if t.Title == "" {
		errs["title"] = []string{"This field may not be blank."}
	}
	if !t.Priority.Valid() {
		errs["priority"] = []string{"\"" + strconv.Itoa(int(t.Priority)) + "\" is not a valid choice."}
	}
	if !t.Category.Valid() {
		errs["category"] = []string{"\"" + string(t.Category) + "\" is not a valid choice."}
	}
	return errs
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
