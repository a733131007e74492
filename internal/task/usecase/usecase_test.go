package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-todo-client/internal/model"
	"smart-todo-client/internal/task"
	"smart-todo-client/internal/task/interpret"
	"smart-todo-client/internal/task/repository"
	"smart-todo-client/internal/task/repository/mock"
	"smart-todo-client/internal/task/selection"
	"smart-todo-client/internal/task/usecase"
	"smart-todo-client/pkg/gcalendar"
	pkgLog "smart-todo-client/pkg/log"
)

type fakeCalendar struct {
	mu      sync.Mutex
	created []gcalendar.CreateEventRequest
	deleted []string
	fail    error
}

func (c *fakeCalendar) CreateEvent(_ context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return nil, c.fail
	}
	c.created = append(c.created, req)
	return &gcalendar.Event{ID: fmt.Sprintf("evt-%d", req.TaskID), TaskID: req.TaskID}, nil
}

func (c *fakeCalendar) DeleteEvent(_ context.Context, _, eventID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, eventID)
	return nil
}

func seed(n int) []model.Task {
	tasks := make([]model.Task, 0, n)
	for i := 1; i <= n; i++ {
		tasks = append(tasks, model.Task{
			ID:       int64(i),
			Title:    fmt.Sprintf("task %d", i),
			Priority: model.PriorityMedium,
			Category: model.CategoryOther,
		})
	}
	return tasks
}

func setup(t *testing.T, n int, cal usecase.Calendar) (task.UseCase, *mock.Gateway) {
	t.Helper()
	gw := mock.New(seed(n)...)
	cfg := usecase.Config{
		Interpret: interpret.Config{QuietPeriod: time.Millisecond},
		Calendar:  usecase.CalendarConfig{CalendarID: "primary", Timezone: "UTC"},
	}
	uc := usecase.New(pkgLog.NewNop(), gw, cfg, cal, nil)
	t.Cleanup(uc.Close)
	require.NoError(t, uc.Load(context.Background()))
	return uc, gw
}

func titles(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func waitReady(t *testing.T, uc task.UseCase) {
	t.Helper()
	require.Eventually(t, func() bool {
		return uc.Interpretation().Status == interpret.StatusReady
	}, time.Second, time.Millisecond)
}

func TestLoad(t *testing.T) {
	uc, _ := setup(t, 3, nil)

	assert.Len(t, uc.View(model.Filters{}), 3)
	assert.Equal(t, model.Stats{Total: 3, Pending: 3}, uc.Stats())
}

func TestCreateTaskAppearsInView(t *testing.T) {
	uc, gw := setup(t, 2, nil)
	ctx := context.Background()

	created, err := uc.CreateTask(ctx, model.TaskDraft{Title: "urgent thing", Priority: model.PriorityUrgent})
	require.NoError(t, err)

	view := uc.View(model.Filters{})
	require.Len(t, view, 3)
	assert.Equal(t, created.ID, view[0].ID)
	assert.Equal(t, 3, uc.Stats().Total)
	assert.Equal(t, 1, gw.Calls("ListTasks"), "create must not refetch")
}

func TestCreateTaskValidationLeavesStore(t *testing.T) {
	uc, _ := setup(t, 1, nil)

	_, err := uc.CreateTask(context.Background(), model.TaskDraft{Title: "   "})
	assert.ErrorIs(t, err, repository.ErrValidation)
	assert.Len(t, uc.View(model.Filters{}), 1)
}

func TestEditTask(t *testing.T) {
	uc, _ := setup(t, 2, nil)
	ctx := context.Background()

	_, err := uc.EditTask(ctx, 1, model.TaskPatch{})
	assert.ErrorIs(t, err, task.ErrEmptyPatch)

	updated, err := uc.EditTask(ctx, 2, model.TaskPatch{Priority: model.Ptr(model.PriorityHigh)})
	require.NoError(t, err)
	assert.Equal(t, model.PriorityHigh, updated.Priority)

	got := uc.View(model.Filters{})
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, model.PriorityHigh, got[0].Priority)
}

func TestNotFoundRemovesTaskAndSelection(t *testing.T) {
	uc, gw := setup(t, 3, nil)
	ctx := context.Background()

	require.NoError(t, uc.Select(2))
	gw.Fail("ToggleCompletion", 2, mock.Kind("ToggleCompletion", 2, repository.ErrNotFound))

	_, err := uc.ToggleCompletion(ctx, 2)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, []string{"task 1", "task 3"}, titles(uc.View(model.Filters{})))
	assert.False(t, uc.Selection().Mode)
}

func TestTransientErrorKeepsTask(t *testing.T) {
	uc, gw := setup(t, 2, nil)
	gw.Fail("UpdateTask", 1, mock.Kind("UpdateTask", 1, repository.ErrServer))

	_, err := uc.EditTask(context.Background(), 1, model.TaskPatch{Title: model.Ptr("x")})
	assert.ErrorIs(t, err, repository.ErrServer)
	assert.Len(t, uc.View(model.Filters{}), 2)
}

func TestToggleCompletion(t *testing.T) {
	uc, _ := setup(t, 2, nil)

	got, err := uc.ToggleCompletion(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Equal(t, model.Stats{Total: 2, Completed: 1, Pending: 1}, uc.Stats())
}

func TestDeleteTask(t *testing.T) {
	uc, gw := setup(t, 3, nil)
	ctx := context.Background()
	require.NoError(t, uc.Select(3))

	require.NoError(t, uc.DeleteTask(ctx, 3))
	assert.Len(t, uc.View(model.Filters{}), 2)
	assert.Equal(t, 2, uc.Stats().Total)
	assert.False(t, uc.Selection().Mode)
	assert.Equal(t, 2, gw.Calls("ListTasks"), "delete is followed by a refresh")
}

func TestDeleteTaskRefreshFailureIsNotReturned(t *testing.T) {
	uc, gw := setup(t, 2, nil)
	gw.Fail("ListTasks", 0, mock.Kind("ListTasks", 0, repository.ErrNetworkUnreachable))

	require.NoError(t, uc.DeleteTask(context.Background(), 1))
	assert.Equal(t, []string{"task 2"}, titles(uc.View(model.Filters{})))
}

func TestDeleteUnknownTask(t *testing.T) {
	uc, _ := setup(t, 1, nil)

	err := uc.DeleteTask(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Len(t, uc.View(model.Filters{}), 1)
}

func TestBulkDeleteSelection(t *testing.T) {
	uc, gw := setup(t, 5, nil)
	ctx := context.Background()

	uc.SelectAll(model.Filters{})
	uc.Deselect(5)
	gw.Fail("DeleteTask", 2, mock.Kind("DeleteTask", 2, repository.ErrServer))

	res, err := uc.BulkDelete(ctx, nil)
	assert.ErrorIs(t, err, selection.ErrPartialFailure)
	assert.ElementsMatch(t, []int64{1, 3, 4}, res.Succeeded)
	assert.Equal(t, []int64{2}, res.Failed)

	assert.Equal(t, []string{"task 2", "task 5"}, titles(uc.View(model.Filters{})))
	assert.Equal(t, selection.State{Mode: true, IDs: []int64{2}}, uc.Selection())
	assert.Equal(t, 2, uc.Stats().Total)
}

func TestBulkWithoutSelection(t *testing.T) {
	uc, gw := setup(t, 2, nil)

	_, err := uc.BulkSetCompletion(context.Background(), nil, true)
	assert.ErrorIs(t, err, task.ErrNoSelection)
	assert.Equal(t, 1, gw.Calls("ListTasks"))
}

func TestBulkInvalidValueMakesNoCalls(t *testing.T) {
	uc, gw := setup(t, 2, nil)

	_, err := uc.BulkSetPriority(context.Background(), []int64{1, 2}, model.Priority(9))
	assert.ErrorIs(t, err, repository.ErrValidation)
	assert.Zero(t, gw.Calls("UpdateTask"))
	assert.Equal(t, 1, gw.Calls("ListTasks"))
}

func TestBulkSetCategoryRefreshes(t *testing.T) {
	uc, gw := setup(t, 3, nil)

	res, err := uc.BulkSetCategory(context.Background(), []int64{1, 3}, model.CategoryWork)
	require.NoError(t, err)
	assert.Len(t, res.Succeeded, 2)

	work := model.CategoryWork
	assert.Equal(t, []string{"task 1", "task 3"}, titles(uc.View(model.Filters{Category: &work})))
	assert.Equal(t, 2, gw.Calls("ListTasks"))
}

func TestDeletePrompt(t *testing.T) {
	uc, _ := setup(t, 5, nil)

	assert.Equal(t, `Are you sure you want to delete "task 1"?`, uc.DeletePrompt([]int64{1}))

	uc.SelectAll(model.Filters{})
	assert.Equal(t,
		"Are you sure you want to delete 5 tasks?\n\ntask 1\ntask 2\ntask 3\n...and 2 more",
		uc.DeletePrompt(nil))
}

func TestAcceptInterpretationCreatesTask(t *testing.T) {
	uc, gw := setup(t, 1, nil)
	due := time.Date(2026, 5, 2, 17, 0, 0, 0, time.UTC)
	parsed := model.TaskDraft{Title: "Buy milk", Due: &due, Priority: model.PriorityMedium,
		Category: model.CategoryShopping}
	gw.SetInterpretation("Buy milk tomorrow at 5pm",
		model.Interpretation{Text: "Buy milk tomorrow at 5pm", Parsed: parsed, Preview: parsed})

	_, err := uc.AcceptInterpretation(context.Background())
	assert.ErrorIs(t, err, interpret.ErrNothingToAccept)

	uc.SubmitText("Buy milk tomorrow at 5pm")
	waitReady(t, uc)

	created, err := uc.AcceptInterpretation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", created.Title)
	assert.Equal(t, model.CategoryShopping, created.Category)
	assert.Equal(t, due, *created.Due)
	assert.Equal(t, 2, uc.Stats().Total)

	st := uc.Interpretation()
	assert.Equal(t, interpret.StatusIdle, st.Status)
	assert.Empty(t, st.Text)
}

func TestAcceptInterpretationForEdit(t *testing.T) {
	uc, gw := setup(t, 2, nil)
	parsed := model.TaskDraft{Title: "task 1", Priority: model.PriorityUrgent}
	gw.SetInterpretation("task 1 asap", model.Interpretation{Text: "task 1 asap", Parsed: parsed})

	_, err := uc.AcceptInterpretationForEdit(context.Background(), 9)
	assert.ErrorIs(t, err, task.ErrTaskNotFound)

	uc.SubmitText("task 1 asap")
	waitReady(t, uc)

	got, err := uc.AcceptInterpretationForEdit(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "task 1", got.Title)
	assert.Equal(t, model.PriorityUrgent, got.Priority)
	assert.Equal(t, 1, gw.Calls("UpdateTask"))
}

func TestClearInput(t *testing.T) {
	uc, _ := setup(t, 0, nil)

	uc.SubmitText("something")
	uc.ClearInput()
	assert.Equal(t, interpret.StatusIdle, uc.Interpretation().Status)
	assert.Empty(t, uc.Interpretation().Text)
}

func TestSubscribe(t *testing.T) {
	uc, _ := setup(t, 2, nil)
	events, cancel := uc.Subscribe()
	defer cancel()

	require.NoError(t, uc.Select(1))
	_, err := uc.ToggleCompletion(context.Background(), 2)
	require.NoError(t, err)

	seen := map[task.Topic]bool{}
	for len(seen) < 3 {
		select {
		case ev := <-events:
			assert.NotEmpty(t, ev.ID)
			seen[ev.Topic] = true
		case <-time.After(time.Second):
			t.Fatalf("missing events, saw %v", seen)
		}
	}
	assert.True(t, seen[task.TopicSelection])
	assert.True(t, seen[task.TopicTasks])
	assert.True(t, seen[task.TopicStats])
}

func TestCloseEndsSubscriptions(t *testing.T) {
	gw := mock.New()
	uc := usecase.New(pkgLog.NewNop(), gw, usecase.Config{}, nil, nil)
	events, cancel := uc.Subscribe()

	uc.Close()
	_, ok := <-events
	assert.False(t, ok)
	cancel()
}

func TestListRemoteLeavesStore(t *testing.T) {
	uc, gw := setup(t, 3, nil)
	gw.Seed(model.Task{ID: 10, Title: "remote only", Priority: model.PriorityLow})

	tasks, err := uc.ListRemote(context.Background(), model.Filters{})
	require.NoError(t, err)
	assert.Len(t, tasks, 4)
	assert.Len(t, uc.View(model.Filters{}), 3)
}

func TestHealth(t *testing.T) {
	uc, _ := setup(t, 0, nil)

	h, err := uc.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", h.Status)
}

func TestCalendarMirror(t *testing.T) {
	cal := &fakeCalendar{}
	uc, _ := setup(t, 1, cal)
	ctx := context.Background()
	due := time.Date(2026, 5, 2, 17, 0, 0, 0, time.UTC)

	_, err := uc.CreateTask(ctx, model.TaskDraft{Title: "no date"})
	require.NoError(t, err)
	dated, err := uc.CreateTask(ctx, model.TaskDraft{Title: "dentist", Due: &due})
	require.NoError(t, err)

	require.Len(t, cal.created, 1)
	assert.Equal(t, "dentist", cal.created[0].Summary)
	assert.Equal(t, "primary", cal.created[0].CalendarID)
	assert.Equal(t, due.Add(time.Hour), cal.created[0].EndTime)

	_, err = uc.BulkDelete(ctx, []int64{1, dated.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{fmt.Sprintf("evt-%d", dated.ID)}, cal.deleted)
}

func TestCalendarFailureIsNonFatal(t *testing.T) {
	cal := &fakeCalendar{fail: errors.New("quota")}
	uc, _ := setup(t, 0, cal)
	due := time.Now().Add(time.Hour)

	_, err := uc.CreateTask(context.Background(), model.TaskDraft{Title: "call mom", Due: &due})
	require.NoError(t, err)
	assert.Len(t, uc.View(model.Filters{}), 1)
}
