package store_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-todo-client/internal/model"
	"smart-todo-client/internal/task/store"
)

var base = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func task(id int64, p model.Priority, due *time.Time, createdOffset time.Duration) model.Task {
	return model.Task{
		ID:        id,
		Title:     "task",
		Priority:  p,
		Category:  model.CategoryOther,
		Due:       due,
		CreatedAt: base.Add(createdOffset),
		UpdatedAt: base.Add(createdOffset),
	}
}

func ids(tasks []model.Task) []int64 {
	out := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestUpsertRemoveRoundTrip(t *testing.T) {
	s := store.New()
	tk := task(1, model.PriorityMedium, nil, 0)

	s.Upsert(tk)
	assert.Contains(t, s.View(model.Filters{}), tk)
	assert.True(t, s.Has(1))

	assert.True(t, s.Remove(1))
	assert.NotContains(t, s.View(model.Filters{}), tk)
	assert.Empty(t, s.View(model.Filters{}))
	assert.False(t, s.Remove(1))
}

func TestUpsertOverwritesInPlace(t *testing.T) {
	s := store.New()
	s.ReplaceAll([]model.Task{
		task(1, model.PriorityUrgent, nil, 0),
		task(2, model.PriorityMedium, nil, 0),
		task(3, model.PriorityLow, nil, 0),
	}, nil)

	updated := task(2, model.PriorityLow, nil, 0)
	updated.Title = "renamed"
	s.Upsert(updated)

	assert.Equal(t, []int64{1, 2, 3}, ids(s.View(model.Filters{})))
	got, ok := s.Get(2)
	require.True(t, ok)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, 3, s.Len())
}

func TestUpsertMovesTaskWhenOrderingChanges(t *testing.T) {
	due := base.Add(24 * time.Hour)
	s := store.New()
	s.ReplaceAll([]model.Task{
		task(1, model.PriorityUrgent, nil, 0),
		task(2, model.PriorityMedium, nil, 0),
		task(3, model.PriorityLow, nil, 0),
	}, nil)

	s.Upsert(task(2, model.PriorityUrgent, &due, 0))
	assert.Equal(t, []int64{2, 1, 3}, ids(s.View(model.Filters{})))

	s.Upsert(task(2, model.PriorityLow, nil, -time.Hour))
	assert.Equal(t, []int64{1, 3, 2}, ids(s.View(model.Filters{})))

	got, ok := s.Get(2)
	require.True(t, ok)
	assert.Equal(t, model.PriorityLow, got.Priority)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 3, s.Stats().Total)
}

func TestUpsertInsertsInServerOrder(t *testing.T) {
	soon := base.Add(24 * time.Hour)
	later := base.Add(48 * time.Hour)

	s := store.New()
	s.ReplaceAll([]model.Task{
		task(1, model.PriorityUrgent, nil, 0),
		task(2, model.PriorityMedium, &soon, 0),
		task(3, model.PriorityMedium, nil, time.Hour),
		task(4, model.PriorityMedium, nil, 0),
		task(5, model.PriorityLow, nil, 0),
	}, nil)

	s.Upsert(task(6, model.PriorityMedium, &later, 0))   // after 2: same priority, later due
	s.Upsert(task(7, model.PriorityMedium, nil, 30*time.Minute)) // between 3 and 4 by created desc
	s.Upsert(task(8, model.PriorityHigh, nil, 0))         // before every medium
	s.Upsert(task(9, model.PriorityLow, nil, -time.Hour))  // last

	assert.Equal(t, []int64{1, 8, 2, 6, 3, 7, 4, 5, 9}, ids(s.View(model.Filters{})))
}

func TestReplaceAllKeepsServerOrderAndCollapsesDuplicates(t *testing.T) {
	s := store.New()
	first := task(1, model.PriorityLow, nil, 0)
	dup := task(1, model.PriorityLow, nil, 0)
	dup.Title = "newer"

	s.ReplaceAll([]model.Task{first, task(2, model.PriorityUrgent, nil, 0), dup}, nil)

	assert.Equal(t, []int64{1, 2}, ids(s.View(model.Filters{})))
	got, _ := s.Get(1)
	assert.Equal(t, "newer", got.Title)
}

func TestStatsSource(t *testing.T) {
	s := store.New()
	tasks := []model.Task{task(1, model.PriorityMedium, nil, 0), task(2, model.PriorityMedium, nil, 0)}
	tasks[1].Completed = true

	fetched := model.Stats{Total: 2, Completed: 1, Pending: 1, Overdue: 1}
	s.ReplaceAll(tasks, &fetched)
	assert.Equal(t, fetched, s.Stats(), "fetched stats are used as-is")

	s.Upsert(task(3, model.PriorityMedium, nil, 0))
	assert.Equal(t, model.Stats{Total: 3, Completed: 1, Pending: 2}, s.Stats(), "recomputed after upsert")

	s.Remove(2)
	assert.Equal(t, model.Stats{Total: 2, Pending: 2}, s.Stats(), "recomputed after remove")

	s.ReplaceAll(nil, nil)
	assert.Equal(t, model.Stats{}, s.Stats())
}

func TestViewFilters(t *testing.T) {
	s := store.New()
	done := task(1, model.PriorityHigh, nil, 0)
	done.Completed = true
	shop := task(2, model.PriorityMedium, nil, 0)
	shop.Category = model.CategoryShopping
	s.ReplaceAll([]model.Task{done, shop, task(3, model.PriorityMedium, nil, 0)}, nil)

	assert.Equal(t, []int64{1}, ids(s.View(model.Filters{Completed: model.Ptr(true)})))
	assert.Equal(t, []int64{2, 3}, ids(s.View(model.Filters{Completed: model.Ptr(false)})))
	assert.Equal(t, []int64{2}, ids(s.View(model.Filters{Category: model.Ptr(model.CategoryShopping)})))
	assert.Equal(t, []int64{2, 3}, s.IDs(model.Filters{Priority: model.Ptr(model.PriorityMedium)}))
	assert.Empty(t, s.View(model.Filters{Priority: model.Ptr(model.PriorityUrgent)}))
}

func TestSeqIsStableAcrossMutation(t *testing.T) {
	s := store.New()
	s.ReplaceAll([]model.Task{task(1, model.PriorityHigh, nil, 0), task(2, model.PriorityLow, nil, 0)}, nil)

	seq := s.Seq(model.Filters{})
	s.Remove(1)
	s.Upsert(task(3, model.PriorityUrgent, nil, 0))

	var seen []int64
	for tk := range seq {
		seen = append(seen, tk.ID)
	}
	assert.Equal(t, []int64{1, 2}, seen)
}

func TestRemoveHooks(t *testing.T) {
	s := store.New()
	var removed [][]int64
	changes := 0
	s.OnRemove(func(ids []int64) { removed = append(removed, ids) })
	s.OnChange(func() { changes++ })

	s.ReplaceAll([]model.Task{task(1, 2, nil, 0), task(2, 2, nil, 0), task(3, 2, nil, 0)}, nil)
	s.ReplaceAll([]model.Task{task(2, 2, nil, 0)}, nil)
	s.Remove(2)
	s.Remove(42)

	assert.Equal(t, [][]int64{{1, 3}, {2}, {42}}, removed)
	assert.Equal(t, 4, changes)
}

func TestGenerationAdvances(t *testing.T) {
	s := store.New()
	g0 := s.Generation()

	s.Upsert(task(1, 2, nil, 0))
	g1 := s.Generation()
	s.Remove(1)
	g2 := s.Generation()
	s.Remove(1)

	assert.Greater(t, g1, g0)
	assert.Greater(t, g2, g1)
	assert.Equal(t, g2, s.Generation(), "removing an absent id changes nothing")
}

func TestConcurrentAccess(t *testing.T) {
	s := store.New()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Upsert(task(int64(i%10), model.Priority(i%4+1), nil, time.Duration(i)))
		}()
		go func() {
			defer wg.Done()
			_ = s.View(model.Filters{})
			_ = s.Stats()
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, s.Len())
	assert.Equal(t, 10, s.Stats().Total)
}

func TestReplaceAllAt(t *testing.T) {
	s := store.New()
	gen := s.Generation()

	s.Upsert(task(1, 2, nil, 0))
	assert.False(t, s.ReplaceAllAt(gen, nil, nil))
	assert.Equal(t, 1, s.Len())

	assert.True(t, s.ReplaceAllAt(s.Generation(), []model.Task{task(2, 2, nil, 0)}, nil))
	assert.Equal(t, []int64{2}, s.IDs(model.Filters{}))
}
