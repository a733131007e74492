package store

import (
	"iter"
	"slices"
	"sync"

	"smart-todo-client/internal/model"
)

// Store is the client-side cache of the unfiltered task set and its aggregate counts.
// It never holds two tasks with the same id.
type Store struct {
	mu         sync.RWMutex
	tasks      []model.Task
	index      map[int64]int
	stats      model.Stats
	generation uint64

	hooksMu  sync.RWMutex
	onRemove []func(ids []int64)
	onChange []func()
}

// New creates an empty Store.
func New() *Store {
	return &Store{index: map[int64]int{}}
}

// OnRemove registers f to be called with the ids that left the store, after the change is visible.
func (s *Store) OnRemove(f func(ids []int64)) {
	s.hooksMu.Lock()
	defer s.hooksMu.Unlock()
	s.onRemove = append(s.onRemove, f)
}

// OnChange registers f to be called after every mutation.
func (s *Store) OnChange(f func()) {
	s.hooksMu.Lock()
	defer s.hooksMu.Unlock()
	s.onChange = append(s.onChange, f)
}

// ReplaceAll reconciles the store with a full fetch, keeping the server's order.
// When stats is nil they are recomputed from tasks. A repeated id keeps its first position and last value.
func (s *Store) ReplaceAll(tasks []model.Task, stats *model.Stats) {
	s.replace(tasks, stats, nil)
}

// ReplaceAllAt is ReplaceAll applied only while the store is still at generation.
// It reports false, leaving the store untouched, when a mutation happened since.
func (s *Store) ReplaceAllAt(generation uint64, tasks []model.Task, stats *model.Stats) bool {
	return s.replace(tasks, stats, &generation)
}

func (s *Store) replace(tasks []model.Task, stats *model.Stats, at *uint64) bool {
	next := make([]model.Task, 0, len(tasks))
	index := make(map[int64]int, len(tasks))
	for _, t := range tasks {
		if i, ok := index[t.ID]; ok {
			next[i] = t
			continue
		}
		index[t.ID] = len(next)
		next = append(next, t)
	}

	s.mu.Lock()
	if at != nil && *at != s.generation {
		s.mu.Unlock()
		return false
	}
	var removed []int64
	for _, t := range s.tasks {
		if _, ok := index[t.ID]; !ok {
			removed = append(removed, t.ID)
		}
	}
	s.tasks = next
	s.index = index
	if stats != nil {
		s.stats = *stats
	} else {
		s.stats = model.ComputeStats(next)
	}
	s.generation++
	s.mu.Unlock()

	s.fire(removed)
	return true
}

// Upsert writes task at its server-order position. An existing task whose ordering keys still
// fit between its neighbours keeps its place; otherwise it moves.
func (s *Store) Upsert(task model.Task) {
	s.mu.Lock()
	if i, ok := s.index[task.ID]; ok && s.fitsLocked(i, task) {
		next := slices.Clone(s.tasks)
		next[i] = task
		s.tasks = next
	} else {
		rest, from := slices.Clip(s.tasks), len(s.tasks)
		if ok {
			rest, from = slices.Concat(s.tasks[:i], s.tasks[i+1:]), i
		}
		pos := slices.IndexFunc(rest, func(t model.Task) bool { return Compare(t, task) > 0 })
		if pos < 0 {
			pos = len(rest)
		}
		s.tasks = slices.Insert(rest, pos, task)
		s.reindexLocked(min(from, pos))
	}
	s.stats = model.ComputeStats(s.tasks)
	s.generation++
	s.mu.Unlock()

	s.fire(nil)
}

// Remove drops id if present. Removal hooks run either way so dependents can prune stale ids.
func (s *Store) Remove(id int64) bool {
	s.mu.Lock()
	i, ok := s.index[id]
	if ok {
		s.tasks = slices.Concat(s.tasks[:i], s.tasks[i+1:])
		delete(s.index, id)
		s.reindexLocked(i)
		s.stats = model.ComputeStats(s.tasks)
		s.generation++
	}
	s.mu.Unlock()

	s.fire([]int64{id})
	return ok
}

// View returns the tasks matching filters in store order.
func (s *Store) View(filters model.Filters) []model.Task {
	return slices.Collect(s.Seq(filters))
}

// Seq lazily yields the tasks matching filters over the set held at call time.
func (s *Store) Seq(filters model.Filters) iter.Seq[model.Task] {
	s.mu.RLock()
	snapshot := s.tasks
	s.mu.RUnlock()

	return func(yield func(model.Task) bool) {
		for _, t := range snapshot {
			if filters.Match(t) && !yield(t) {
				return
			}
		}
	}
}

// IDs returns the ids of the tasks matching filters in store order.
func (s *Store) IDs(filters model.Filters) []int64 {
	var ids []int64
	for t := range s.Seq(filters) {
		ids = append(ids, t.ID)
	}
	return ids
}

func (s *Store) Get(id int64) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

func (s *Store) Has(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[id]
	return ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

func (s *Store) Stats() model.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Generation increases on every mutation.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// reindexLocked refreshes positions from i to the end. s.tasks is always replaced, never written through,
// so Seq snapshots stay valid.
func (s *Store) fitsLocked(i int, task model.Task) bool {
	if i > 0 && Compare(s.tasks[i-1], task) > 0 {
		return false
	}
	if i < len(s.tasks)-1 && Compare(task, s.tasks[i+1]) > 0 {
		return false
	}
	return true
}

func (s *Store) reindexLocked(from int) {
	for i := from; i < len(s.tasks); i++ {
		s.index[s.tasks[i].ID] = i
	}
}

func (s *Store) fire(removed []int64) {
	s.hooksMu.RLock()
	onRemove := s.onRemove
	onChange := s.onChange
	s.hooksMu.RUnlock()

	if len(removed) > 0 {
		for _, f := range onRemove {
			f(removed)
		}
	}
	for _, f := range onChange {
		f()
	}
}
