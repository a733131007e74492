package selection

import (
	"slices"
	"sync"

	"smart-todo-client/internal/task/repository"
	"smart-todo-client/internal/task/store"
	pkgLog "smart-todo-client/pkg/log"
	"smart-todo-client/pkg/metrics"
)

// Manager tracks the selection set and runs bulk mutations with settle-all semantics.
// Every selected id exists in the store; the store's removal hook prunes the rest.
type Manager struct {
	l           pkgLog.Logger
	gw          repository.Gateway
	store       *store.Store
	metrics     *metrics.Metrics
	concurrency int

	mu       sync.Mutex
	selected map[int64]struct{}
	mode     bool
	onChange []func(State)
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l pkgLog.Logger) Option {
	return func(m *Manager) {
		m.l = l
	}
}

// WithMetrics records bulk outcomes in mt.
func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Manager) {
		m.metrics = mt
	}
}

// WithConcurrency caps in-flight calls per bulk operation.
func WithConcurrency(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.concurrency = n
		}
	}
}

// WithOnChange registers a hook called after every selection change, outside the lock.
func WithOnChange(f func(State)) Option {
	return func(m *Manager) {
		m.onChange = append(m.onChange, f)
	}
}

// New creates a Manager over st and subscribes it to st's removals.
func New(gw repository.Gateway, st *store.Store, opts ...Option) *Manager {
	m := &Manager{
		l:           pkgLog.NewNop(),
		gw:          gw,
		store:       st,
		concurrency: DefaultConcurrency,
		selected:    map[int64]struct{}{},
	}
	for _, opt := range opts {
		opt(m)
	}
	st.OnRemove(m.Prune)
	return m
}

// State returns a snapshot of the selection.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked()
}

// Select adds id. Selecting into an empty set enters selection mode.
func (m *Manager) Select(id int64) error {
	m.mu.Lock()
	if !m.store.Has(id) {
		m.mu.Unlock()
		return ErrUnknownTask
	}
	m.selected[id] = struct{}{}
	m.mode = true
	st := m.stateLocked()
	m.mu.Unlock()

	m.notify(st)
	return nil
}

// Deselect removes id. Removing the last member exits selection mode.
func (m *Manager) Deselect(id int64) {
	m.update(func() {
		m.removeLocked(id)
	})
}

// Toggle flips the membership of id.
func (m *Manager) Toggle(id int64) error {
	m.mu.Lock()
	_, selected := m.selected[id]
	m.mu.Unlock()

	if selected {
		m.Deselect(id)
		return nil
	}
	return m.Select(id)
}

// SelectAll replaces the selection with the given visible ids and enters selection mode.
// Ids unknown to the store are skipped.
func (m *Manager) SelectAll(ids []int64) {
	m.update(func() {
		clear(m.selected)
		for _, id := range ids {
			if m.store.Has(id) {
				m.selected[id] = struct{}{}
			}
		}
		m.mode = true
	})
}

// Clear empties the selection and exits selection mode.
func (m *Manager) Clear() {
	m.update(func() {
		clear(m.selected)
		m.mode = false
	})
}

// Prune drops ids whose tasks left the collection. Absent ids are ignored.
func (m *Manager) Prune(ids []int64) {
	m.mu.Lock()
	changed := false
	for _, id := range ids {
		if _, ok := m.selected[id]; ok {
			m.removeLocked(id)
			changed = true
		}
	}
	st := m.stateLocked()
	m.mu.Unlock()

	if changed {
		m.notify(st)
	}
}

func (m *Manager) removeLocked(id int64) {
	if _, ok := m.selected[id]; !ok {
		return
	}
	delete(m.selected, id)
	if len(m.selected) == 0 {
		m.mode = false
	}
}

func (m *Manager) update(f func()) {
	m.mu.Lock()
	f()
	st := m.stateLocked()
	m.mu.Unlock()
	m.notify(st)
}

func (m *Manager) stateLocked() State {
	ids := make([]int64, 0, len(m.selected))
	for id := range m.selected {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return State{Mode: m.mode, IDs: ids}
}

func (m *Manager) notify(st State) {
	for _, f := range m.onChange {
		f(st)
	}
}

// settle applies a settled bulk result to the selection: successes leave it,
// failures that still exist in the store stay or become selected.
func (m *Manager) settle(res BulkResult) {
	m.update(func() {
		for _, id := range res.Succeeded {
			delete(m.selected, id)
		}
		for _, id := range res.Failed {
			if m.store.Has(id) {
				m.selected[id] = struct{}{}
			}
		}
		m.mode = len(m.selected) > 0
	})
}
