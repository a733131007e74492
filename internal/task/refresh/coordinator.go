package refresh

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"smart-todo-client/internal/model"
	"smart-todo-client/internal/task/repository"
	"smart-todo-client/internal/task/store"
	pkgLog "smart-todo-client/pkg/log"
)

const (
	DefaultMaxAttempts = 3
	DefaultTimeout     = 30 * time.Second

	flightKey = "refresh"
)

// Coordinator brings the store back in line with the remote service after mutations.
// Concurrent Refresh calls share one in-flight fetch.
type Coordinator struct {
	l           pkgLog.Logger
	gw          repository.Gateway
	store       *store.Store
	maxAttempts int
	timeout     time.Duration
	group       singleflight.Group
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger.
func WithLogger(l pkgLog.Logger) Option {
	return func(c *Coordinator) {
		c.l = l
	}
}

// WithMaxAttempts bounds how often a refresh refetches because the store moved underneath it.
func WithMaxAttempts(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithTimeout bounds one shared refresh, independent of the callers' contexts.
func WithTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func New(gw repository.Gateway, st *store.Store, opts ...Option) *Coordinator {
	c := &Coordinator{
		l:           pkgLog.NewNop(),
		gw:          gw,
		store:       st,
		maxAttempts: DefaultMaxAttempts,
		timeout:     DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ApplyTask records a single mutation whose response carried the full task. No fetch is made.
func (c *Coordinator) ApplyTask(task model.Task) {
	c.store.Upsert(task)
}

// ApplyRemoval records a deletion, which returns no task, and reconciles with a refresh.
func (c *Coordinator) ApplyRemoval(ctx context.Context, id int64) error {
	c.store.Remove(id)
	return c.Refresh(ctx)
}

// Refresh fetches the task list and stats together and replaces the store with them.
// A caller joining an in-flight refresh waits for it; leaving early on ctx does not cancel it.
func (c *Coordinator) Refresh(ctx context.Context) error {
	ch := c.group.DoChan(flightKey, func() (any, error) {
		return nil, c.refresh(ctx)
	})

	select {
	case r := <-ch:
		return r.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Coordinator) refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	for attempt := 1; ; attempt++ {
		gen := c.store.Generation()
		tasks, stats, err := c.fetch(ctx)
		if err != nil {
			c.l.Warnf(ctx, "refresh.refresh.fetch: %v", err)
			return err
		}

		if c.store.ReplaceAllAt(gen, tasks, &stats) {
			c.l.Debugf(ctx, "refresh.refresh: applied %d tasks (attempt %d)", len(tasks), attempt)
			return nil
		}
		if attempt >= c.maxAttempts {
			// Every snapshot predates a local mutation; keep the store and leave it to the next refresh.
			c.l.Warnf(ctx, "refresh.refresh: store kept changing, discarded %d snapshots", attempt)
			return nil
		}
		c.l.Debugf(ctx, "refresh.refresh: store changed during fetch, refetching")
	}
}

func (c *Coordinator) fetch(ctx context.Context) ([]model.Task, model.Stats, error) {
	var (
		tasks []model.Task
		stats model.Stats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = c.gw.ListTasks(gctx, model.Filters{})
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = c.gw.FetchStats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, model.Stats{}, err
	}
	return tasks, stats, nil
}
