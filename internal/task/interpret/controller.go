package interpret

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"smart-todo-client/internal/model"
	pkgLog "smart-todo-client/pkg/log"
)

// Controller debounces free-text input into at most one interpretation request per settled text.
// A response is applied only while its token is still the current one.
type Controller struct {
	l         pkgLog.Logger
	gw        Interpreter
	cfg       Config
	afterFunc AfterFunc
	cache     *expirable.LRU[string, model.Interpretation]

	mu       sync.Mutex
	state    State
	token    uint64
	timer    Timer
	cancel   context.CancelFunc
	closed   bool
	onChange []func(State)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(l pkgLog.Logger) Option {
	return func(c *Controller) {
		c.l = l
	}
}

// WithAfterFunc replaces the timer factory.
func WithAfterFunc(f AfterFunc) Option {
	return func(c *Controller) {
		c.afterFunc = f
	}
}

// WithOnChange registers a hook called after every state transition, outside the controller lock.
func WithOnChange(f func(State)) Option {
	return func(c *Controller) {
		c.onChange = append(c.onChange, f)
	}
}

// New creates a new Controller in the Idle state.
func New(gw Interpreter, cfg Config, opts ...Option) *Controller {
	if cfg.QuietPeriod <= 0 {
		cfg.QuietPeriod = DefaultQuietPeriod
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = DefaultMinLength
	}

	c := &Controller{
		l:   pkgLog.NewNop(),
		gw:  gw,
		cfg: cfg,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
	}
	if cfg.CacheSize > 0 {
		c.cache = expirable.NewLRU[string, model.Interpretation](cfg.CacheSize, nil, cfg.CacheTTL)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetText records a keystroke. Text shorter than the minimum length resets to Idle without a call;
// anything else restarts the quiet period. Setting the current text again changes nothing.
func (c *Controller) SetText(text string) {
	c.mu.Lock()
	if c.closed || text == c.state.Text {
		c.mu.Unlock()
		return
	}

	token := c.invalidateLocked()
	if utf8.RuneCountInString(strings.TrimSpace(text)) < c.cfg.MinLength {
		c.state = State{Status: StatusIdle, Text: text, Token: token}
	} else {
		c.state = State{Status: StatusPending, Text: text, Token: token}
		c.timer = c.afterFunc(c.cfg.QuietPeriod, func() { c.settle(token) })
	}
	st := c.state
	c.mu.Unlock()

	c.notify(st)
}

// Clear empties the input and drops any pending or in-flight interpretation.
func (c *Controller) Clear() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	token := c.invalidateLocked()
	c.state = State{Status: StatusIdle, Token: token}
	st := c.state
	c.mu.Unlock()

	c.notify(st)
}

// Accept hands out the ready result and resets to Idle with empty text.
func (c *Controller) Accept() (model.Interpretation, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return model.Interpretation{}, ErrClosed
	}
	if c.state.Status != StatusReady || c.state.Result == nil {
		c.mu.Unlock()
		return model.Interpretation{}, ErrNothingToAccept
	}
	res := *c.state.Result
	token := c.invalidateLocked()
	c.state = State{Status: StatusIdle, Token: token}
	st := c.state
	c.mu.Unlock()

	c.notify(st)
	return res, nil
}

// Close stops the timer, cancels any in-flight request and ignores further input.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidateLocked()
	c.closed = true
}

// invalidateLocked bumps the token, stops the timer and cancels the in-flight request.
func (c *Controller) invalidateLocked() uint64 {
	c.token++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	return c.token
}

// settle runs when the quiet period for token elapsed.
func (c *Controller) settle(token uint64) {
	c.mu.Lock()
	if c.closed || token != c.token {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	text := c.state.Text

	if c.cache != nil {
		if res, ok := c.cache.Get(text); ok {
			c.state = State{Status: StatusReady, Text: text, Token: token, Result: &res}
			st := c.state
			c.mu.Unlock()
			c.notify(st)
			return
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.state = State{Status: StatusWaiting, Text: text, Token: token}
	st := c.state
	c.mu.Unlock()
	c.notify(st)

	res, err := c.gw.InterpretText(ctx, text)
	cancel()

	c.mu.Lock()
	if token != c.token {
		c.mu.Unlock()
		c.l.Debugf(ctx, "interpret.settle: discarded stale result for token %d", token)
		return
	}
	c.cancel = nil
	if err != nil {
		c.state = State{Status: StatusFailed, Text: text, Token: token, Err: err}
	} else {
		c.state = State{Status: StatusReady, Text: text, Token: token, Result: &res}
		if c.cache != nil {
			c.cache.Add(text, res)
		}
	}
	st = c.state
	c.mu.Unlock()

	if err != nil && !errors.Is(err, context.Canceled) {
		c.l.Warnf(ctx, "interpret.settle.InterpretText: %v", err)
	}
	c.notify(st)
}

func (c *Controller) notify(st State) {
	for _, f := range c.onChange {
		f(st)
	}
}
