package interpret

import (
	"context"
	"time"

	"smart-todo-client/internal/model"
)

// Status is the controller's state-machine position.
type Status int

const (
	StatusIdle    Status = iota // no text worth interpreting
	StatusPending               // quiet-period timer running
	StatusWaiting               // request issued, response outstanding
	StatusReady                 // result available for the current text
	StatusFailed                // last request for the current text failed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusWaiting:
		return "waiting"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// State is a snapshot of the controller.
type State struct {
	Status Status
	Text   string
	// Token identifies the request cycle the state belongs to. It changes on every edit, clear and accept.
	Token  uint64
	Result *model.Interpretation // set only when Status is StatusReady
	Err    error                 // set only when Status is StatusFailed
}

// Interpreter is the part of the gateway the controller needs.
type Interpreter interface {
	InterpretText(ctx context.Context, text string) (model.Interpretation, error)
}

// Timer is a stoppable pending callback.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc is the default.
type AfterFunc func(d time.Duration, f func()) Timer

// Config tunes the controller.
type Config struct {
	QuietPeriod time.Duration
	MinLength   int
	CacheSize   int // zero disables the result cache
	CacheTTL    time.Duration
}

const (
	DefaultQuietPeriod = 500 * time.Millisecond
	DefaultMinLength   = 3
)
