package repository

import (
	"errors"
	"fmt"
)

// Error kinds returned (wrapped in *GatewayError) by every Gateway implementation.
var (
	ErrValidation           = errors.New("validation error")
	ErrNotFound             = errors.New("not found")
	ErrTimeout              = errors.New("timeout")
	ErrNetworkUnreachable   = errors.New("network unreachable")
	ErrServer               = errors.New("server error")
	ErrInterpretationFailed = errors.New("interpretation failed")

	// ErrCanceled marks a call abandoned by its caller; it says nothing about the remote side.
	ErrCanceled = errors.New("request canceled")
)

// GatewayError describes a failed remote call. errors.Is matches both Kind and Cause.
type GatewayError struct {
	Op         string // e.g. "UpdateTask"
	TaskID     int64  // zero when the call is not about a single task
	StatusCode int    // zero when no response was received
	Kind       error  // one of the Err* sentinels above
	Cause      error
}

func (e *GatewayError) Error() string {
	var target string
	if e.TaskID != 0 {
		target = fmt.Sprintf(" task %d", e.TaskID)
	}
	var status string
	if e.StatusCode != 0 {
		status = fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s%s: %v%s: %v", e.Op, target, e.Kind, status, e.Cause)
	}
	return fmt.Sprintf("%s%s: %v%s", e.Op, target, e.Kind, status)
}

func (e *GatewayError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// IsTransient reports whether err is a timeout or network failure the caller may offer to retry.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrNetworkUnreachable)
}

// KindOf returns the taxonomy sentinel carried by err, or nil when err is not classified.
func KindOf(err error) error {
	for _, kind := range []error{
		ErrValidation, ErrNotFound, ErrTimeout, ErrNetworkUnreachable, ErrServer, ErrInterpretationFailed, ErrCanceled,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
