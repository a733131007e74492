package task

import "errors"

// Domain-specific errors for the task package.
var (
	ErrEmptyPatch   = errors.New("edit changes nothing")
	ErrNoSelection  = errors.New("no tasks selected")
	ErrTaskNotFound = errors.New("task not found")
)
