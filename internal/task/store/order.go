package store

import (
	"cmp"

	"smart-todo-client/internal/model"
)

// Compare orders tasks the way the remote service lists them: priority high to low,
// then due date soonest first with undated tasks last, then newest first.
func Compare(a, b model.Task) int {
	if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
		return c
	}
	switch {
	case a.Due != nil && b.Due != nil:
		if c := a.Due.Compare(*b.Due); c != 0 {
			return c
		}
	case a.Due != nil:
		return -1
	case b.Due != nil:
		return 1
	}
	return b.CreatedAt.Compare(a.CreatedAt)
}
