package selection

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrUnknownTask    = errors.New("task is not in the collection")
	ErrPartialFailure = errors.New("bulk operation partially failed")
	ErrBulkFailed     = errors.New("bulk operation failed")
)

// BulkError reports the members of a bulk operation that failed.
// errors.Is matches ErrPartialFailure or ErrBulkFailed, and any member error.
type BulkError struct {
	Op     Op
	Total  int
	Failed []int64
	Errors map[int64]error
}

func (e *BulkError) Error() string {
	return fmt.Sprintf("bulk %s: %d of %d failed", e.Op, len(e.Failed), e.Total)
}

func (e *BulkError) Is(target error) bool {
	switch target {
	case ErrPartialFailure:
		return len(e.Failed) > 0 && len(e.Failed) < e.Total
	case ErrBulkFailed:
		return len(e.Failed) > 0 && len(e.Failed) == e.Total
	}
	return false
}

func (e *BulkError) Unwrap() []error {
	ids := slices.Clone(e.Failed)
	slices.Sort(ids)
	errs := make([]error, 0, len(ids))
	for _, id := range ids {
		errs = append(errs, e.Errors[id])
	}
	return errs
}
