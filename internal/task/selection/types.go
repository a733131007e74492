package selection

// Op names a bulk mutation.
type Op string

const (
	OpDelete        Op = "delete"
	OpSetCompletion Op = "set_completion"
	OpSetPriority   Op = "set_priority"
	OpSetCategory   Op = "set_category"
)

// DefaultConcurrency caps the number of in-flight calls of one bulk operation.
const DefaultConcurrency = 8

// State is a snapshot of the selection.
type State struct {
	Mode bool    // selection mode
	IDs  []int64 // sorted ascending
}

// Has reports whether id is selected.
func (s State) Has(id int64) bool {
	for _, v := range s.IDs {
		if v == id {
			return true
		}
	}
	return false
}

// BulkResult is the settled outcome of every member of a bulk operation.
// Succeeded and Failed keep the order the ids were requested in.
type BulkResult struct {
	Op        Op
	Succeeded []int64
	Failed    []int64
	Errors    map[int64]error
}

// Err returns nil when every member succeeded, otherwise a *BulkError.
func (r BulkResult) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	return &BulkError{
		Op:     r.Op,
		Total:  len(r.Succeeded) + len(r.Failed),
		Failed: r.Failed,
		Errors: r.Errors,
	}
}
