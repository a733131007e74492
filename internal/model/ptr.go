package model

// Ptr returns a pointer to v. Handy for building Filters and TaskPatch values.
func Ptr[T any](v T) *T {
	return &v
}
