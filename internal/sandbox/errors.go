package sandbox

import "fmt"

// NotAuthorizedError is returned when a path resolves outside every allowed root.
type NotAuthorizedError struct {
	Path string
}

func (e *NotAuthorizedError) Error() string {
	return fmt.Sprintf("not authorized: %q is outside the allowed directories", e.Path)
}
