// Package fsops implements the sandboxed filesystem operations. Every
// operation checks each of its path arguments against the sandbox guard
// before any I/O happens; a denied path aborts the whole call.
package fsops

import (
	"fmt"

	"github.com/neboloop/fsgate/internal/sandbox"
)

// Ops provides the filesystem operation surface over a sandbox guard.
type Ops struct {
	guard *sandbox.Guard
}

// New creates an Ops bound to the given guard.
func New(guard *sandbox.Guard) *Ops {
	return &Ops{guard: guard}
}

// AllowedRoots returns the resolved allow-list. This reports configuration,
// so it is the one operation that takes no path and needs no check.
func (o *Ops) AllowedRoots() []string {
	return o.guard.Roots()
}

// ConflictError is returned by Move when the destination already exists.
type ConflictError struct {
	Path string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("destination %q already exists", e.Path)
}
