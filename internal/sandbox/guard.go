// Package sandbox enforces the path containment boundary. Every filesystem
// operation must pass a candidate path through Guard.Check before touching
// the OS; a path is allowed only if its fully resolved form equals one of the
// configured roots or sits below one.
package sandbox

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Guard holds the resolved allow-list. The root set is fixed at construction
// and never mutated, so a single Guard is safe for concurrent use.
type Guard struct {
	roots []string
}

// NewGuard resolves each configured root once (absolute form, symlinks
// eliminated) and returns a Guard over them. An empty root list is valid and
// means no path is authorized.
func NewGuard(roots []string) (*Guard, error) {
	resolved := make([]string, 0, len(roots))
	for _, root := range roots {
		r, err := Canonicalize(root)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, r)
	}
	return &Guard{roots: resolved}, nil
}

// Roots returns a copy of the resolved allow-list.
func (g *Guard) Roots() []string {
	out := make([]string, len(g.roots))
	copy(out, g.roots)
	return out
}

// Check resolves the candidate path and returns nil if it equals an allowed
// root or has one as an ancestor, or a *NotAuthorizedError otherwise.
//
// The candidate is re-resolved on every call: symlinks can change between
// invocations, so caching a decision would let a later swap escape the
// sandbox.
func (g *Guard) Check(path string) error {
	resolved, err := Canonicalize(path)
	if err != nil {
		return err
	}
	for _, root := range g.roots {
		if pathMatchesOrIsInside(resolved, root) {
			return nil
		}
	}
	return &NotAuthorizedError{Path: path}
}

// pathMatchesOrIsInside returns true if path equals root or is inside it.
// The separator is appended before the prefix test so that a sibling like
// /sandbox2 does not match the root /sandbox.
func pathMatchesOrIsInside(path, root string) bool {
	if path == root {
		return true
	}
	return strings.HasPrefix(path, root+string(filepath.Separator))
}

// maxLinkDepth bounds how many symlinks a single resolution may follow,
// mirroring the kernel's own limit.
const maxLinkDepth = 40

// Canonicalize resolves a path to absolute form with symlinks and relative
// segments eliminated. For a path that does not exist yet (e.g. the target of
// a pending write), the nearest existing ancestor is resolved and the
// remaining components are joined back on one at a time, each checked for
// being a symlink itself, so neither a symlinked parent nor a dangling link
// can point the result outside the sandbox.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return canonicalize(abs, 0)
}

func canonicalize(abs string, depth int) (string, error) {
	if depth > maxLinkDepth {
		return "", fmt.Errorf("%s: too many levels of symbolic links", abs)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	dir := abs
	var rest []string
	for {
		parent := filepath.Dir(dir)
		rest = append([]string{filepath.Base(dir)}, rest...)
		if parent == dir {
			// Walked all the way up without finding an existing ancestor.
			return abs, nil
		}
		resolved, err := filepath.EvalSymlinks(parent)
		if err == nil {
			return rejoin(resolved, rest, depth)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		dir = parent
	}
}

// rejoin appends the unresolved trailing components onto the resolved
// ancestor one at a time. A component can still exist as a dangling symlink
// (its missing target is what made EvalSymlinks give up); such a link is
// followed rather than kept by name, so the result reflects where a write
// through it would actually land.
func rejoin(base string, rest []string, depth int) (string, error) {
	for i, name := range rest {
		next := filepath.Join(base, name)
		info, err := os.Lstat(next)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// Nothing past here exists; the remainder is purely lexical.
				return filepath.Join(append([]string{base}, rest[i:]...)...), nil
			}
			return "", err
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			target, err := os.Readlink(next)
			if err != nil {
				return "", err
			}
			if !filepath.IsAbs(target) {
				target = filepath.Join(base, target)
			}
			return canonicalize(filepath.Join(append([]string{target}, rest[i+1:]...)...), depth+1)
		}
		base = next
	}
	return base, nil
}
