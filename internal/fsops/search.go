package fsops

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Search matches files and directories under path by glob pattern. Patterns
// are relative to path and support doublestar (**) recursion. Matches come
// back as full paths, sorted.
func (o *Ops) Search(path, pattern string) ([]string, error) {
	if err := o.guard.Check(path); err != nil {
		return nil, err
	}

	matches, err := doublestar.Glob(os.DirFS(path), pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	results := make([]string, 0, len(matches))
	for _, m := range matches {
		results = append(results, filepath.Join(path, filepath.FromSlash(m)))
	}
	sort.Strings(results)
	return results, nil
}
