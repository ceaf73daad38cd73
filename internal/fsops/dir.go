package fsops

import (
	"fmt"
	"os"
)

// Entry is one child of a listed directory.
type Entry struct {
	Name string `json:"name"`
	Type string `json:"type"` // "dir" or "file"
}

// ListDir lists the immediate children of a directory, tagging each as a
// directory or a file.
func (o *Ops) ListDir(path string) ([]Entry, error) {
	if err := o.guard.Check(path); err != nil {
		return nil, err
	}

	children, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}

	entries := make([]Entry, 0, len(children))
	for _, c := range children {
		typ := "file"
		if c.IsDir() {
			typ = "dir"
		}
		entries = append(entries, Entry{Name: c.Name(), Type: typ})
	}
	return entries, nil
}
