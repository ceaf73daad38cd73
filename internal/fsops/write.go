package fsops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// WriteOutcome reports what WriteFile did.
type WriteOutcome string

const (
	WriteCreated     WriteOutcome = "File created"
	WriteOverwritten WriteOutcome = "File overwritten"
	WriteSkipped     WriteOutcome = "File exists, no action taken"
)

// WriteFile creates the file with the given content. If the file already
// exists it is overwritten only when overwrite is true; otherwise the
// existing content is left untouched and WriteSkipped is returned.
func (o *Ops) WriteFile(path, content string, overwrite bool) (WriteOutcome, error) {
	if err := o.guard.Check(path); err != nil {
		return "", err
	}

	exists := true
	if _, err := os.Lstat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
		exists = false
	}

	if exists && !overwrite {
		return WriteSkipped, nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if exists {
		return WriteOverwritten, nil
	}
	return WriteCreated, nil
}

// CreateDir creates a directory. With parents set, missing ancestors are
// created as well. With existOk unset, an already existing directory is an
// error.
func (o *Ops) CreateDir(path string, parents, existOk bool) error {
	if err := o.guard.Check(path); err != nil {
		return err
	}

	if parents {
		// MkdirAll is silent about an existing directory, so the existOk=false
		// case needs its own check.
		if !existOk {
			if _, err := os.Lstat(path); err == nil {
				return fmt.Errorf("mkdir %s: %w", path, fs.ErrExist)
			}
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", path, err)
		}
		return nil
	}

	err := os.Mkdir(path, 0o755)
	if err == nil {
		return nil
	}
	if existOk && errors.Is(err, fs.ErrExist) {
		if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
			return nil
		}
	}
	return fmt.Errorf("mkdir %s: %w", path, err)
}
