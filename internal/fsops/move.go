package fsops

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Move renames a file or directory. Both endpoints are authorized
// independently. An existing destination is a *ConflictError and leaves both
// sides untouched. When a plain rename fails because src and dst live on
// different filesystems, regular files fall back to copy-then-remove.
func (o *Ops) Move(src, dst string) error {
	if err := o.guard.Check(src); err != nil {
		return err
	}
	if err := o.guard.Check(dst); err != nil {
		return err
	}

	if _, err := os.Lstat(dst); err == nil {
		return &ConflictError{Path: dst}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", dst, err)
	}

	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		if info, statErr := os.Stat(src); statErr == nil && info.Mode().IsRegular() {
			if copyErr := copyFile(src, dst, info.Mode().Perm()); copyErr == nil {
				return os.Remove(src)
			}
		}
	}
	return fmt.Errorf("move %s to %s: %w", src, dst, err)
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
