package fsops

import (
	"fmt"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Edit performs an exact-substring search and replace over the whole file.
// Every non-overlapping occurrence of oldStr is replaced; oldStr not
// occurring at all is not an error, the content simply stays as it was.
//
// With dryRun set, Edit returns a unified diff of the would-be change and
// leaves the file untouched (an empty string when nothing would change).
// Otherwise the file is overwritten in full and "File edited" is returned.
// There is no backup or rollback around the overwrite; a failed write leaves
// whatever the platform's full-file write left behind.
func (o *Ops) Edit(path, oldStr, newStr string, dryRun bool) (string, error) {
	if err := o.guard.Check(path); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	before := string(data)
	after := strings.ReplaceAll(before, oldStr, newStr)

	if dryRun {
		return unifiedDiff(before, after)
	}

	if err := os.WriteFile(path, []byte(after), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return "File edited", nil
}

// unifiedDiff renders a line-based unified diff from before to after with
// the conventional three lines of context. Identical inputs produce an
// empty string (no hunks, no header).
func unifiedDiff(before, after string) (string, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "before",
		ToFile:   "after",
		Context:  3,
	})
	if err != nil {
		return "", fmt.Errorf("compute diff: %w", err)
	}
	return diff, nil
}
