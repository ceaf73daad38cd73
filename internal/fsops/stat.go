package fsops

import (
	"fmt"
	"os"
	"time"
)

// PathInfo is the metadata record for a file or directory. Timestamps are
// seconds since the epoch with fractional precision.
type PathInfo struct {
	SizeInBytes int64   `json:"size_in_bytes"`
	CreatedAt   float64 `json:"created_at"`
	ModifiedAt  float64 `json:"modified_at"`
	AccessedAt  float64 `json:"accessed_at"`
	Type        string  `json:"type"` // "dir" or "file"

	// Permissions is the raw platform mode word (file type plus permission
	// bits, the st_mode convention) on platforms whose stat provides one;
	// elsewhere it degrades to bare permission bits.
	Permissions uint32 `json:"permissions"`
}

// GetPathInfo retrieves metadata for a file or directory.
func (o *Ops) GetPathInfo(path string) (*PathInfo, error) {
	if err := o.guard.Check(path); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	typ := "file"
	if info.IsDir() {
		typ = "dir"
	}
	mtime := timestamp(info.ModTime())
	pi := &PathInfo{
		SizeInBytes: info.Size(),
		CreatedAt:   mtime, // refined per platform below
		ModifiedAt:  mtime,
		AccessedAt:  mtime,
		Type:        typ,
		Permissions: uint32(info.Mode().Perm()),
	}
	platformStat(path, pi)
	return pi, nil
}

func timestamp(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
