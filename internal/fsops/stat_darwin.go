//go:build darwin

package fsops

import "golang.org/x/sys/unix"

// platformStat fills in the fields the portable stat cannot provide:
// change/access times and the raw mode word.
func platformStat(path string, pi *PathInfo) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return
	}
	pi.CreatedAt = tsFloat(st.Ctimespec)
	pi.AccessedAt = tsFloat(st.Atimespec)
	pi.Permissions = uint32(st.Mode)
}

func tsFloat(ts unix.Timespec) float64 {
	return float64(ts.Sec) + float64(ts.Nsec)/1e9
}
