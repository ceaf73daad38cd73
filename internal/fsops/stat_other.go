//go:build !linux && !darwin

package fsops

// platformStat has nothing to add on platforms without a Stat_t we know;
// the portable mod time stands in for all three timestamps and Permissions
// stays at the bare permission bits.
func platformStat(path string, pi *PathInfo) {}
