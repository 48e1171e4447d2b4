//go:build !windows

package doctor

import "golang.org/x/sys/unix"

// freeBytes reports the bytes available to an unprivileged caller on the
// filesystem holding dir.
func freeBytes(dir string) (uint64, bool) {
	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return 0, false
	}
	return stat.Bavail * uint64(stat.Bsize), true
}
