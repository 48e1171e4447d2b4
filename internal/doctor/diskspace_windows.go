//go:build windows

package doctor

import "golang.org/x/sys/windows"

func freeBytes(dir string) (uint64, bool) {
	var avail, total, totalFree uint64
	path, err := windows.UTF16PtrFromString(dir)
	if err != nil {
		return 0, false
	}
	if err := windows.GetDiskFreeSpaceEx(path, &avail, &total, &totalFree); err != nil {
		return 0, false
	}
	return avail, true
}
