package drm

import (
	"golang.org/x/sys/unix"
)

// IsFDOpen returns true if fd refers to an open file description of this
// process.
func IsFDOpen(fd int) bool {
	if fd < 0 {
		return false
	}
	_, err := unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0)
	return err == nil
}
