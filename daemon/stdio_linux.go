package daemon

import (
	"golang.org/x/sys/unix"
)

// dup2 is missing on linux/arm64
func dupTo(oldfd, newfd int) error {
	return unix.Dup3(oldfd, newfd, 0)
}
