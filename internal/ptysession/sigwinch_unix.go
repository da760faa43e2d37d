//go:build unix

package ptysession

import (
	"os"
	"syscall"
)

func sigwinch() os.Signal {
	return syscall.SIGWINCH
}
