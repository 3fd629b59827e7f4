// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package watch

import (
	"errors"

	"golang.org/x/sys/unix"
)

// exhaustsWatcher reports whether err means the kernel refused further
// watches. A large AddOns folder can hit fs.inotify.max_user_watches (ENOSPC)
// or the descriptor limits (EMFILE, ENFILE); none of these clear up on their
// own while the watcher is running.
func exhaustsWatcher(err error) bool {
	for _, errno := range []unix.Errno{unix.ENOSPC, unix.EMFILE, unix.ENFILE} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}
