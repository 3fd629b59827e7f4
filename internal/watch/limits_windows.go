// SPDX-License-Identifier: MPL-2.0

//go:build windows

package watch

import (
	"errors"

	"golang.org/x/sys/windows"
)

// exhaustsWatcher reports whether err leaves ReadDirectoryChangesW unusable:
// the handle limit was hit, the watched folder's handle went away (for
// example when the Documents folder is redirected), or the notification
// buffer could not be allocated.
func exhaustsWatcher(err error) bool {
	for _, errno := range []windows.Errno{
		windows.ERROR_TOO_MANY_OPEN_FILES,
		windows.ERROR_INVALID_HANDLE,
		windows.ERROR_NOT_ENOUGH_MEMORY,
	} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}
