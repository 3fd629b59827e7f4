// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package watch

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sys/unix"
)

func TestExhaustsWatcher(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "watch limit", err: unix.ENOSPC, want: true},
		{name: "process descriptors", err: unix.EMFILE, want: true},
		{name: "system descriptors", err: unix.ENFILE, want: true},
		{name: "wrapped watch limit", err: fmt.Errorf("add %q: %w", "AddOns/Foo", unix.ENOSPC), want: true},
		{name: "permission denied", err: unix.EACCES, want: false},
		{name: "event overflow", err: fsnotify.ErrEventOverflow, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exhaustsWatcher(tt.err); got != tt.want {
				t.Errorf("exhaustsWatcher(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
