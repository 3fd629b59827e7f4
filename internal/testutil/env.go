// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"runtime"
	"testing"
)

// MustSetenv sets key to value and returns a func restoring the previous
// state, unsetting key if it was not set before.
func MustSetenv(t testing.TB, key, value string) func() {
	t.Helper()
	restore := snapshotEnv(t, key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("setenv %s: %v", key, err)
	}
	return restore
}

// MustUnsetenv unsets key and returns a func restoring its previous value.
func MustUnsetenv(t testing.TB, key string) func() {
	t.Helper()
	restore := snapshotEnv(t, key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unsetenv %s: %v", key, err)
	}
	return restore
}

// SetHomeDir points the user home at dir: USERPROFILE on Windows, HOME
// elsewhere. Pair it with t.Cleanup.
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()
	return MustSetenv(t, homeEnvVar(), dir)
}

func homeEnvVar() string {
	if runtime.GOOS == "windows" {
		return "USERPROFILE"
	}
	return "HOME"
}

func snapshotEnv(t testing.TB, key string) func() {
	old, had := os.LookupEnv(key)
	return func() {
		var err error
		if had {
			err = os.Setenv(key, old)
		} else {
			err = os.Unsetenv(key)
		}
		if err != nil {
			t.Errorf("restore env %s: %v", key, err)
		}
	}
}
