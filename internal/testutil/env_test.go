// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"testing"
)

const probeKey = "ADDONSCAN_TESTUTIL_PROBE"

func TestMustSetenvRestoresUnset(t *testing.T) {
	t.Cleanup(MustUnsetenv(t, probeKey))

	restore := MustSetenv(t, probeKey, "first")
	if got := os.Getenv(probeKey); got != "first" {
		t.Fatalf("%s = %q", probeKey, got)
	}
	restore()
	if _, ok := os.LookupEnv(probeKey); ok {
		t.Errorf("%s still set after restore", probeKey)
	}
}

func TestMustUnsetenvRestoresValue(t *testing.T) {
	t.Cleanup(MustSetenv(t, probeKey, "kept"))

	restore := MustUnsetenv(t, probeKey)
	if _, ok := os.LookupEnv(probeKey); ok {
		t.Fatalf("%s still set", probeKey)
	}
	restore()
	if got := os.Getenv(probeKey); got != "kept" {
		t.Errorf("%s = %q after restore, want kept", probeKey, got)
	}
}

func TestSetHomeDir(t *testing.T) {
	key := homeEnvVar()
	orig, had := os.LookupEnv(key)
	dir := t.TempDir()

	t.Run("override", func(t *testing.T) {
		t.Cleanup(SetHomeDir(t, dir))
		if got := os.Getenv(key); got != dir {
			t.Errorf("%s = %q, want %q", key, got, dir)
		}
	})

	got, ok := os.LookupEnv(key)
	if ok != had || got != orig {
		t.Errorf("%s = %q (set=%v) after cleanup, want %q (set=%v)", key, got, ok, orig, had)
	}
}
