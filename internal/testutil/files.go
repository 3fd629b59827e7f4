// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// MustChdir switches the working directory to dir and returns a func that
// switches back.
func MustChdir(t testing.TB, dir string) func() {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	return func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("chdir back to %s: %v", prev, err)
		}
	}
}

// MustWriteFile writes content to root/rel, creating parent directories, and
// returns the full path. rel uses forward slashes on every platform.
func MustWriteFile(t testing.TB, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// MustWriteManifest writes root/folder/name.txt from the given manifest
// lines, one per line, and returns its path.
func MustWriteManifest(t testing.TB, root, folder, name string, lines ...string) string {
	t.Helper()
	return MustWriteFile(t, root, folder+"/"+name+".txt", strings.Join(lines, "\n")+"\n")
}
