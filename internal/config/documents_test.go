// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/addonscan/addonscan/internal/testutil"
)

func TestAddonsDir(t *testing.T) {
	docs := t.TempDir()
	SetDocumentsDirOverride(docs)
	t.Cleanup(Reset)

	got, err := AddonsDir(GameVariantPTS)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(docs, "Elder Scrolls Online", "pts", "AddOns"); got != want {
		t.Errorf("AddonsDir() = %q, want %q", got, want)
	}

	if _, err := AddonsDir("beta"); !errors.Is(err, ErrInvalidGameVariant) {
		t.Errorf("AddonsDir(beta) error = %v", err)
	}
}

func TestScanRoot(t *testing.T) {
	docs := t.TempDir()
	SetDocumentsDirOverride(docs)
	t.Cleanup(Reset)

	live := filepath.Join(docs, "Elder Scrolls Online", "live", "AddOns")
	pts := filepath.Join(docs, "Elder Scrolls Online", "pts", "AddOns")

	tests := []struct {
		name      string
		addonsDir string
		dir       string
		variant   GameVariant
		want      string
	}{
		{"defaults", "", "", "", live},
		{"variant flag", "", "", GameVariantPTS, pts},
		{"configured dir", "/cfg/AddOns", "", "", "/cfg/AddOns"},
		{"dir flag wins", "/cfg/AddOns", "/flag", GameVariantPTS, "/flag"},
		{"variant flag beats configured dir", "/cfg/AddOns", "", GameVariantPTS, pts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.AddonsDir = tt.addonsDir
			got, err := ScanRoot(cfg, tt.dir, tt.variant)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ScanRoot() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDocumentsDir_Home(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Windows resolves the Documents known folder")
	}
	Reset()
	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))
	t.Cleanup(testutil.MustUnsetenv(t, "XDG_DOCUMENTS_DIR"))

	got, err := DocumentsDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, "Documents"); got != want {
		t.Errorf("DocumentsDir() = %q, want %q", got, want)
	}
}

func TestDocumentsDir_XDG(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Windows resolves the Documents known folder")
	}
	Reset()
	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))
	t.Cleanup(testutil.MustSetenv(t, "XDG_DOCUMENTS_DIR", "$HOME/Dokumente"))

	got, err := DocumentsDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, "Dokumente"); got != want {
		t.Errorf("DocumentsDir() = %q, want %q", got, want)
	}
}
