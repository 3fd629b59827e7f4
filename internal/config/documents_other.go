// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// platformDocumentsDir honours XDG_DOCUMENTS_DIR, which Linux desktops export
// from user-dirs.dirs, and falls back to ~/Documents.
func platformDocumentsDir() (string, error) {
	if dir := os.Getenv("XDG_DOCUMENTS_DIR"); dir != "" {
		return expandHome(dir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, "Documents"), nil
}

// expandHome resolves the $HOME prefix used in user-dirs.dirs entries.
func expandHome(dir string) (string, error) {
	rest, ok := strings.CutPrefix(dir, "$HOME")
	if !ok {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, rest), nil
}
