// SPDX-License-Identifier: MPL-2.0

//go:build windows

package config

import (
	"fmt"

	"golang.org/x/sys/windows"
)

func platformDocumentsDir() (string, error) {
	dir, err := windows.KnownFolderPath(windows.FOLDERID_Documents, windows.KF_FLAG_DEFAULT)
	if err != nil {
		return "", fmt.Errorf("failed to resolve Documents known folder: %w", err)
	}
	return dir, nil
}
