// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"path/filepath"
)

const (
	// GameFolderName is the game's folder under the user's Documents.
	GameFolderName = "Elder Scrolls Online"
	// AddonsFolderName is the folder holding add-ons inside a variant folder.
	AddonsFolderName = "AddOns"
)

// DocumentsDir returns the user's Documents folder. On Windows this is the
// Documents Known Folder, which follows OneDrive and folder redirection.
func DocumentsDir() (string, error) {
	if documentsDirOverride != "" {
		return documentsDirOverride, nil
	}
	return platformDocumentsDir()
}

// AddonsDir returns <Documents>/Elder Scrolls Online/<variant>/AddOns.
func AddonsDir(variant GameVariant) (string, error) {
	if err := variant.Validate(); err != nil {
		return "", err
	}
	docs, err := DocumentsDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate Documents folder: %w", err)
	}
	return filepath.Join(docs, GameFolderName, string(variant), AddonsFolderName), nil
}

// ScanRoot picks the directory to scan: dirOverride when non-empty, then
// cfg.AddonsDir, then AddonsDir for variantOverride (or cfg.GameVariant when
// variantOverride is empty).
func ScanRoot(cfg *Config, dirOverride string, variantOverride GameVariant) (string, error) {
	if dirOverride != "" {
		return dirOverride, nil
	}
	if variantOverride == "" && cfg.AddonsDir != "" {
		return cfg.AddonsDir, nil
	}
	variant := cfg.GameVariant
	if variantOverride != "" {
		variant = variantOverride
	}
	return AddonsDir(variant)
}
