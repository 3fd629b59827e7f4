// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrInvalidFilesystemPath is wrapped by InvalidFilesystemPathError.
var ErrInvalidFilesystemPath = errors.New("invalid filesystem path")

type (
	// FilesystemPath is a native path to a manifest or add-on folder. The
	// zero value is invalid.
	FilesystemPath string

	// InvalidFilesystemPathError reports a blank FilesystemPath.
	InvalidFilesystemPathError struct {
		Value FilesystemPath
	}
)

func (p FilesystemPath) String() string { return string(p) }

// Validate rejects empty and whitespace-only paths.
func (p FilesystemPath) Validate() error {
	if strings.TrimSpace(string(p)) == "" {
		return &InvalidFilesystemPathError{Value: p}
	}
	return nil
}

// Base is filepath.Base of p: the manifest file name or add-on folder name.
func (p FilesystemPath) Base() string { return filepath.Base(string(p)) }

// Dir is filepath.Dir of p: the folder holding a manifest.
func (p FilesystemPath) Dir() FilesystemPath { return FilesystemPath(filepath.Dir(string(p))) }

func (e *InvalidFilesystemPathError) Error() string {
	return fmt.Sprintf("invalid filesystem path %q: must be non-empty", e.Value)
}

func (e *InvalidFilesystemPathError) Unwrap() error { return ErrInvalidFilesystemPath }
