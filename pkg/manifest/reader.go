// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/addonscan/addonscan/pkg/types"
)

// TitleMarker must appear in a file for it to be treated as a manifest.
const TitleMarker = "## Title"

const (
	// SkipNone means the file produced a record.
	SkipNone SkipReason = iota
	// SkipUndecodable means the bytes are not UTF-8 text. Such files share the
	// manifest extensions (binary .addon payloads, UTF-16 readmes) and are
	// ignored without a diagnostic.
	SkipUndecodable
	// SkipNotManifest means the text lacks TitleMarker.
	SkipNotManifest
)

var (
	// manifestExtensions lists the file extensions that may hold a manifest.
	manifestExtensions = []string{".txt", ".addon"}

	// lineEndings folds CRLF and bare CR into LF before splitting.
	lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// SkipReason explains why ReadFile produced no record.
type SkipReason int

// String returns a short machine-readable name for the reason.
func (s SkipReason) String() string {
	switch s {
	case SkipNone:
		return "none"
	case SkipUndecodable:
		return "undecodable"
	case SkipNotManifest:
		return "not_a_manifest"
	default:
		return "unknown"
	}
}

// IsCandidate reports whether a file name carries a manifest extension.
// The comparison is case-sensitive.
func IsCandidate(name string) bool {
	for _, ext := range manifestExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Decode turns raw file bytes into text, dropping a leading UTF-8 byte-order
// mark. It returns false when the bytes are not valid UTF-8.
func Decode(data []byte) (string, bool) {
	if !utf8.Valid(data) {
		return "", false
	}
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return "", false
	}
	return string(out), true
}

// ReadFile reads the manifest candidate at path. A nil record comes with the
// SkipReason explaining why; I/O failures are returned as errors.
func ReadFile(path types.FilesystemPath) (*Record, SkipReason, error) {
	if err := path.Validate(); err != nil {
		return nil, SkipNone, err
	}
	abs, err := filepath.Abs(string(path))
	if err != nil {
		return nil, SkipNone, fmt.Errorf("failed to resolve manifest path: %w", err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, SkipNone, fmt.Errorf("failed to read manifest: %w", err)
	}

	content, ok := Decode(data)
	if !ok {
		return nil, SkipUndecodable, nil
	}
	if !strings.Contains(content, TitleMarker) {
		return nil, SkipNotManifest, nil
	}

	return Parse(types.FilesystemPath(abs), content), SkipNone, nil
}

// Parse builds a record for the manifest at path from already decoded
// content. The caller is responsible for the TitleMarker check.
func Parse(path types.FilesystemPath, content string) *Record {
	rec := NewRecord(path)
	for line := range strings.SplitSeq(lineEndings.Replace(content), "\n") {
		switch {
		case IsCommentLine(line):
			continue
		case IsMetadataLine(line):
			// Line problems are recorded on rec; the file keeps parsing.
			_ = rec.ApplyLine(line)
		}
	}
	return rec
}
