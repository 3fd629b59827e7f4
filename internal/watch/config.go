// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// defaultDebounce applies when Config.Debounce is not positive. Add-on
// managers extract archives file by file, so one install is a burst of events.
const defaultDebounce = 500 * time.Millisecond

var (
	// ManifestPatterns select the files that can hold add-on manifests.
	ManifestPatterns = []string{"**/*.txt", "**/*.addon"}

	// defaultIgnores are editor and OS metadata files. Hidden directories
	// are skipped separately, as the scanner never descends into them.
	defaultIgnores = []string{
		"**/*.swp",
		"**/*~",
		"**/.DS_Store",
	}

	// ErrInvalidWatchConfig is the sentinel wrapped by InvalidWatchConfigError.
	ErrInvalidWatchConfig = errors.New("invalid watch config")
)

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// BaseDir is the AddOns folder to watch. Empty means the working directory.
		BaseDir string

		// Patterns are doublestar globs, relative to BaseDir, that select the
		// files whose changes count. Empty means every non-ignored file.
		Patterns []string

		// Ignore adds doublestar globs to the built-in ignores.
		Ignore []string

		// Debounce is the quiet period after the last event before OnChange
		// runs. Zero or negative values use 500ms.
		Debounce time.Duration

		// ClearScreen writes an ANSI clear sequence to Stdout before each
		// OnChange call. Stdout is not checked for being a terminal.
		ClearScreen bool

		// OnChange receives the sorted, deduplicated paths (relative to
		// BaseDir) that changed during one debounce window. "." means the
		// whole tree must be rescanned.
		OnChange func(ctx context.Context, changed []string) error

		// Stdout and Stderr default to os.Stdout and os.Stderr.
		Stdout io.Writer
		Stderr io.Writer
	}

	// InvalidWatchConfigError collects the field errors of a Config.
	InvalidWatchConfigError struct {
		FieldErrors []error
	}
)

// Error implements the error interface.
func (e *InvalidWatchConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid watch config: %d field error(s): %s", len(e.FieldErrors), strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidWatchConfig for errors.Is() compatibility.
func (e *InvalidWatchConfigError) Unwrap() error { return ErrInvalidWatchConfig }

// Validate checks that every pattern is a non-empty doublestar glob and that
// BaseDir, when set, is not blank. All problems are reported together.
func (c Config) Validate() error {
	var errs []error
	errs = append(errs, patternErrors(c.Patterns, "watch")...)
	errs = append(errs, patternErrors(c.Ignore, "ignore")...)
	if c.BaseDir != "" && strings.TrimSpace(c.BaseDir) == "" {
		errs = append(errs, fmt.Errorf("base directory %q is blank", c.BaseDir))
	}
	if len(errs) > 0 {
		return &InvalidWatchConfigError{FieldErrors: errs}
	}
	return nil
}

// DefaultIgnores returns a copy of the built-in ignore patterns.
func DefaultIgnores() []string {
	return append([]string(nil), defaultIgnores...)
}

func patternErrors(patterns []string, label string) []error {
	var errs []error
	for i, pat := range patterns {
		if strings.TrimSpace(pat) == "" {
			errs = append(errs, fmt.Errorf("%s pattern %d is empty", label, i))
			continue
		}
		if !doublestar.ValidatePattern(pat) {
			errs = append(errs, fmt.Errorf("invalid %s pattern %q", label, pat))
		}
	}
	return errs
}

// anyMatch reports whether rel, a slash-separated path, matches a pattern.
func anyMatch(patterns []string, rel string) bool {
	for _, pat := range patterns {
		if ok, err := doublestar.Match(pat, rel); err == nil && ok {
			return true
		}
	}
	return false
}
