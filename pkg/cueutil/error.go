// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

// ValidationError locates one CUE error inside a user file.
type ValidationError struct {
	FilePath string
	// CUEPath is the JSON-style path of the bad value, e.g. "exclude[0]".
	CUEPath string
	Message string
}

func (e *ValidationError) Error() string {
	if e.CUEPath == "" {
		return e.FilePath + ": " + e.Message
	}
	return e.FilePath + ": " + e.CUEPath + ": " + e.Message
}

// FormatError rewrites err for display against filePath. One CUE error
// becomes a *ValidationError; several are listed one per line under a
// single error. Errors that carry no CUE detail are wrapped with filePath.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	list := errors.Errors(err)
	if len(list) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	found := make([]*ValidationError, len(list))
	for i, e := range list {
		found[i] = toValidationError(e, filePath)
	}
	if len(found) == 1 {
		return found[0]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: validation failed:", filePath)
	for _, ve := range found {
		b.WriteString("\n  ")
		if ve.CUEPath != "" {
			b.WriteString(ve.CUEPath + ": ")
		}
		b.WriteString(ve.Message)
	}
	return errors.New(b.String())
}

func toValidationError(e errors.Error, filePath string) *ValidationError {
	path := jsonPath(errors.Path(e))
	format, args := e.Msg()
	msg := fmt.Sprintf(format, args...)
	// CUE sometimes repeats the path at the start of the message.
	if path != "" {
		if rest, ok := strings.CutPrefix(msg, path); ok {
			msg = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
		}
	}
	return &ValidationError{FilePath: filePath, CUEPath: path, Message: msg}
}

// jsonPath joins CUE path selectors, writing list indices in brackets:
// ["watch", "debounce"] is "watch.debounce" and ["exclude", "0"] is
// "exclude[0]".
func jsonPath(selectors []string) string {
	var b strings.Builder
	for i, sel := range selectors {
		switch {
		case i > 0 && sel != "" && strings.Trim(sel, "0123456789") == "":
			b.WriteString("[" + sel + "]")
		case i > 0:
			b.WriteString("." + sel)
		default:
			b.WriteString(sel)
		}
	}
	return b.String()
}

// CheckFileSize rejects data larger than maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if size := int64(len(data)); size > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", filename, size, maxSize)
	}
	return nil
}
