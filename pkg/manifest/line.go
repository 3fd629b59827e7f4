// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	// MetadataPrefix starts every metadata line.
	MetadataPrefix = "##"
	// CommentPrefix starts a comment line.
	CommentPrefix = ";"
)

var (
	// ErrBadFormat is wrapped by LineError when a line does not follow "## Field: value".
	ErrBadFormat = errors.New("bad format for metadata line")
	// ErrUnknownField is wrapped by LineError when the field name is not recognized.
	ErrUnknownField = errors.New("unknown metadata field")
	// ErrInvalidValue is wrapped by LineError when a numeric field does not parse.
	ErrInvalidValue = errors.New("invalid value for metadata field")

	metadataLine = regexp.MustCompile(`^\s*##\s*([\p{L}\p{N}_]*):\s*(.*)$`)
)

// LineError describes why a metadata line contributed nothing to a record.
// Its message is what ends up in Record.Errors.
type LineError struct {
	// Kind is one of ErrBadFormat, ErrUnknownField or ErrInvalidValue.
	Kind error
	// Field is the parsed field name (empty for ErrBadFormat).
	Field Field
	// Line is the raw manifest line.
	Line string
	// Cause is the parse failure for ErrInvalidValue.
	Cause error
}

// Error implements the error interface.
func (e *LineError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrUnknownField):
		return fmt.Sprintf("%s `%s`: %s", e.Kind, e.Field, e.Line)
	case errors.Is(e.Kind, ErrInvalidValue):
		return fmt.Sprintf("%s `%s`: %v", e.Kind, e.Field, e.Cause)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Line)
	}
}

// Unwrap returns the kind sentinel and, when present, the underlying cause.
func (e *LineError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// IsMetadataLine reports whether line should be handed to ParseLine.
func IsMetadataLine(line string) bool {
	return strings.HasPrefix(line, MetadataPrefix)
}

// IsCommentLine reports whether line is a manifest comment.
func IsCommentLine(line string) bool {
	return strings.HasPrefix(line, CommentPrefix)
}

// ParseLine splits a metadata line into its field name and value. The value
// keeps any trailing content; only the whitespace after the colon is dropped.
// Whether the field is recognized is decided later by Apply.
func ParseLine(line string) (Field, string, error) {
	m := metadataLine.FindStringSubmatch(line)
	if m == nil {
		return "", "", &LineError{Kind: ErrBadFormat, Line: line}
	}
	return Field(m[1]), m[2], nil
}

// ApplyLine parses line and folds it into r. Any problem is appended to
// r.Errors and reported back; r is otherwise unchanged in that case.
func (r *Record) ApplyLine(line string) error {
	field, value, err := ParseLine(line)
	if err == nil {
		err = Apply(r, field, value)
	}
	if err != nil {
		var le *LineError
		if errors.As(err, &le) {
			le.Line = line
		}
		r.AddError(err.Error())
		return err
	}
	return nil
}
