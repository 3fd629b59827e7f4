// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"fmt"
	"strconv"
	"strings"
)

// Recognized metadata fields. AddOnVersion and AddonVersion are two
// spellings of the same key.
const (
	FieldTitle             Field = "Title"
	FieldVersion           Field = "Version"
	FieldDescription       Field = "Description"
	FieldAPIVersion        Field = "APIVersion"
	FieldAuthor            Field = "Author"
	FieldAddOnVersion      Field = "AddOnVersion"
	FieldAddonVersion      Field = "AddonVersion"
	FieldDependsOn         Field = "DependsOn"
	FieldPCDependsOn       Field = "PCDependsOn"
	FieldConsoleDependsOn  Field = "ConsoleDependsOn"
	FieldOptionalDependsOn Field = "OptionalDependsOn"
	FieldSavedVariables    Field = "SavedVariables"
	FieldIsLibrary         Field = "IsLibrary"
	FieldIntVersion        Field = "IntVersion"
)

type (
	// Field is the name of a metadata field as written in a manifest.
	Field string

	// applyFunc writes a parsed value into the record. It must leave the
	// record untouched when it returns an error.
	applyFunc func(r *Record, value string) error
)

var fieldTable = map[Field]applyFunc{
	FieldTitle: func(r *Record, v string) error {
		r.Title = ptr(StripColors(v))
		return nil
	},
	FieldVersion: func(r *Record, v string) error {
		r.Version = ptr(v)
		return nil
	},
	FieldDescription: func(r *Record, v string) error {
		r.Description = ptr(v)
		return nil
	},
	FieldAPIVersion: func(r *Record, v string) error {
		tokens := strings.Fields(v)
		versions := make([]int, 0, len(tokens))
		for _, tok := range tokens {
			n, err := strconv.Atoi(tok)
			if err != nil {
				return fmt.Errorf("%q is not an integer", tok)
			}
			versions = append(versions, n)
		}
		r.APIVersions = versions
		return nil
	},
	FieldAuthor: func(r *Record, v string) error {
		r.Author = ptr(StripColors(v))
		return nil
	},
	FieldAddOnVersion: setAddonVersion,
	FieldAddonVersion: setAddonVersion,
	FieldDependsOn: func(r *Record, v string) error {
		r.DependsOn = strings.Fields(v)
		return nil
	},
	FieldPCDependsOn: func(r *Record, v string) error {
		r.PCDependsOn = strings.Fields(v)
		return nil
	},
	FieldConsoleDependsOn: func(r *Record, v string) error {
		r.ConsoleDependsOn = strings.Fields(v)
		return nil
	},
	FieldOptionalDependsOn: func(r *Record, v string) error {
		r.OptionalDependsOn = strings.Fields(v)
		return nil
	},
	FieldSavedVariables: func(r *Record, v string) error {
		r.SavedVariables = strings.Fields(v)
		return nil
	},
	FieldIsLibrary: func(r *Record, v string) error {
		r.IsLibrary = v == "true"
		return nil
	},
	FieldIntVersion: func(r *Record, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%q is not an integer", v)
		}
		r.IntVersion = &n
		return nil
	},
}

// String returns the field name.
func (f Field) String() string { return string(f) }

// IsKnown reports whether f is one of the recognized fields.
func (f Field) IsKnown() bool {
	_, ok := fieldTable[f]
	return ok
}

// Apply writes value into r under field. Unknown fields and values that do
// not parse return a *LineError and leave r unchanged.
func Apply(r *Record, field Field, value string) error {
	if !field.IsKnown() {
		return &LineError{Kind: ErrUnknownField, Field: field}
	}
	if err := fieldTable[field](r, value); err != nil {
		return &LineError{Kind: ErrInvalidValue, Field: field, Cause: err}
	}
	return nil
}

func setAddonVersion(r *Record, v string) error {
	r.AddonVersion = ptr(v)
	return nil
}

func ptr[T any](v T) *T { return &v }
