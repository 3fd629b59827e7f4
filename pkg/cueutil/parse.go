// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Decode checks data against the definition def of schema and decodes the
// unified value into a T. Errors inside data name opts' filename and the
// offending CUE path. Errors in schema itself are reported as internal.
func Decode[T any](schema, data []byte, def string, opts ...Option) (T, error) {
	var out T

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.filename == "" {
		o.filename = "<input>"
	}

	if err := CheckFileSize(data, o.maxFileSize, o.filename); err != nil {
		return out, err
	}

	cctx := cuecontext.New()
	definition, err := lookupDefinition(cctx, schema, def)
	if err != nil {
		return out, err
	}

	user := cctx.CompileBytes(data, cue.Filename(o.filename))
	if err := user.Err(); err != nil {
		return out, FormatError(err, o.filename)
	}

	unified := definition.Unify(user)
	var validateOpts []cue.Option
	if o.concrete {
		validateOpts = append(validateOpts, cue.Concrete(true))
	}
	if err := unified.Validate(validateOpts...); err != nil {
		return out, FormatError(err, o.filename)
	}

	if err := unified.Decode(&out); err != nil {
		return out, FormatError(err, o.filename)
	}
	return out, nil
}

// DecodeString is Decode for a schema held in a string, as produced by
// //go:embed into a string variable.
func DecodeString[T any](schema string, data []byte, def string, opts ...Option) (T, error) {
	return Decode[T]([]byte(schema), data, def, opts...)
}

func lookupDefinition(cctx *cue.Context, schema []byte, def string) (cue.Value, error) {
	compiled := cctx.CompileBytes(schema)
	if err := compiled.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("internal error: compile schema: %w", err)
	}
	v := compiled.LookupPath(cue.ParsePath(def))
	if err := v.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s not found: %w", def, err)
	}
	return v, nil
}
