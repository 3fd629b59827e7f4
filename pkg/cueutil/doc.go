// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates user CUE files against embedded schemas.
//
//	//go:embed config_schema.cue
//	var configSchema string
//
//	m, err := cueutil.DecodeString[map[string]any](configSchema, data, "#Config",
//		cueutil.WithFilename("config.cue"))
//
// Errors carry the file name and the JSON path of the offending value, for
// example "config.cue: watch.debounce: invalid value".
package cueutil
