// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper.
//
// Configuration is read from a CUE file (config.cue) in the platform config
// directory or the current directory, validated against the embedded
// config_schema.cue definition, layered over built-in defaults and finally
// overridden by ADDONSCAN_* environment variables.
//
// The package also resolves where the game keeps its add-ons: the user's
// Documents folder (a Known Folder on Windows) joined with the game variant.
package config
