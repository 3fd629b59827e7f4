// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/addonscan/addonscan/internal/discovery"
	"github.com/addonscan/addonscan/internal/view"
	"github.com/addonscan/addonscan/pkg/manifest"
)

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
	formatTOML outputFormat = "toml"
)

var errInvalidFormat = errors.New("invalid output format")

type (
	// outputFormat selects how command results are written to stdout.
	outputFormat string

	// listOutput is the structured form of `addonscan list`.
	listOutput struct {
		Root        string                 `json:"root" yaml:"root" toml:"root"`
		View        view.View              `json:"view" yaml:"view" toml:"view"`
		Search      string                 `json:"search" yaml:"search" toml:"search"`
		Counts      map[string]int         `json:"counts" yaml:"counts" toml:"counts"`
		Records     []*manifest.Record     `json:"records" yaml:"records" toml:"records"`
		Diagnostics []discovery.Diagnostic `json:"diagnostics" yaml:"diagnostics" toml:"diagnostics"`
	}

	// checkOutput is the structured form of `addonscan check`.
	checkOutput struct {
		Root    string             `json:"root" yaml:"root" toml:"root"`
		Total   int                `json:"total" yaml:"total" toml:"total"`
		Invalid []*manifest.Record `json:"invalid" yaml:"invalid" toml:"invalid"`
	}

	// showOutput is the structured form of `addonscan show`.
	showOutput struct {
		Records []*manifest.Record `json:"records" yaml:"records" toml:"records"`
	}
)

// Validate returns an error when f is not a supported format.
func (f outputFormat) Validate() error {
	switch f {
	case formatText, formatJSON, formatYAML, formatTOML:
		return nil
	default:
		return fmt.Errorf("%w %q (valid: text, json, yaml, toml)", errInvalidFormat, string(f))
	}
}

// writeStructured encodes v to w in one of the machine-readable formats.
func writeStructured(w io.Writer, f outputFormat, v any) error {
	switch f {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case formatTOML:
		return toml.NewEncoder(w).Encode(v)
	default:
		return fmt.Errorf("%w %q for structured output", errInvalidFormat, string(f))
	}
}

// countsByName keys view counts by view name for encoding.
func countsByName(counts map[view.View]int) map[string]int {
	out := make(map[string]int, len(counts))
	for v, n := range counts {
		out[v.String()] = n
	}
	return out
}
