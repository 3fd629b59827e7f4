// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"path/filepath"
	"strings"

	"github.com/addonscan/addonscan/pkg/types"
)

type (
	// Record is one discovered add-on package.
	//
	// Location fields and Errors are always set. Metadata fields stay nil until
	// the corresponding manifest line is parsed, which keeps "absent" and
	// "present but empty" distinguishable. The dependency lists default to
	// empty, non-nil slices.
	Record struct {
		// ManifestFilename is the manifest file name without its extension.
		ManifestFilename string `json:"manifest_filename" yaml:"manifest_filename" toml:"manifest_filename"`
		// ManifestPath is the absolute path to the manifest file.
		ManifestPath types.FilesystemPath `json:"manifest_path" yaml:"manifest_path" toml:"manifest_path"`
		// RootPath is the absolute path of the directory holding the manifest.
		RootPath types.FilesystemPath `json:"root_path" yaml:"root_path" toml:"root_path"`
		// RelativePath is RootPath relative to the scan root.
		RelativePath string `json:"relative_path" yaml:"relative_path" toml:"relative_path"`
		// Bundled is true when the add-on folder is nested inside another
		// folder instead of sitting directly under the scan root.
		Bundled bool `json:"bundled" yaml:"bundled" toml:"bundled"`

		Title        *string `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
		Version      *string `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
		Description  *string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
		Author       *string `json:"author,omitempty" yaml:"author,omitempty" toml:"author,omitempty"`
		AddonVersion *string `json:"addon_version,omitempty" yaml:"addon_version,omitempty" toml:"addon_version,omitempty"`
		IntVersion   *int    `json:"int_version,omitempty" yaml:"int_version,omitempty" toml:"int_version,omitempty"`
		// APIVersions is nil when no APIVersion line was parsed. JSON keeps
		// the distinction (null vs []); YAML and TOML omit both.
		APIVersions []int `json:"api_versions" yaml:"api_versions,omitempty" toml:"api_versions,omitempty"`

		DependsOn         []string `json:"depends_on" yaml:"depends_on" toml:"depends_on"`
		PCDependsOn       []string `json:"pc_depends_on" yaml:"pc_depends_on" toml:"pc_depends_on"`
		ConsoleDependsOn  []string `json:"console_depends_on" yaml:"console_depends_on" toml:"console_depends_on"`
		OptionalDependsOn []string `json:"optional_depends_on" yaml:"optional_depends_on" toml:"optional_depends_on"`
		SavedVariables    []string `json:"saved_variables" yaml:"saved_variables" toml:"saved_variables"`
		IsLibrary         bool     `json:"is_library" yaml:"is_library" toml:"is_library"`

		// Errors accumulates parse-time problems. It is never cleared.
		Errors []string `json:"errors" yaml:"errors" toml:"errors"`

		// OK is the validation verdict, set once after the scan completes.
		OK bool `json:"ok" yaml:"ok" toml:"ok"`
		// FailedChecks names the validation checks that did not pass.
		FailedChecks []string `json:"failed_checks,omitempty" yaml:"failed_checks,omitempty" toml:"failed_checks,omitempty"`
	}
)

// NewRecord seeds a Record for the manifest at path. The path must be absolute.
func NewRecord(path types.FilesystemPath) *Record {
	name := path.Base()
	return &Record{
		ManifestFilename:  strings.TrimSuffix(name, filepath.Ext(name)),
		ManifestPath:      path,
		RootPath:          path.Dir(),
		DependsOn:         []string{},
		PCDependsOn:       []string{},
		ConsoleDependsOn:  []string{},
		OptionalDependsOn: []string{},
		SavedVariables:    []string{},
		Errors:            []string{},
	}
}

// AddError appends a problem description to the record.
func (r *Record) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// FolderName returns the name of the directory holding the manifest.
func (r *Record) FolderName() string {
	return r.RootPath.Base()
}

// DisplayTitle returns the title, or an empty string when none was parsed.
func (r *Record) DisplayTitle() string {
	if r.Title == nil {
		return ""
	}
	return *r.Title
}

// DisplayAuthor returns the author, or an empty string when none was parsed.
func (r *Record) DisplayAuthor() string {
	if r.Author == nil {
		return ""
	}
	return *r.Author
}
