// SPDX-License-Identifier: MPL-2.0

package config

// Test hooks. os.UserHomeDir ignores HOME on some platforms, so tests point
// the lookups at temporary directories instead of faking the environment.
var (
	configDirOverride    string
	documentsDirOverride string
)

// Reset clears every override set by the Set*Override functions.
func Reset() {
	configDirOverride = ""
	documentsDirOverride = ""
}

// SetConfigDirOverride makes ConfigDir return dir.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// SetDocumentsDirOverride makes DocumentsDir return dir.
func SetDocumentsDirOverride(dir string) {
	documentsDirOverride = dir
}
