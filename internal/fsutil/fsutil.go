// SPDX-License-Identifier: MPL-2.0

// Package fsutil provides small filesystem helpers shared across enviz:
// the accessibility probe used by registry discovery, the author name
// resolver used by vault releases, and dotenv file loading for the
// run/shell environment assembly.
package fsutil

import (
	"os"
	"path/filepath"
)

// IsAccessible reports whether path exists and is readable by the current
// process. It deliberately collapses every failure mode (missing path,
// permission denied, dangling symlink) into false: callers treat
// inaccessible registry locations as absent, never as errors.
func IsAccessible(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Absolute resolves path against base when it is relative, then cleans it.
// An already-absolute path is returned cleaned, ignoring base.
func Absolute(path, base string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
