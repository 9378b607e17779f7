// SPDX-License-Identifier: MPL-2.0

package platform

import "strings"

// WindowsReservedNames are device filenames Windows refuses in any
// directory, with or without an extension.
var WindowsReservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// IsWindowsReservedName reports whether name (with or without an extension)
// collides with a reserved Windows device filename such as CON or COM1.
// Files with these stems cannot be created on Windows volumes, so registry
// content named after them is not portable.
func IsWindowsReservedName(name string) bool {
	if name == "" {
		return false
	}
	stem := name
	if idx := strings.IndexByte(stem, '.'); idx != -1 {
		stem = stem[:idx]
	}
	return WindowsReservedNames[strings.ToUpper(stem)]
}
