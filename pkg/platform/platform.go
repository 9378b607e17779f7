// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Name identifies a supported operating system family.
type Name string

// The closed set of platforms enviz runs on.
const (
	Linux   Name = "linux"
	MacOS   Name = "macos"
	Windows Name = "windows"
)

// Platform describes the host as a plain value: family name, CPU
// architecture, and an opaque "name==version" OS version string. Nothing
// dispatches on these fields; they are display and bookkeeping data.
type Platform struct {
	Name      Name
	Arch      string
	OSVersion string
}

// String renders the platform as "name/arch" for logs and diagnostics.
func (p Platform) String() string {
	return string(p.Name) + "/" + p.Arch
}

// Current resolves the descriptor for the running host. It fails for any
// GOOS outside the supported set.
func Current() (Platform, error) {
	return currentFrom(runtime.GOOS, runtime.GOARCH, osVersion)
}

// currentFrom is the injectable core of Current.
func currentFrom(goos, goarch string, version func(Name) string) (Platform, error) {
	var name Name
	switch goos {
	case "linux":
		name = Linux
	case "darwin":
		name = MacOS
	case "windows":
		name = Windows
	default:
		return Platform{}, fmt.Errorf("unsupported operating system %q", goos)
	}
	return Platform{Name: name, Arch: goarch, OSVersion: version(name)}, nil
}

const unknownVersion = "unknown"

func versionString(id, version string) string {
	return id + "==" + version
}

// osVersion resolves the "name==version" string for the host.
func osVersion(name Name) string {
	switch name {
	case Linux:
		return linuxVersion(os.ReadFile)
	case MacOS:
		return macVersion()
	default:
		return versionString(string(name), unknownVersion)
	}
}

// linuxVersion derives "ID==VERSION_ID" from /etc/os-release, for example
// "debian==13". Rolling-release distributions carry no VERSION_ID; they and
// unreadable files degrade to the unknown marker.
func linuxVersion(readFile func(string) ([]byte, error)) string {
	data, err := readFile("/etc/os-release")
	if err != nil {
		return versionString(string(Linux), unknownVersion)
	}
	id, version := string(Linux), unknownVersion
	for _, line := range strings.Split(string(data), "\n") {
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)
		if value == "" {
			continue
		}
		switch key {
		case "ID":
			id = value
		case "VERSION_ID":
			version = value
		}
	}
	return versionString(id, version)
}

// macVersion asks sw_vers for the product version, for example "macos==14.5".
func macVersion() string {
	out, err := exec.Command("sw_vers", "-productVersion").Output()
	version := strings.TrimSpace(string(out))
	if err != nil || version == "" {
		return versionString(string(MacOS), unknownVersion)
	}
	return versionString(string(MacOS), version)
}
