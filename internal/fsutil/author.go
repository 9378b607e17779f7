// SPDX-License-Identifier: MPL-2.0

package fsutil

import (
	"os/user"
	"strings"
)

// UnknownAuthor is the attribution used when no user identity can be
// resolved. The vault accepts it as a valid (if anonymous) author.
const UnknownAuthor = "unknown"

// AuthorName resolves a human-readable name for the current OS user, for
// attributing vault releases. It prefers the account's display name (the
// GECOS field on Unix, which may carry trailing comma-separated office
// fields that are stripped here), falls back to the login name, and
// finally to UnknownAuthor.
func AuthorName() string {
	u, err := user.Current()
	if err != nil {
		return UnknownAuthor
	}
	if name, _, _ := strings.Cut(u.Name, ","); strings.TrimSpace(name) != "" {
		return strings.TrimSpace(name)
	}
	if u.Username != "" {
		return u.Username
	}
	return UnknownAuthor
}
