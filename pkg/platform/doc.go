// SPDX-License-Identifier: MPL-2.0

// Package platform identifies the host operating system family as a closed
// descriptor value (name, architecture, OS version string) and provides
// cross-platform filename compatibility checks such as Windows reserved
// device names.
package platform
