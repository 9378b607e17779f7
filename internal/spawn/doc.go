// SPDX-License-Identifier: MPL-2.0

// Package spawn runs child processes inside a prepared environment. It
// offers two modes: an interactive sub-shell on a pseudo-terminal, and a
// batch runner that relays the child's output line by line. Both replace
// the child's environment wholesale and detach it into its own process
// group, so the prepared environment is exactly what the child sees.
package spawn
