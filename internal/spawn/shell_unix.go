// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package spawn

import (
	"fmt"
	"io"
	"os/exec"

	"github.com/creack/pty"
)

// Shell starts an interactive sub-shell inside the given environment and
// blocks until it exits. An empty shellKind falls back to DefaultShell.
//
// The shell runs on the subordinate side of a fresh pty in its own
// session, with the pty as its controlling terminal. While it runs the
// executor's stdin is switched to raw mode so keystrokes reach the shell
// unmodified; the previous terminal state is restored on every exit
// path. Window size changes are propagated to the pty.
//
// The returned status is the shell's exit status; a non-zero exit is not
// an error. Errors are reserved for shell lookup, the raw-mode switch,
// and pty spawn failures.
func (e *Executor) Shell(environment map[string]string, shellKind string) (int, error) {
	if shellKind == "" {
		shellKind = DefaultShell
	}
	path, err := exec.LookPath(shellKind)
	if err != nil {
		return -1, fmt.Errorf("looking up shell %q: %w", shellKind, err)
	}

	cmd := exec.Command(path)
	cmd.Env = environSlice(environment)

	// The raw-mode guard is acquired before the shell is spawned, so a
	// guard failure leaves no child behind to reap.
	rawMode := e.rawMode
	if rawMode == nil {
		rawMode = e.makeRaw
	}
	restore, err := rawMode()
	if err != nil {
		return -1, err
	}
	defer restore()

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return -1, fmt.Errorf("allocating pty for %q: %w", path, err)
	}
	defer ptmx.Close()

	stopResize := e.watchResize(ptmx)
	defer stopResize()

	// Keystrokes flow to the pty from a separate goroutine; the shell's
	// output is relayed here until the pty read ends with the child.
	go func() {
		_, _ = io.Copy(ptmx, e.Stdin)
	}()
	_, _ = io.Copy(e.Stdout, ptmx)

	status, err := waitStatus(cmd.Wait())
	if err != nil {
		return -1, fmt.Errorf("waiting for shell %q: %w", path, err)
	}
	return status, nil
}
