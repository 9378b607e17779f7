// SPDX-License-Identifier: MPL-2.0

//go:build windows

package spawn

import (
	"fmt"
	"os/exec"
)

// Shell starts an interactive sub-shell inside the given environment and
// blocks until it exits. Windows has no pty to allocate, so the shell is
// attached directly to the executor's streams and the console is left in
// its current mode.
func (e *Executor) Shell(environment map[string]string, shellKind string) (int, error) {
	path, err := lookupWindowsShell(shellKind)
	if err != nil {
		return -1, err
	}

	cmd := exec.Command(path)
	cmd.Env = environSlice(environment)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	cmd.SysProcAttr = sessionAttr()

	if err := cmd.Start(); err != nil {
		return -1, fmt.Errorf("starting shell %q: %w", path, err)
	}
	status, err := waitStatus(cmd.Wait())
	if err != nil {
		return -1, fmt.Errorf("waiting for shell %q: %w", path, err)
	}
	return status, nil
}

// lookupWindowsShell resolves the requested shell, preferring PowerShell
// variants over cmd when nothing was configured.
func lookupWindowsShell(shellKind string) (string, error) {
	if shellKind != "" {
		path, err := exec.LookPath(shellKind)
		if err != nil {
			return "", fmt.Errorf("looking up shell %q: %w", shellKind, err)
		}
		return path, nil
	}
	for _, candidate := range []string{"pwsh", "powershell", "cmd"} {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no shell found: %w", exec.ErrNotFound)
}
