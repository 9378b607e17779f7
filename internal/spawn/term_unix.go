// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package spawn

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"
)

// terminalFd reports the executor's stdin file descriptor when it is an
// actual terminal. Piped and in-memory stdins have no terminal to adjust.
func (e *Executor) terminalFd() (int, bool) {
	f, ok := e.Stdin.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0, false
	}
	return fd, true
}

// makeRaw switches the executor's stdin to raw mode and returns a
// restore function that reinstates the recorded state. Off a terminal
// both the switch and the restore are no-ops.
func (e *Executor) makeRaw() (func(), error) {
	fd, ok := e.terminalFd()
	if !ok {
		return func() {}, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return func() {}, fmt.Errorf("switching terminal to raw mode: %w", err)
	}
	return func() {
		_ = term.Restore(fd, state)
	}, nil
}

// watchResize keeps the pty's window size in sync with the executor's
// terminal: once at startup and again on every SIGWINCH. The returned
// stop function ends the watch. Off a terminal there is no size to
// mirror and the watch is a no-op.
func (e *Executor) watchResize(ptmx *os.File) func() {
	f, ok := e.Stdin.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return func() {}
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	go func() {
		for range ch {
			_ = pty.InheritSize(f, ptmx)
		}
	}()
	ch <- syscall.SIGWINCH

	return func() {
		signal.Stop(ch)
		close(ch)
	}
}
