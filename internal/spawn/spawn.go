// SPDX-License-Identifier: MPL-2.0

package spawn

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"mvdan.cc/sh/v3/shell"
)

// DefaultShell is the sub-shell used when no kind is configured.
const DefaultShell = "bash"

// Executor spawns child processes. The zero value is not usable; call
// NewExecutor, which wires the process streams, or fill the fields
// directly in tests.
type Executor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// rawMode overrides the terminal raw-mode guard Shell acquires
	// before spawning. Nil selects the real guard; tests script
	// failures through it.
	rawMode func() (func(), error)
}

// NewExecutor returns an Executor attached to the process streams.
func NewExecutor() *Executor {
	return &Executor{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Execute runs a single command to completion inside the given
// environment. The command string is split into words following POSIX
// shell rules, with $VAR references expanded against environment rather
// than the executor's own variables. The child's output is relayed line
// by line through echoLines.
//
// The returned status is the child's exit status; a non-zero exit is not
// an error. Errors are reserved for malformed commands, processes that
// could not be started or awaited, and output that could not be relayed.
func (e *Executor) Execute(command string, environment map[string]string) (int, error) {
	words, err := shell.Fields(command, func(name string) string {
		return environment[name]
	})
	if err != nil {
		return -1, fmt.Errorf("splitting command %q: %w", command, err)
	}
	if len(words) == 0 {
		return -1, fmt.Errorf("command %q is empty after splitting", command)
	}

	cmd := exec.Command(words[0], words[1:]...)
	cmd.Env = environSlice(environment)
	cmd.SysProcAttr = sessionAttr()

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return -1, fmt.Errorf("piping stdout of %q: %w", words[0], err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return -1, fmt.Errorf("piping stderr of %q: %w", words[0], err)
	}

	if err := cmd.Start(); err != nil {
		return -1, fmt.Errorf("starting %q: %w", words[0], err)
	}

	// Both pipes must be drained before Wait closes them; echoLines
	// consumes its reader to EOF even when the relay fails, so the child
	// is never left blocked on a full pipe.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = echoLines(e.Stderr, stderr)
	}()
	echoErr := echoLines(e.Stdout, stdout)
	wg.Wait()

	status, err := waitStatus(cmd.Wait())
	if err != nil {
		return -1, fmt.Errorf("waiting for %q: %w", words[0], err)
	}
	if echoErr != nil {
		return -1, fmt.Errorf("relaying output of %q: %w", words[0], echoErr)
	}
	return status, nil
}

// echoLines relays src to dst one line at a time, replacing each line
// ending with CRLF so the output renders correctly even when the
// surrounding terminal has been left in raw mode. A line is relayed
// whole regardless of its length; the reader's buffer bounds one read,
// never the line. A trailing line without a terminator is still echoed.
func echoLines(dst io.Writer, src io.Reader) error {
	reader := bufio.NewReader(src)
	var line []byte
	for {
		chunk, isPrefix, err := reader.ReadLine()
		line = append(line, chunk...)
		if err == io.EOF {
			if len(line) == 0 {
				return nil
			}
			_, werr := fmt.Fprintf(dst, "%s\r\n", line)
			return werr
		}
		if err != nil {
			_, _ = io.Copy(io.Discard, reader)
			return err
		}
		if isPrefix {
			continue
		}
		if _, err := fmt.Fprintf(dst, "%s\r\n", line); err != nil {
			_, _ = io.Copy(io.Discard, reader)
			return err
		}
		line = line[:0]
	}
}

// environSlice flattens an environment mapping into the KEY=value form
// expected by exec.Cmd. The mapping is the child's entire environment;
// nothing is inherited from the executor's own process.
func environSlice(env map[string]string) []string {
	result := make([]string, 0, len(env))
	for k, v := range env {
		result = append(result, k+"="+v)
	}
	return result
}

// waitStatus reduces cmd.Wait's error into the child's exit status. A
// non-zero exit travels through the status, never the error.
func waitStatus(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
