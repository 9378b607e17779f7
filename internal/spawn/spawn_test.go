// SPDX-License-Identifier: MPL-2.0

package spawn

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func testExecutor() (*Executor, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	e := &Executor{
		Stdin:  strings.NewReader(""),
		Stdout: &stdout,
		Stderr: &stderr,
	}
	return e, &stdout, &stderr
}

func TestExecuteStreamsLinesInOrder(t *testing.T) {
	e, stdout, _ := testExecutor()

	status, err := e.Execute(`sh -c 'echo one; echo two; echo three'`, nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if status != 0 {
		t.Errorf("status = %d, want 0", status)
	}
	if got, want := stdout.String(), "one\r\ntwo\r\nthree\r\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestExecuteRelaysLinesLongerThanReadBuffers(t *testing.T) {
	// A single line can exceed any buffered read. It must arrive whole,
	// and a child blocked writing it must never wedge Execute.
	for _, want := range []int{1 << 17, 1 << 19} {
		e, stdout, _ := testExecutor()
		command := fmt.Sprintf(`sh -c 's=x; while [ ${#s} -lt %d ]; do s=$s$s; done; echo "$s"'`, want)

		type result struct {
			status int
			err    error
		}
		done := make(chan result, 1)
		go func() {
			status, err := e.Execute(command, nil)
			done <- result{status, err}
		}()

		var res result
		select {
		case res = <-done:
		case <-time.After(time.Minute):
			t.Fatalf("Execute did not return for a %d-byte line", want)
		}
		if res.err != nil {
			t.Fatalf("Execute failed for a %d-byte line: %v", want, res.err)
		}
		if res.status != 0 {
			t.Errorf("status = %d, want 0", res.status)
		}
		if got := stdout.String(); got != strings.Repeat("x", want)+"\r\n" {
			t.Errorf("stdout carries %d bytes for a %d-byte line, want the whole line with CRLF", len(got), want)
		}
	}
}

func TestEchoLinesKeepsUnterminatedTail(t *testing.T) {
	var out bytes.Buffer
	tail := strings.Repeat("y", 90_000)

	if err := echoLines(&out, strings.NewReader("first\n"+tail)); err != nil {
		t.Fatalf("echoLines failed: %v", err)
	}
	if got, want := out.String(), "first\r\n"+tail+"\r\n"; got != want {
		t.Errorf("echoLines wrote %d bytes, want %d with both lines CRLF-terminated", len(got), len(want))
	}
}

func TestExecuteExpandsVariablesFromEnvironment(t *testing.T) {
	e, stdout, _ := testExecutor()
	env := map[string]string{"GREETING": "hello"}

	status, err := e.Execute(`sh -c "echo $GREETING"`, env)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if status != 0 {
		t.Errorf("status = %d, want 0", status)
	}
	if got, want := stdout.String(), "hello\r\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestExecuteSurfacesStderr(t *testing.T) {
	e, _, stderr := testExecutor()

	status, err := e.Execute(`sh -c 'echo oops >&2'`, nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if status != 0 {
		t.Errorf("status = %d, want 0", status)
	}
	if got, want := stderr.String(), "oops\r\n"; got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
}

func TestExecuteReplacesEnvironmentWholesale(t *testing.T) {
	e, stdout, _ := testExecutor()
	env := map[string]string{"SPAWN_TEST_MARKER": "42"}

	status, err := e.Execute("env", env)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if status != 0 {
		t.Errorf("status = %d, want 0", status)
	}
	if got, want := stdout.String(), "SPAWN_TEST_MARKER=42\r\n"; got != want {
		t.Errorf("child environment = %q, want only %q", got, want)
	}
}

func TestExecuteNonZeroExitIsAdvisory(t *testing.T) {
	e, _, _ := testExecutor()

	status, err := e.Execute(`sh -c 'exit 9'`, nil)
	if err != nil {
		t.Fatalf("a non-zero exit must not be an error, got %v", err)
	}
	if status != 9 {
		t.Errorf("status = %d, want 9", status)
	}
}

func TestExecuteRejectsEmptyCommand(t *testing.T) {
	for _, command := range []string{"", "   "} {
		e, _, _ := testExecutor()
		if _, err := e.Execute(command, nil); err == nil {
			t.Errorf("Execute(%q) succeeded, want error", command)
		}
	}
}

func TestExecuteRejectsMalformedCommand(t *testing.T) {
	e, _, _ := testExecutor()
	if _, err := e.Execute(`sh -c 'unterminated`, nil); err == nil {
		t.Error("Execute with an unterminated quote succeeded, want error")
	}
}

func TestExecuteMissingBinary(t *testing.T) {
	e, _, _ := testExecutor()
	_, err := e.Execute("spawn-test-no-such-binary", nil)
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("err = %v, want exec.ErrNotFound", err)
	}
}

func TestEnvironSliceIsNeverNil(t *testing.T) {
	// A nil Env would make exec inherit the parent environment, which
	// is exactly what Execute and Shell must prevent.
	if environSlice(nil) == nil {
		t.Error("environSlice(nil) = nil, want an empty slice")
	}
	if environSlice(map[string]string{}) == nil {
		t.Error("environSlice(empty) = nil, want an empty slice")
	}
}

func TestWaitStatus(t *testing.T) {
	if status, err := waitStatus(nil); err != nil || status != 0 {
		t.Errorf("waitStatus(nil) = (%d, %v), want (0, nil)", status, err)
	}

	failure := errors.New("pipe broke")
	if _, err := waitStatus(failure); !errors.Is(err, failure) {
		t.Errorf("waitStatus(non-exit error) = %v, want the error back", err)
	}
}
