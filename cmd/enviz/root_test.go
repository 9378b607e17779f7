// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/enviz/enviz/internal/issue"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		// Save and restore package-level vars.
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2025-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2025-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("fallback to dev when no build info", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "dev"
		Commit = "unknown"
		BuildDate = "unknown"

		got := getVersionString()
		want := "dev (built from source)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	t.Run("plain error returns its message", func(t *testing.T) {
		t.Parallel()

		err := errors.New("plain failure")
		if got := formatErrorForDisplay(err, false); got != "plain failure" {
			t.Errorf("formatErrorForDisplay() = %q, want %q", got, "plain failure")
		}
	})

	t.Run("actionable error renders suggestions", func(t *testing.T) {
		t.Parallel()

		err := issue.NewErrorContext().
			WithOperation("load configuration").
			WithSuggestion("Run 'enviz config init' to create a default file").
			Wrap(errors.New("missing file")).
			BuildError()

		got := formatErrorForDisplay(err, false)
		if !strings.Contains(got, "failed to load configuration") {
			t.Errorf("formatErrorForDisplay() = %q, want operation in output", got)
		}
		if !strings.Contains(got, "Run 'enviz config init'") {
			t.Errorf("formatErrorForDisplay() = %q, want suggestion in output", got)
		}
	})

	t.Run("verbose mode includes the error chain", func(t *testing.T) {
		t.Parallel()

		err := issue.NewErrorContext().
			WithOperation("load configuration").
			Wrap(errors.New("missing file")).
			BuildError()

		got := formatErrorForDisplay(err, true)
		if !strings.Contains(got, "Error chain:") {
			t.Errorf("formatErrorForDisplay() = %q, want error chain in verbose output", got)
		}
	})
}

func TestRootSubcommands(t *testing.T) {
	t.Parallel()

	want := []string{"completion", "config", "info", "install", "registries", "run", "shell"}
	have := map[string]bool{}
	for _, sub := range rootCmd.Commands() {
		have[sub.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}
