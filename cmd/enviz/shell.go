// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/enviz/enviz/internal/config"
	"github.com/enviz/enviz/internal/issue"
	"github.com/enviz/enviz/internal/spawn"

	"github.com/spf13/cobra"
)

var (
	// shellKind picks the sub-shell to spawn
	shellKind string

	// shellEnvPairs adds or overrides single variables
	shellEnvPairs []string

	// shellEnvFiles merges dotenv files in order
	shellEnvFiles []string

	// shellNoInherit starts from an empty environment
	shellNoInherit bool

	// shellCmd starts an interactive sub-shell
	shellCmd = &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive sub-shell inside a managed environment",
		Long: `Start an interactive sub-shell inside a managed environment.

The shell runs on a fresh pseudo-terminal with the assembled environment
as its entire process environment. Keystrokes are forwarded unmodified
while it runs, and the terminal is restored on exit. The environment is
assembled the same way as for 'enviz run': the invoking process
environment (unless --no-inherit), then --env-file files, then --env
pairs.

The shell's exit code becomes the exit code of enviz.

Examples:
  enviz shell
  enviz shell --shell /usr/bin/fish
  enviz shell --env-file .env --env PS1='(enviz) '`,
		Args: cobra.NoArgs,
		RunE: runShell,
	}
)

func init() {
	shellCmd.Flags().StringVar(&shellKind, "shell", "", "shell to spawn (defaults to the configured shell)")
	shellCmd.Flags().StringArrayVar(&shellEnvPairs, "env", nil, "set VAR=value in the shell environment (repeatable)")
	shellCmd.Flags().StringArrayVar(&shellEnvFiles, "env-file", nil, "merge a dotenv file into the shell environment (repeatable, '?' suffix marks it optional)")
	shellCmd.Flags().BoolVar(&shellNoInherit, "no-inherit", false, "do not inherit the invoking process environment")
}

func runShell(cmd *cobra.Command, args []string) error {
	environment, err := buildEnvironment(!shellNoInherit, shellEnvFiles, shellEnvPairs)
	if err != nil {
		return err
	}

	kind := shellKind
	if kind == "" {
		kind = string(config.Get().Shell.Default)
	}

	status, err := spawn.NewExecutor().Shell(environment, kind)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			rendered, _ := issue.Get(issue.ShellNotFoundId).Render("dark")
			fmt.Fprint(os.Stderr, rendered)
		}
		return err
	}

	if status != 0 {
		if verbose {
			fmt.Fprintf(os.Stdout, "%s Shell exited with code %d\n", WarningStyle.Render("!"), status)
		}
		return &ExitError{Code: status}
	}
	return nil
}
