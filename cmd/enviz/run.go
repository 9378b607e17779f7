// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/enviz/enviz/internal/fsutil"
	"github.com/enviz/enviz/internal/issue"
	"github.com/enviz/enviz/internal/spawn"

	"github.com/spf13/cobra"
)

var (
	// runEnvPairs adds or overrides single variables
	runEnvPairs []string

	// runEnvFiles merges dotenv files in order
	runEnvFiles []string

	// runNoInherit starts from an empty environment
	runNoInherit bool

	// runCmd executes one command inside a managed environment
	runCmd = &cobra.Command{
		Use:   "run <command>...",
		Short: "Run a command inside a managed environment",
		Long: `Run a single command to completion inside a managed environment.

The command string is split into words following POSIX shell rules,
with $VAR references expanded against the assembled environment. The
environment starts from the invoking process (unless --no-inherit),
then merges --env-file files in order, then --env pairs; later sources
override earlier ones.

The child's exit code becomes the exit code of enviz. A non-zero exit
is not an error; it is only reported with --verbose.

Examples:
  enviz run 'make build'
  enviz run --env-file .env --env DEBUG=1 'go test ./...'
  enviz run --no-inherit --env PATH=/usr/bin printenv`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRun,
	}
)

func init() {
	runCmd.Flags().StringArrayVar(&runEnvPairs, "env", nil, "set VAR=value in the child environment (repeatable)")
	runCmd.Flags().StringArrayVar(&runEnvFiles, "env-file", nil, "merge a dotenv file into the child environment (repeatable, '?' suffix marks it optional)")
	runCmd.Flags().BoolVar(&runNoInherit, "no-inherit", false, "do not inherit the invoking process environment")
}

func runRun(cmd *cobra.Command, args []string) error {
	environment, err := buildEnvironment(!runNoInherit, runEnvFiles, runEnvPairs)
	if err != nil {
		return err
	}

	command := strings.Join(args, " ")
	status, err := spawn.NewExecutor().Execute(command, environment)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("execute command").
			WithResource(command).
			WithSuggestion("Check that the executable exists in the environment's PATH").
			WithSuggestion("Quote the command if it contains shell metacharacters").
			Wrap(err).
			BuildError()
	}

	if status != 0 {
		if verbose {
			fmt.Fprintf(os.Stdout, "%s Command exited with code %d\n", WarningStyle.Render("!"), status)
		}
		return &ExitError{Code: status}
	}
	return nil
}

// buildEnvironment assembles a child environment: the inherited environ
// when inherit is set, then each dotenv file in order, then VAR=value
// pairs. Later sources override earlier ones.
func buildEnvironment(inherit bool, files, pairs []string) (map[string]string, error) {
	env := map[string]string{}
	if inherit {
		for _, entry := range os.Environ() {
			key, value, found := strings.Cut(entry, "=")
			if !found {
				continue
			}
			env[key] = value
		}
	}

	for _, file := range files {
		if err := fsutil.LoadEnvFile(env, file); err != nil {
			return nil, err
		}
	}

	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --env %q: expected VAR=value", pair)
		}
		env[key] = value
	}
	return env, nil
}
