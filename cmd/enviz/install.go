// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/enviz/enviz/internal/config"
	"github.com/enviz/enviz/internal/issue"
	"github.com/enviz/enviz/internal/registry"
	"github.com/enviz/enviz/pkg/definition"

	"github.com/spf13/cobra"
)

var (
	// installRegistry targets a filesystem registry root
	installRegistry string

	// installVault targets a vault registry identifier
	installVault string

	// installOverwrite replaces definitions whose content differs
	installOverwrite bool

	// installCmd installs definition documents into a registry
	installCmd = &cobra.Command{
		Use:   "install <definition.json>...",
		Short: "Install definition documents into a registry",
		Long: `Install definition documents into a filesystem registry or the vault.

Each argument is a JSON definition document. The whole batch is checked
against the target before anything is written: a definition that already
exists with different content aborts the batch unless --overwrite is
given, and content-identical definitions are skipped silently.

Without --registry or --vault the first visible registry (explicit
configuration, discovery, then the per-user registry) is the target.

Examples:
  enviz install zlib.json
  enviz install defs/zlib.json defs/openssl.json --registry /srv/team
  enviz install zlib.json --vault default --overwrite`,
		Args: cobra.MinimumNArgs(1),
		RunE: runInstall,
	}
)

func init() {
	installCmd.Flags().StringVar(&installRegistry, "registry", "", "filesystem registry root to install into")
	installCmd.Flags().StringVar(&installVault, "vault", "", "vault registry identifier to release into")
	installCmd.Flags().BoolVar(&installOverwrite, "overwrite", false, "replace definitions whose content differs")
	installCmd.MarkFlagsMutuallyExclusive("registry", "vault")
}

func runInstall(cmd *cobra.Command, args []string) error {
	defs := make([]definition.Definition, 0, len(args))
	for _, path := range args {
		def, err := definition.Load(path)
		if err != nil {
			rendered, _ := issue.Get(issue.DefinitionParseErrorId).Render("dark")
			fmt.Fprint(os.Stderr, rendered)
			return err
		}
		defs = append(defs, def)
	}

	cfg := config.Get()

	if installVault != "" {
		client := registry.NewVaultClient(string(cfg.Vault.Server), cfg.Vault.Author, nil)
		if err := client.Install(defs, installVault, installOverwrite); err != nil {
			return reportInstallError(err, true)
		}
		fmt.Printf("%s Released to vault registry %q\n", SuccessStyle.Render("✓"), installVault)
		return nil
	}

	target := installRegistry
	if target == "" {
		loc := registry.NewLocator(locatorConfig(cfg))
		paths := loc.Fetch(nil, fetchOptions(cfg, false, false))
		if len(paths) == 0 {
			rendered, _ := issue.Get(issue.RegistryNotFoundId).Render("dark")
			fmt.Fprint(os.Stderr, rendered)
			return errors.New("no registry found to install into")
		}
		target = paths[0]
	}

	if err := registry.InstallToPath(defs, target, installOverwrite); err != nil {
		return reportInstallError(err, false)
	}
	fmt.Printf("%s Installed to %s\n", SuccessStyle.Render("✓"), registry.NormalizeRegistryPath(target))
	return nil
}

// reportInstallError renders the remediation card matching an install
// failure, when one applies, and passes the error through unchanged.
func reportInstallError(err error, vault bool) error {
	if id, ok := installIssueId(err, vault); ok {
		rendered, _ := issue.Get(id).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
	}
	return err
}

// installIssueId picks the issue describing an install failure. The
// second return reports whether any card applies.
func installIssueId(err error, vault bool) (issue.Id, bool) {
	switch {
	case errors.Is(err, registry.ErrInvalidTarget):
		return issue.RegistryNotFoundId, true
	case errors.Is(err, registry.ErrDefinitionsExist):
		return issue.DefinitionsExistId, true
	case errors.Is(err, registry.ErrNoChanges):
		return issue.NothingToInstallId, true
	case errors.Is(err, registry.ErrInstallFailed) && vault:
		return issue.VaultUnreachableId, true
	case errors.Is(err, registry.ErrInstallFailed) && strings.Contains(err.Error(), "permission denied"):
		return issue.PermissionDeniedId, true
	}
	return 0, false
}
