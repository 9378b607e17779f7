// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/enviz/enviz/internal/config"
	"github.com/enviz/enviz/internal/registry"

	"github.com/spf13/cobra"
)

var (
	// registriesNoDiscovery skips working-directory discovery
	registriesNoDiscovery bool

	// registriesNoLocal skips the per-user registry
	registriesNoLocal bool

	// registriesCmd lists visible definition registries
	registriesCmd = &cobra.Command{
		Use:   "registries [path...]",
		Short: "List visible definition registries",
		Long: `List definition registries in precedence order, one per line.

Paths given as arguments come first, followed by registries discovered
upward from the current working directory, then the per-user registry.
Inaccessible paths are dropped silently. With --verbose each line is
annotated with where the registry came from.

Examples:
  enviz registries
  enviz registries /srv/team/registry --no-local
  enviz registries --verbose`,
		RunE: runRegistries,
	}
)

func init() {
	registriesCmd.Flags().BoolVar(&registriesNoDiscovery, "no-discovery", false, "skip working-directory registry discovery")
	registriesCmd.Flags().BoolVar(&registriesNoLocal, "no-local", false, "skip the per-user registry")
}

func runRegistries(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	loc := registry.NewLocator(locatorConfig(cfg))
	entries := loc.FetchEntries(args, fetchOptions(cfg, registriesNoDiscovery, registriesNoLocal))

	if len(entries) == 0 {
		fmt.Println(SubtitleStyle.Render("(no registries found)"))
		return nil
	}

	for _, entry := range entries {
		if verbose {
			fmt.Printf("%s %s\n", VerboseHighlightStyle.Render(entry.Path), VerboseStyle.Render("("+entry.Source.String()+")"))
		} else {
			fmt.Println(entry.Path)
		}
	}
	return nil
}

// locatorConfig maps the loaded configuration onto locator search locations.
func locatorConfig(cfg *config.Config) registry.LocatorConfig {
	lc := registry.LocatorConfig{
		DiscoveryRoot: string(cfg.Registries.Root),
	}
	for _, path := range cfg.Registries.Defaults {
		lc.DefaultRegistries = append(lc.DefaultRegistries, string(path))
	}
	return lc
}

// fetchOptions maps configuration and command flags onto aggregation options.
// A flag always wins; the config can only disable discovery, not re-enable it.
func fetchOptions(cfg *config.Config, noDiscovery, noLocal bool) registry.FetchOptions {
	return registry.FetchOptions{
		NoDiscovery: noDiscovery || cfg.Registries.DisableDiscovery,
		NoLocal:     noLocal,
	}
}
