// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/enviz/enviz/internal/config"
	"github.com/enviz/enviz/internal/fsutil"
	"github.com/enviz/enviz/internal/registry"
	"github.com/enviz/enviz/pkg/platform"

	"github.com/spf13/cobra"
)

// infoCmd shows the host, configuration, and registry surface at a glance
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show environment and configuration diagnostics",
	Long: `Show the host platform, the active configuration, and every registry
enviz can currently see, in precedence order. Useful as a first stop
when definitions do not resolve the way you expect.`,
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Println(TitleStyle.Render("Enviz Environment"))
	fmt.Println()

	host, err := platform.Current()
	if err != nil {
		fmt.Printf("%s: %s\n", keyStyle.Render("Platform"), ErrorStyle.Render(err.Error()))
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Platform"), valueStyle.Render(host.String()))
		fmt.Printf("%s: %s\n", keyStyle.Render("OS version"), valueStyle.Render(host.OSVersion))
	}
	fmt.Printf("%s: %s\n", keyStyle.Render("Version"), valueStyle.Render(getVersionString()))
	fmt.Println()

	cfg := config.Get()
	if path := config.ConfigFilePath(); path != "" {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Printf("%s: %s\n", keyStyle.Render("Vault server"), valueStyle.Render(string(cfg.Vault.Server)))
	author := cfg.Vault.Author
	if author == "" {
		author = fsutil.AuthorName()
	}
	fmt.Printf("%s: %s\n", keyStyle.Render("Vault author"), valueStyle.Render(author))
	fmt.Printf("%s: %s\n", keyStyle.Render("Default shell"), valueStyle.Render(string(cfg.Shell.Default)))
	fmt.Println()

	loc := registry.NewLocator(locatorConfig(cfg))
	fmt.Printf("%s:\n", keyStyle.Render("Default registries"))
	defaults := loc.DefaultRegistries()
	if len(defaults) == 0 {
		fmt.Printf("  %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		for _, path := range defaults {
			fmt.Printf("  - %s\n", valueStyle.Render(path))
		}
	}

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("Visible registries"))
	entries := loc.FetchEntries(nil, fetchOptions(cfg, false, false))
	if len(entries) == 0 {
		fmt.Printf("  %s\n", SubtitleStyle.Render("(none found)"))
	} else {
		for _, entry := range entries {
			fmt.Printf("  - %s %s\n", valueStyle.Render(entry.Path), VerboseStyle.Render("("+entry.Source.String()+")"))
		}
	}

	return nil
}
