// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/enviz/enviz/internal/config"
	"github.com/enviz/enviz/internal/issue"

	"github.com/spf13/cobra"
)

// configCmd represents the config command group
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage enviz configuration",
	Long: `Manage enviz configuration.

Configuration is stored in:
  - Linux: ~/.config/enviz/config.cue
  - macOS: ~/Library/Application Support/enviz/config.cue
  - Windows: %APPDATA%\enviz\config.cue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	RunE:  runConfigPath,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Output raw configuration as CUE",
	RunE:  runConfigDump,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configDumpCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return err
	}

	// Style definitions using shared color palette
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	if path := config.ConfigFilePath(); path != "" {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s:\n", keyStyle.Render("vault"))
	fmt.Printf("  server: %s\n", valueStyle.Render(string(cfg.Vault.Server)))
	if cfg.Vault.Author != "" {
		fmt.Printf("  author: %s\n", valueStyle.Render(cfg.Vault.Author))
	} else {
		fmt.Printf("  author: %s\n", SubtitleStyle.Render("(derived from OS user)"))
	}

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("shell"))
	fmt.Printf("  default: %s\n", valueStyle.Render(string(cfg.Shell.Default)))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("registries"))
	fmt.Printf("  root: %s\n", valueStyle.Render(string(cfg.Registries.Root)))
	fmt.Printf("  disable_discovery: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Registries.DisableDiscovery)))
	fmt.Printf("  defaults:\n")
	if len(cfg.Registries.Defaults) == 0 {
		fmt.Printf("    %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		for _, path := range cfg.Registries.Defaults {
			fmt.Printf("    - %s\n", valueStyle.Render(string(path)))
		}
	}

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgPath := filepath.Join(cfgDir, "config.cue")

	if fileExistsCheck(cfgPath) {
		fmt.Printf("%s Configuration already exists at %s\n", SubtitleStyle.Render("•"), cfgPath)
		return nil
	}

	if err := config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("%s Created default configuration at %s\n", SuccessStyle.Render("✓"), cfgPath)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s\n", filepath.Join(cfgDir, "config.cue"))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	key, value := args[0], args[1]

	switch key {
	case "vault.server":
		server := config.ServerURL(value)
		if ok, errs := server.IsValid(); !ok {
			return errs[0]
		}
		cfg.Vault.Server = server

	case "vault.author":
		cfg.Vault.Author = value

	case "shell.default":
		kind := config.ShellKind(value)
		if ok, errs := kind.IsValid(); !ok {
			return errs[0]
		}
		cfg.Shell.Default = kind

	case "registries.root":
		root := config.RegistryRootPath(value)
		if ok, errs := root.IsValid(); !ok {
			return errs[0]
		}
		cfg.Registries.Root = root

	case "registries.disable_discovery":
		cfg.Registries.DisableDiscovery = value == "true" || value == "1"

	case "ui.verbose":
		cfg.UI.Verbose = value == "true" || value == "1"

	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: vault.server, vault.author, shell.default, registries.root, registries.disable_discovery, ui.verbose", key)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}

func runConfigDump(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Print(config.GenerateCUE(cfg))
	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
