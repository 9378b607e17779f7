// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/enviz/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/enviz/config.cue on macOS, %APPDATA%\enviz\config.cue
// on Windows). The package provides type-safe configuration access and covers the vault
// server endpoint, the default interactive shell, registry locations, and UI settings.
// Every value can be overridden through ENVIZ_* environment variables.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
