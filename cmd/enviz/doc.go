// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for enviz.
//
// This package implements the Cobra command hierarchy for the enviz CLI,
// including the root command, subcommands for registry listing, definition
// installation, command and shell execution, and configuration management.
package cmd
