// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared helpers for validating CUE input.
//
// Configuration files are schema-checked CUE documents; this package
// holds the pieces of that flow that are independent of any schema:
// size guarding before a parse and turning cuelang's error lists into
// single user-facing messages with JSON-path locations, for example
//
//	config.cue: registries.defaults[1]: conflicting values
package cueutil
