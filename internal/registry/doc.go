// SPDX-License-Identifier: MPL-2.0

// Package registry locates enviz registries and installs definitions into
// them. A registry is either a filesystem directory rooted at a path ending
// in ".enviz/registry", or a remote vault spoken to over HTTP.
//
// The Locator aggregates registry paths from explicit arguments, ancestor
// chain discovery under a fixed root, and the per-user local registry, in
// that order; ordering is load-bearing, earlier entries win downstream.
// InstallToPath commits a definition batch into a filesystem registry with
// all conflict detection performed before any write. VaultClient commits
// the same batch to the vault, where the server is the sole authority on
// conflicts. Both installers funnel their result through one shared
// outcome classification so local and remote semantics cannot drift.
package registry
