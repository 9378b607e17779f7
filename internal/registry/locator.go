// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/enviz/enviz/internal/fsutil"
)

// RegistrySuffix is the fixed two-segment directory suffix marking a
// filesystem registry root.
var RegistrySuffix = filepath.Join(".enviz", "registry")

// Source represents where a registry path came from.
type Source int

const (
	// SourceExplicit indicates a path passed in by the caller.
	SourceExplicit Source = iota
	// SourceDiscovered indicates a path found by ancestor-chain discovery.
	SourceDiscovered
	// SourceLocal indicates the per-user registry under the home directory.
	SourceLocal
)

// String returns a human-readable source name.
func (s Source) String() string {
	switch s {
	case SourceExplicit:
		return "explicit"
	case SourceDiscovered:
		return "discovered"
	case SourceLocal:
		return "local"
	default:
		return "unknown"
	}
}

// Entry is one aggregated registry path with its source.
type Entry struct {
	Path   string
	Source Source
}

// LocatorConfig controls where a Locator searches.
type LocatorConfig struct {
	// DiscoveryRoot bounds ancestor-chain discovery: only paths beneath it
	// are ever probed.
	DiscoveryRoot string
	// DefaultRegistries are the organization-wide shared registry roots,
	// in precedence order.
	DefaultRegistries []string
	// LocalRegistry overrides the per-user registry location. Empty means
	// RegistrySuffix under the user's home directory.
	LocalRegistry string
}

// DefaultLocatorConfig returns the stock search locations.
func DefaultLocatorConfig() LocatorConfig {
	return LocatorConfig{
		DiscoveryRoot: "/srv/projects",
		DefaultRegistries: []string{
			"/srv/enviz/registry/primary/default",
			"/srv/enviz/registry/secondary/default",
			"/srv/projects/.enviz/registry/default",
		},
	}
}

// FetchOptions trims sources out of Fetch aggregation.
type FetchOptions struct {
	// NoDiscovery skips working-directory ancestor discovery.
	NoDiscovery bool
	// NoLocal skips the per-user registry.
	NoLocal bool
}

// Locator aggregates registry paths from explicit arguments, discovery,
// and the local registry. Filesystem probes run through the accessible
// hook so tests can count and script them.
type Locator struct {
	cfg        LocatorConfig
	accessible func(string) bool
	getwd      func() (string, error)
}

// NewLocator builds a Locator over the real filesystem. Zero-value config
// fields fall back to DefaultLocatorConfig.
func NewLocator(cfg LocatorConfig) *Locator {
	stock := DefaultLocatorConfig()
	if cfg.DiscoveryRoot == "" {
		cfg.DiscoveryRoot = stock.DiscoveryRoot
	}
	if cfg.DefaultRegistries == nil {
		cfg.DefaultRegistries = stock.DefaultRegistries
	}
	return &Locator{cfg: cfg, accessible: fsutil.IsAccessible, getwd: os.Getwd}
}

// Local returns the per-user registry path if it exists and is readable.
func (l *Locator) Local() (string, bool) {
	dir := l.cfg.LocalRegistry
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		dir = filepath.Join(home, RegistrySuffix)
	}
	if !l.accessible(dir) {
		return "", false
	}
	return dir, true
}

// DefaultRegistries returns the configured organization-wide registry
// roots in precedence order.
func (l *Locator) DefaultRegistries() []string {
	return slices.Clone(l.cfg.DefaultRegistries)
}

// Discover walks the ancestor chain of startPath from the discovery root
// down to startPath itself, collecting every accessible
// "<level>/.enviz/registry" directory in shallow-to-deep order. A
// relative startPath is resolved against the working directory before
// anything else. A startPath outside the root yields nothing and probes
// nothing: the root is a policy boundary, not an optimization.
func (l *Locator) Discover(startPath string) []string {
	if !filepath.IsAbs(startPath) {
		cwd, err := l.getwd()
		if err != nil {
			return nil
		}
		startPath = filepath.Join(cwd, startPath)
	}
	rel, err := filepath.Rel(l.cfg.DiscoveryRoot, filepath.Clean(startPath))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	if rel == "." {
		return nil
	}

	var found []string
	level := l.cfg.DiscoveryRoot
	for _, segment := range strings.Split(rel, string(filepath.Separator)) {
		level = filepath.Join(level, segment)
		candidate := filepath.Join(level, RegistrySuffix)
		if l.accessible(candidate) {
			found = append(found, candidate)
		}
	}
	return found
}

// FetchEntries aggregates registry paths in precedence order: accessible
// explicit paths (relative ones resolved against the working directory),
// then discovery from the working directory, then the local registry.
// Inaccessible entries are dropped silently; aggregation never errors.
func (l *Locator) FetchEntries(explicit []string, opts FetchOptions) []Entry {
	cwd, cwdErr := l.getwd()

	var entries []Entry
	for _, path := range explicit {
		if !filepath.IsAbs(path) {
			if cwdErr != nil {
				continue
			}
			path = filepath.Join(cwd, path)
		} else {
			path = filepath.Clean(path)
		}
		if l.accessible(path) {
			entries = append(entries, Entry{Path: path, Source: SourceExplicit})
		}
	}

	if !opts.NoDiscovery && cwdErr == nil {
		for _, path := range l.Discover(cwd) {
			entries = append(entries, Entry{Path: path, Source: SourceDiscovered})
		}
	}

	if !opts.NoLocal {
		if local, ok := l.Local(); ok {
			entries = append(entries, Entry{Path: local, Source: SourceLocal})
		}
	}
	return entries
}

// Fetch is FetchEntries reduced to the ordered paths.
func (l *Locator) Fetch(explicit []string, opts FetchOptions) []string {
	entries := l.FetchEntries(explicit, opts)
	paths := make([]string, len(entries))
	for i, entry := range entries {
		paths[i] = entry.Path
	}
	return paths
}

// NormalizeRegistryPath resolves root to an absolute path ending in
// RegistrySuffix, appending the suffix when absent. The result may not
// exist yet; only install targets require the given root itself to exist.
func NormalizeRegistryPath(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = filepath.Clean(root)
	}
	if strings.HasSuffix(abs, string(filepath.Separator)+RegistrySuffix) {
		return abs
	}
	return filepath.Join(abs, RegistrySuffix)
}
