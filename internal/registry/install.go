// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/enviz/enviz/internal/fsutil"
	"github.com/enviz/enviz/pkg/definition"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "registry"})

// pendingInstall is one definition cleared for writing: the directory it
// lands in and, when it replaces a conflicting copy, the stale file to
// drop once the replacement is in place.
type pendingInstall struct {
	def   definition.Definition
	dir   string
	stale string
}

// InstallToPath commits a batch of definitions into the filesystem
// registry rooted at root. The root must be an existing directory; the
// derived ".enviz/registry" path beneath it is created on demand.
//
// Every definition is probed against the registry's current content
// before anything is written: new definitions install under the derived
// path, content-identical ones are skipped, and differing ones either
// abort the whole batch (DefinitionsExistError with the conflict count)
// or, with overwrite set, replace the existing copy in its own directory.
// A batch that reduces to nothing fails with ErrNoChanges. On success
// exactly one summary line is logged.
func InstallToPath(defs []definition.Definition, root string, overwrite bool) error {
	if !fsutil.IsDir(root) {
		return &InvalidTargetError{Path: root}
	}
	target := NormalizeRegistryPath(root)

	mapping, err := definition.FetchMapping([]string{target})
	if err != nil {
		return &InstallFailedError{Registry: target, Reason: err.Error()}
	}

	var installs []pendingInstall
	var conflicts []string
	for _, def := range defs {
		existing, err := definition.Lookup(def.Request(), mapping)
		switch {
		case errors.Is(err, definition.ErrNotFound):
			installs = append(installs, pendingInstall{def: def, dir: target})
		case err != nil:
			return &InstallFailedError{Registry: target, Reason: err.Error()}
		case existing.ContentEquals(def):
			// Already present, nothing to do for this one.
		case overwrite:
			installs = append(installs, pendingInstall{
				def:   def,
				dir:   filepath.Dir(existing.Location()),
				stale: existing.Location(),
			})
		default:
			conflicts = append(conflicts, def.Request())
		}
	}

	if err := outcomeError(classifyProbes(len(conflicts), len(installs)), outcomeDetails{
		registry:  target,
		conflicts: conflicts,
		count:     len(conflicts),
	}); err != nil {
		return err
	}

	for _, p := range installs {
		written, err := definition.Export(p.dir, p.def, true)
		if err != nil {
			return &InstallFailedError{Registry: target, Reason: err.Error()}
		}
		// The replacement is durably placed before its stale sibling goes
		// away; when both names coincide the rename already replaced it.
		if p.stale != "" && p.stale != written {
			if err := os.Remove(p.stale); err != nil && !os.IsNotExist(err) {
				return &InstallFailedError{Registry: target, Reason: err.Error()}
			}
		}
	}

	logger.Info("installed definitions", "count", len(installs), "registry", target)
	return nil
}
