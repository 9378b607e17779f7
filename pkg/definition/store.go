// SPDX-License-Identifier: MPL-2.0

package definition

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/enviz/enviz/internal/fsutil"
	"github.com/enviz/enviz/pkg/platform"
)

// Mapping indexes definitions by their Request key.
type Mapping map[string]Definition

// Sentinels for errors.Is checks on store failures.
var (
	ErrNotFound = errors.New("no definition matched the request")
	ErrExists   = errors.New("definition file already exists")
)

// NotFoundError reports a request with no entry in a mapping.
type NotFoundError struct {
	Request string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no definition matched request %q", e.Request)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ExistsError reports an export refused because the target file exists.
type ExistsError struct {
	Path string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("definition file %q already exists", e.Path)
}

func (e *ExistsError) Unwrap() error { return ErrExists }

// Load reads and decodes one definition document from path, recording the
// path as the definition's location.
func Load(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("reading definition %q: %w", path, err)
	}
	return Decode(data, path)
}

// Decode parses a definition document. The location parameter names the
// source in errors and becomes the definition's Location; pass "" for
// documents with no backing file.
func Decode(data []byte, location string) (Definition, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return Definition{}, fmt.Errorf("decoding definition %q: %w", location, err)
	}
	d := Definition{doc: doc, location: location}
	if d.Identifier() == "" {
		return Definition{}, fmt.Errorf("definition %q has no identifier", location)
	}
	return d, nil
}

// FetchMapping walks each registry path in order and indexes every JSON
// definition found beneath it. Earlier paths take precedence: a request
// already mapped is never displaced by a later occurrence, and within one
// registry the lexically first file wins. Undecodable or unreadable
// entries are skipped; registries are user-writable territory and one bad
// file must not take down resolution. Paths that are not directories
// contribute nothing.
func FetchMapping(paths []string) (Mapping, error) {
	mapping := Mapping{}
	for _, root := range paths {
		if err := collect(root, mapping); err != nil {
			return nil, err
		}
	}
	return mapping, nil
}

func collect(root string, mapping Mapping) error {
	if !fsutil.IsDir(root) {
		return nil
	}
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			return nil
		}
		def, err := Load(path)
		if err != nil {
			return nil
		}
		def.registry = root
		if _, taken := mapping[def.Request()]; taken {
			return nil
		}
		mapping[def.Request()] = def
		return nil
	})
}

// Lookup resolves a request ("identifier" or "identifier==version")
// against a mapping.
func Lookup(request string, mapping Mapping) (Definition, error) {
	if def, ok := mapping[request]; ok {
		return def, nil
	}
	return Definition{}, &NotFoundError{Request: request}
}

// Export serializes def under dir using its canonical filename, creating
// the directory as needed, and returns the path written. An existing file
// is an ExistsError unless overwrite is set. The bytes land via a uniquely
// named temporary file renamed into place, so no reader ever observes a
// partially written definition and an overwrite replaces the old content
// atomically.
func Export(dir string, def Definition, overwrite bool) (string, error) {
	if platform.IsWindowsReservedName(def.Identifier()) {
		return "", fmt.Errorf("identifier %q is a reserved device filename on Windows; a registry entry would not be portable", def.Identifier())
	}
	data, err := def.Encode()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating registry directory %q: %w", dir, err)
	}
	target := filepath.Join(dir, def.Filename())
	if !overwrite {
		if _, err := os.Stat(target); err == nil {
			return "", &ExistsError{Path: target}
		}
	}

	tmp := target + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("writing definition %q: %w", def.Request(), err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("placing definition %q: %w", def.Request(), err)
	}
	return target, nil
}
