// SPDX-License-Identifier: MPL-2.0

package definition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
)

// Document field names this layer reads. Everything else in a definition
// document is opaque payload for the resolution engine.
const (
	fieldIdentifier  = "identifier"
	fieldVersion     = "version"
	fieldDescription = "description"
)

// Definition is one environment descriptor: an already-parsed JSON document
// treated as an immutable value, plus provenance recorded when the copy was
// loaded from a registry. Provenance is not part of the document and never
// survives encoding.
type Definition struct {
	doc      map[string]any
	location string
	registry string
}

// New wraps a parsed document in a Definition. The top-level map is copied
// so later mutation of the argument cannot leak into the value.
func New(doc map[string]any) Definition {
	return Definition{doc: maps.Clone(doc)}
}

// Identifier returns the document's required identifier, or "" when the
// field is missing or not a string.
func (d Definition) Identifier() string {
	return d.stringField(fieldIdentifier)
}

// Version returns the document's optional version string.
func (d Definition) Version() string {
	return d.stringField(fieldVersion)
}

// Description returns the document's optional description.
func (d Definition) Description() string {
	return d.stringField(fieldDescription)
}

// Location is the filesystem path this copy was loaded from. Empty for
// definitions that did not come out of a registry.
func (d Definition) Location() string {
	return d.location
}

// Registry is the registry root owning the loaded copy, when known.
func (d Definition) Registry() string {
	return d.registry
}

// Request is the lookup key for this definition: "identifier==version"
// when a version is present, otherwise the bare identifier.
func (d Definition) Request() string {
	if v := d.Version(); v != "" {
		return d.Identifier() + "==" + v
	}
	return d.Identifier()
}

// Filename is the canonical registry filename: "identifier-version.json",
// or "identifier.json" for unversioned definitions.
func (d Definition) Filename() string {
	if v := d.Version(); v != "" {
		return d.Identifier() + "-" + v + ".json"
	}
	return d.Identifier() + ".json"
}

// Encode produces the canonical serialized form of the document: compact
// JSON with object keys sorted. Provenance fields are excluded, so a copy
// loaded from a registry encodes identically to the definition it was
// installed from. Canonical forms back both content equality and vault
// transmission.
func (d Definition) Encode() ([]byte, error) {
	data, err := json.Marshal(d.doc)
	if err != nil {
		return nil, fmt.Errorf("encoding definition %q: %w", d.Request(), err)
	}
	return data, nil
}

// ContentEquals reports whether two definitions have byte-identical
// canonical forms. Encoding failures count as inequality.
func (d Definition) ContentEquals(other Definition) bool {
	a, err := d.Encode()
	if err != nil {
		return false
	}
	b, err := other.Encode()
	if err != nil {
		return false
	}
	return bytes.Equal(a, b)
}

func (d Definition) stringField(key string) string {
	s, _ := d.doc[key].(string)
	return s
}
