// SPDX-License-Identifier: MPL-2.0

// Package definition holds the environment definition value type and the
// filesystem store that registries are made of: loading documents, building
// request-keyed mappings across ordered registry paths, and exporting
// definitions with atomic file placement.
//
// Definition documents are opaque JSON objects; this package reads only the
// identifier, version, and description fields and never interprets the
// rest. Schema validation and environment resolution live elsewhere.
package definition
