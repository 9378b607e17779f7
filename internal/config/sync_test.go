// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// configSchema is embedded in config.go and available to tests via the same package.

// =============================================================================
// Schema Sync Tests
// =============================================================================
// These tests verify Go struct JSON tags match CUE schema field names.
// They catch misalignments at CI time, preventing silent parsing failures.

// extractCUEFields extracts all field names from a CUE struct definition.
// It returns a map of field names to whether the field is optional.
// Nested struct fields are not included; only top-level fields of the given definition.
func extractCUEFields(t *testing.T, val cue.Value) map[string]bool {
	t.Helper()

	fields := make(map[string]bool)

	// Iterate over the struct fields
	iter, err := val.Fields(cue.Definitions(false), cue.Optional(true))
	if err != nil {
		t.Fatalf("failed to iterate CUE fields: %v", err)
	}

	for iter.Next() {
		sel := iter.Selector()
		// Skip hidden fields (start with _) and definitions (start with #)
		labelType := sel.LabelType()
		if labelType.IsHidden() || sel.IsDefinition() {
			continue
		}

		// Skip fields that are explicitly set to bottom (_|_) - these are error constraints
		// used to explicitly forbid certain field names.
		// We detect these by checking if the error message contains "explicit error (_|_ literal)".
		// This distinguishes between:
		// - "explicitly _|_" → skip, not a real field
		// - "constraint evaluation error" → include, valid field
		fieldValue := iter.Value()
		if fieldValue.Kind() == cue.BottomKind && fieldValue.Err() != nil {
			errMsg := fieldValue.Err().Error()
			if strings.Contains(errMsg, "explicit error (_|_ literal)") {
				continue
			}
		}

		// The selector string may include the "?" suffix for optional fields
		// We need to strip it to get the actual field name
		fieldName := sel.String()
		fieldName = strings.TrimSuffix(fieldName, "?")
		isOptional := iter.IsOptional()
		fields[fieldName] = isOptional
	}

	return fields
}

// extractGoJSONTags extracts all JSON field names from a Go struct using reflection.
// It returns a map of JSON tag names to whether the field has "omitempty".
// Fields with json:"-" are excluded.
// Embedded structs are not expanded; only direct fields are returned.
func extractGoJSONTags(t *testing.T, typ reflect.Type) map[string]bool {
	t.Helper()

	// Dereference pointer types
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	if typ.Kind() != reflect.Struct {
		t.Fatalf("expected struct type, got %s", typ.Kind())
	}

	fields := make(map[string]bool)

	for field := range typ.Fields() {
		// Skip unexported fields
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("json")
		if tag == "" || tag == "-" {
			// No json tag or explicitly excluded
			continue
		}

		// Parse the tag: "name,omitempty" or just "name"
		parts := strings.Split(tag, ",")
		name := parts[0]
		if name == "" || name == "-" {
			continue
		}

		hasOmitempty := slices.Contains(parts[1:], "omitempty")

		fields[name] = hasOmitempty
	}

	return fields
}

// assertFieldsSync verifies that CUE schema fields and Go struct JSON tags are in sync.
// It checks:
// 1. Every CUE field has a corresponding Go JSON tag
// 2. Every Go JSON tag has a corresponding CUE field
// 3. Optional/omitempty alignment (warning only, not a failure)
func assertFieldsSync(t *testing.T, structName string, cueFields, goFields map[string]bool) {
	t.Helper()

	// Check CUE fields exist in Go struct
	for field, isOptional := range cueFields {
		hasOmitempty, exists := goFields[field]
		if !exists {
			t.Errorf("[%s] CUE field %q not found in Go struct (missing JSON tag)", structName, field)
			continue
		}
		// Warn about optional/omitempty mismatch (not a hard failure)
		if isOptional && !hasOmitempty {
			t.Logf("[%s] Note: CUE field %q is optional but Go field lacks omitempty tag", structName, field)
		}
	}

	// Check Go fields exist in CUE schema
	for field := range goFields {
		if _, exists := cueFields[field]; !exists {
			t.Errorf("[%s] Go JSON tag %q not found in CUE schema (missing CUE field)", structName, field)
		}
	}
}

// getCUESchema compiles the embedded CUE schema and returns the context and compiled value.
func getCUESchema(t *testing.T) (cue.Value, *cue.Context) {
	t.Helper()

	ctx := cuecontext.New()
	schema := ctx.CompileString(configSchema)
	if schema.Err() != nil {
		t.Fatalf("failed to compile CUE schema: %v", schema.Err())
	}

	return schema, ctx
}

// lookupDefinition looks up a CUE definition by path (e.g., "#Config").
func lookupDefinition(t *testing.T, schema cue.Value, defPath string) cue.Value {
	t.Helper()

	def := schema.LookupPath(cue.ParsePath(defPath))
	if def.Err() != nil {
		t.Fatalf("failed to lookup CUE definition %s: %v", defPath, def.Err())
	}

	return def
}

// TestConfigSchemaSync verifies Config Go struct matches #Config CUE definition.
func TestConfigSchemaSync(t *testing.T) {
	schema, _ := getCUESchema(t)
	cueFields := extractCUEFields(t, lookupDefinition(t, schema, "#Config"))
	goFields := extractGoJSONTags(t, reflect.TypeFor[Config]())

	assertFieldsSync(t, "Config", cueFields, goFields)
}

// TestVaultConfigSchemaSync verifies VaultConfig Go struct matches #VaultConfig CUE definition.
func TestVaultConfigSchemaSync(t *testing.T) {
	schema, _ := getCUESchema(t)
	cueFields := extractCUEFields(t, lookupDefinition(t, schema, "#VaultConfig"))
	goFields := extractGoJSONTags(t, reflect.TypeFor[VaultConfig]())

	assertFieldsSync(t, "VaultConfig", cueFields, goFields)
}

// TestShellConfigSchemaSync verifies ShellConfig Go struct matches #ShellConfig CUE definition.
func TestShellConfigSchemaSync(t *testing.T) {
	schema, _ := getCUESchema(t)
	cueFields := extractCUEFields(t, lookupDefinition(t, schema, "#ShellConfig"))
	goFields := extractGoJSONTags(t, reflect.TypeFor[ShellConfig]())

	assertFieldsSync(t, "ShellConfig", cueFields, goFields)
}

// TestRegistriesConfigSchemaSync verifies RegistriesConfig Go struct matches #RegistriesConfig CUE definition.
func TestRegistriesConfigSchemaSync(t *testing.T) {
	schema, _ := getCUESchema(t)
	cueFields := extractCUEFields(t, lookupDefinition(t, schema, "#RegistriesConfig"))
	goFields := extractGoJSONTags(t, reflect.TypeFor[RegistriesConfig]())

	assertFieldsSync(t, "RegistriesConfig", cueFields, goFields)
}

// TestUIConfigSchemaSync verifies UIConfig Go struct matches #UIConfig CUE definition.
func TestUIConfigSchemaSync(t *testing.T) {
	schema, _ := getCUESchema(t)
	cueFields := extractCUEFields(t, lookupDefinition(t, schema, "#UIConfig"))
	goFields := extractGoJSONTags(t, reflect.TypeFor[UIConfig]())

	assertFieldsSync(t, "UIConfig", cueFields, goFields)
}

// =============================================================================
// Schema Boundary Tests
// =============================================================================
// These tests verify CUE schema constraints (MaxRunes, non-empty, etc.)
// catch invalid values at parse time. Each test validates boundary conditions
// for string length limits and empty string rejections.

// validateCUE compiles CUE test data against the embedded config schema's #Config definition.
// It returns nil if the data is valid, or an error describing why validation failed.
func validateCUE(t *testing.T, cueData string) error {
	t.Helper()

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		t.Fatalf("failed to compile schema: %v", schemaValue.Err())
	}

	userValue := ctx.CompileString(cueData)
	if userValue.Err() != nil {
		return fmt.Errorf("CUE compile error: %w", userValue.Err())
	}

	schemaDef := schemaValue.LookupPath(cue.ParsePath("#Config"))
	if schemaDef.Err() != nil {
		t.Fatalf("failed to lookup #Config: %v", schemaDef.Err())
	}

	unified := schemaDef.Unify(userValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("CUE validation error: %w", err)
	}

	return nil
}

// TestVaultServerConstraints verifies vault.server requires an http(s) prefix
// and enforces the 2048 rune limit.
func TestVaultServerConstraints(t *testing.T) {
	tests := []struct {
		name    string
		cueData string
		wantErr bool
	}{
		{
			name:    "https URL accepted",
			cueData: `vault: server: "https://vault.example.com"`,
			wantErr: false,
		},
		{
			name:    "http URL accepted",
			cueData: `vault: server: "http://localhost:8080"`,
			wantErr: false,
		},
		{
			name:    "empty string rejected",
			cueData: `vault: server: ""`,
			wantErr: true,
		},
		{
			name:    "non-http scheme rejected",
			cueData: `vault: server: "ftp://vault.example.com"`,
			wantErr: true,
		},
		{
			name:    "schemeless host rejected",
			cueData: `vault: server: "vault.example.com"`,
			wantErr: true,
		},
		{
			name:    "2048-char URL accepted",
			cueData: `vault: server: "https://` + strings.Repeat("a", 2040) + `"`,
			wantErr: false,
		},
		{
			name:    "2049-char URL rejected",
			cueData: `vault: server: "https://` + strings.Repeat("a", 2041) + `"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCUE(t, tt.cueData)
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got: %v", err)
			}
		})
	}
}

// TestVaultAuthorConstraints verifies vault.author rejects empty strings and
// enforces the 256 rune limit.
func TestVaultAuthorConstraints(t *testing.T) {
	tests := []struct {
		name    string
		cueData string
		wantErr bool
	}{
		{
			name:    "empty string rejected",
			cueData: `vault: author: ""`,
			wantErr: true,
		},
		{
			name:    "name accepted",
			cueData: `vault: author: "koala"`,
			wantErr: false,
		},
		{
			name:    "256-char name accepted",
			cueData: `vault: author: "` + strings.Repeat("a", 256) + `"`,
			wantErr: false,
		},
		{
			name:    "257-char name rejected",
			cueData: `vault: author: "` + strings.Repeat("a", 257) + `"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCUE(t, tt.cueData)
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got: %v", err)
			}
		})
	}
}

// TestShellDefaultConstraints verifies shell.default rejects empty strings and
// enforces the 256 rune limit.
func TestShellDefaultConstraints(t *testing.T) {
	tests := []struct {
		name    string
		cueData string
		wantErr bool
	}{
		{
			name:    "empty string rejected",
			cueData: `shell: default: ""`,
			wantErr: true,
		},
		{
			name:    "shell name accepted",
			cueData: `shell: default: "zsh"`,
			wantErr: false,
		},
		{
			name:    "shell path accepted",
			cueData: `shell: default: "/usr/bin/fish"`,
			wantErr: false,
		},
		{
			name:    "257-char name rejected",
			cueData: `shell: default: "` + strings.Repeat("a", 257) + `"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCUE(t, tt.cueData)
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got: %v", err)
			}
		})
	}
}

// TestRegistriesConstraints verifies registries.root and registries.defaults
// entries reject empty strings, enforce the 4096 rune limit, and that
// disable_discovery only accepts booleans.
func TestRegistriesConstraints(t *testing.T) {
	tests := []struct {
		name    string
		cueData string
		wantErr bool
	}{
		{
			name:    "root path accepted",
			cueData: `registries: root: "/srv/projects"`,
			wantErr: false,
		},
		{
			name:    "empty root rejected",
			cueData: `registries: root: ""`,
			wantErr: true,
		},
		{
			name:    "4096-char root accepted",
			cueData: `registries: root: "` + strings.Repeat("a", 4096) + `"`,
			wantErr: false,
		},
		{
			name:    "4097-char root rejected",
			cueData: `registries: root: "` + strings.Repeat("a", 4097) + `"`,
			wantErr: true,
		},
		{
			name:    "defaults entries accepted",
			cueData: `registries: defaults: ["/srv/one", "/srv/two"]`,
			wantErr: false,
		},
		{
			name:    "empty defaults entry rejected",
			cueData: `registries: defaults: ["/srv/one", ""]`,
			wantErr: true,
		},
		{
			name:    "disable_discovery bool accepted",
			cueData: `registries: disable_discovery: true`,
			wantErr: false,
		},
		{
			name:    "disable_discovery string rejected",
			cueData: `registries: disable_discovery: "yes"`,
			wantErr: true,
		},
		{
			name:    "unknown field rejected",
			cueData: `registries: bogus: true`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCUE(t, tt.cueData)
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got: %v", err)
			}
		})
	}
}

// TestValidateRegistryPaths verifies the Go-level validation for registry path
// lists, covering the uniqueness constraint that CUE cannot express.
func TestValidateRegistryPaths(t *testing.T) {
	tests := []struct {
		name    string
		paths   []RegistryPath
		wantErr bool
	}{
		{
			name:    "empty list valid",
			paths:   nil,
			wantErr: false,
		},
		{
			name:    "single path valid",
			paths:   []RegistryPath{"/srv/one"},
			wantErr: false,
		},
		{
			name:    "distinct paths valid",
			paths:   []RegistryPath{"/srv/one", "/srv/two", "/srv/three"},
			wantErr: false,
		},
		{
			name:    "duplicate path rejected",
			paths:   []RegistryPath{"/srv/one", "/srv/one"},
			wantErr: true,
		},
		{
			name:    "duplicate path with trailing slash rejected",
			paths:   []RegistryPath{"/srv/one", "/srv/one/"},
			wantErr: true,
		},
		{
			name:    "duplicate path with dot segment rejected",
			paths:   []RegistryPath{"/srv/one", "/srv/./one"},
			wantErr: true,
		},
		{
			name:    "nested paths are distinct",
			paths:   []RegistryPath{"/srv/one", "/srv/one/nested"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRegistryPaths("registries.defaults", tt.paths)
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got: %v", err)
			}
		})
	}
}

// TestValidateRegistryPathsErrorMessage verifies the error identifies both the
// failing index and the index of the first occurrence.
func TestValidateRegistryPathsErrorMessage(t *testing.T) {
	err := validateRegistryPaths("registries.defaults", []RegistryPath{"/srv/a", "/srv/b", "/srv/a/"})
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}

	msg := err.Error()
	if !strings.Contains(msg, "registries.defaults[2]") {
		t.Errorf("error should name the duplicate index, got: %s", msg)
	}
	if !strings.Contains(msg, "registries.defaults[0]") {
		t.Errorf("error should name the first occurrence, got: %s", msg)
	}
}
