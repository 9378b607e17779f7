// SPDX-License-Identifier: MPL-2.0

package definition

import (
	"testing"
)

func TestRequest(t *testing.T) {
	t.Run("versioned", func(t *testing.T) {
		d := New(map[string]any{"identifier": "python", "version": "3.12.1"})
		if got, want := d.Request(), "python==3.12.1"; got != want {
			t.Errorf("Request() = %q, want %q", got, want)
		}
	})

	t.Run("unversioned", func(t *testing.T) {
		d := New(map[string]any{"identifier": "tools"})
		if got, want := d.Request(), "tools"; got != want {
			t.Errorf("Request() = %q, want %q", got, want)
		}
	})
}

func TestFilename(t *testing.T) {
	t.Run("versioned", func(t *testing.T) {
		d := New(map[string]any{"identifier": "python", "version": "3.12.1"})
		if got, want := d.Filename(), "python-3.12.1.json"; got != want {
			t.Errorf("Filename() = %q, want %q", got, want)
		}
	})

	t.Run("unversioned", func(t *testing.T) {
		d := New(map[string]any{"identifier": "tools"})
		if got, want := d.Filename(), "tools.json"; got != want {
			t.Errorf("Filename() = %q, want %q", got, want)
		}
	})
}

func TestEncodeIsCanonical(t *testing.T) {
	d := New(map[string]any{"version": "1.0", "identifier": "zlib", "description": "compression"})
	data, err := d.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	// Object keys come out sorted regardless of construction order.
	want := `{"description":"compression","identifier":"zlib","version":"1.0"}`
	if string(data) != want {
		t.Errorf("Encode() = %s, want %s", data, want)
	}
}

func TestEncodeExcludesProvenance(t *testing.T) {
	doc := map[string]any{"identifier": "zlib", "version": "1.0"}
	loaded := Definition{doc: doc, location: "/srv/reg/zlib-1.0.json", registry: "/srv/reg"}
	fresh := New(doc)

	if !loaded.ContentEquals(fresh) {
		t.Error("a loaded definition does not encode equal to a fresh one with the same document")
	}
}

func TestContentEquals(t *testing.T) {
	a := New(map[string]any{"identifier": "go", "version": "1.25", "env": map[string]any{"GOFLAGS": "-trimpath"}})
	b := New(map[string]any{"version": "1.25", "env": map[string]any{"GOFLAGS": "-trimpath"}, "identifier": "go"})
	c := New(map[string]any{"identifier": "go", "version": "1.25", "env": map[string]any{"GOFLAGS": ""}})

	if !a.ContentEquals(b) {
		t.Error("definitions with identical content compare unequal")
	}
	if a.ContentEquals(c) {
		t.Error("definitions with different content compare equal")
	}
}

func TestNewCopiesDocument(t *testing.T) {
	doc := map[string]any{"identifier": "go", "version": "1.25"}
	d := New(doc)
	doc["version"] = "mutated"

	if got := d.Version(); got != "1.25" {
		t.Errorf("Version() = %q after mutating the source map, want %q", got, "1.25")
	}
}

func TestNonStringFieldsReadAsEmpty(t *testing.T) {
	d := New(map[string]any{"identifier": "x", "version": 2})
	if got := d.Version(); got != "" {
		t.Errorf("Version() = %q for a non-string field, want empty", got)
	}
	if got, want := d.Request(), "x"; got != want {
		t.Errorf("Request() = %q, want %q", got, want)
	}
}
