// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"errors"
	"net/http"
	"testing"
)

func TestClassifyProbes(t *testing.T) {
	tests := []struct {
		name        string
		conflicts   int
		installable int
		want        outcome
	}{
		{"all new", 0, 3, outcomeInstalled},
		{"all identical", 0, 0, outcomeNoChanges},
		{"conflicts dominate", 2, 3, outcomeConflict},
		{"conflicts without installable", 1, 0, outcomeConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyProbes(tt.conflicts, tt.installable); got != tt.want {
				t.Errorf("classifyProbes(%d, %d) = %d, want %d", tt.conflicts, tt.installable, got, tt.want)
			}
		})
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name string
		code int
		want outcome
	}{
		{"ok", http.StatusOK, outcomeInstalled},
		{"created", http.StatusCreated, outcomeInstalled},
		{"conflict", http.StatusConflict, outcomeConflict},
		{"expectation failed", http.StatusExpectationFailed, outcomeNoChanges},
		{"server error", http.StatusInternalServerError, outcomeFailed},
		{"not found", http.StatusNotFound, outcomeFailed},
		{"redirect", http.StatusMovedPermanently, outcomeFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyStatus(tt.code); got != tt.want {
				t.Errorf("classifyStatus(%d) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestOutcomeError(t *testing.T) {
	details := outcomeDetails{
		registry:  "main",
		conflicts: []string{"go==1.25"},
		count:     1,
		reason:    "storage offline",
	}

	if err := outcomeError(outcomeInstalled, details); err != nil {
		t.Errorf("installed outcome produced error %v", err)
	}
	if err := outcomeError(outcomeConflict, details); !errors.Is(err, ErrDefinitionsExist) {
		t.Errorf("conflict outcome = %v, want ErrDefinitionsExist", err)
	}
	if err := outcomeError(outcomeNoChanges, details); !errors.Is(err, ErrNoChanges) {
		t.Errorf("no-changes outcome = %v, want ErrNoChanges", err)
	}
	if err := outcomeError(outcomeFailed, details); !errors.Is(err, ErrInstallFailed) {
		t.Errorf("failed outcome = %v, want ErrInstallFailed", err)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"invalid target",
			&InvalidTargetError{Path: "/tmp/nope"},
			`"/tmp/nope" is not a valid registry directory`,
		},
		{
			"definitions exist with count",
			&DefinitionsExistError{Registry: "main", Count: 2},
			`2 definition(s) already exist in registry "main"`,
		},
		{
			"definitions exist without count",
			&DefinitionsExistError{Registry: "main"},
			`definitions already exist in registry "main"`,
		},
		{
			"install failed",
			&InstallFailedError{Registry: "main", Reason: "storage offline"},
			`install to registry "main" failed: storage offline`,
		},
		{
			"install failed before target selection",
			&InstallFailedError{Reason: "vault registries could not be retrieved: EOF"},
			"vault registries could not be retrieved: EOF",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
