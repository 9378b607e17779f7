// SPDX-License-Identifier: MPL-2.0

package registry

import "net/http"

// outcome classifies the result of committing an install batch. Both
// installers reduce their transport-specific signals to this enum and
// render failures through outcomeError, keeping filesystem and vault
// conflict semantics in lockstep.
type outcome int

const (
	outcomeInstalled outcome = iota
	outcomeConflict
	outcomeNoChanges
	outcomeFailed
)

// classifyProbes reduces the Path Installer's probe counters: unresolved
// conflicts dominate, then an empty installable set, then success.
func classifyProbes(conflicts, installable int) outcome {
	switch {
	case conflicts > 0:
		return outcomeConflict
	case installable == 0:
		return outcomeNoChanges
	default:
		return outcomeInstalled
	}
}

// classifyStatus reduces a vault release status code. 417 is the vault's
// designated "nothing to commit" response.
func classifyStatus(code int) outcome {
	switch {
	case code >= 200 && code <= 299:
		return outcomeInstalled
	case code == http.StatusConflict:
		return outcomeConflict
	case code == http.StatusExpectationFailed:
		return outcomeNoChanges
	default:
		return outcomeFailed
	}
}

// outcomeDetails carries the transport-specific context a rendered failure
// needs: which registry, which conflicts, and the underlying reason.
type outcomeDetails struct {
	registry  string
	conflicts []string
	count     int
	reason    string
}

// outcomeError maps a non-success outcome onto the shared error taxonomy.
// A successful outcome maps to nil.
func outcomeError(o outcome, d outcomeDetails) error {
	switch o {
	case outcomeInstalled:
		return nil
	case outcomeConflict:
		return &DefinitionsExistError{Registry: d.registry, Count: d.count, Requests: d.conflicts}
	case outcomeNoChanges:
		return ErrNoChanges
	default:
		return &InstallFailedError{Registry: d.registry, Reason: d.reason}
	}
}
