// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks on install failures.
var (
	ErrInvalidTarget    = errors.New("invalid registry target")
	ErrDefinitionsExist = errors.New("definitions already exist")
	ErrNoChanges        = errors.New("nothing to install")
	ErrInstallFailed    = errors.New("install failed")
)

// InvalidTargetError reports an install aimed at a path that is not an
// existing directory.
type InvalidTargetError struct {
	Path string
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("%q is not a valid registry directory", e.Path)
}

func (e *InvalidTargetError) Unwrap() error { return ErrInvalidTarget }

// DefinitionsExistError reports an install batch aborted because existing
// definitions differ from their incoming counterparts and overwriting was
// not requested. Count is the number of unresolved conflicts; Requests
// lists their lookup keys when the transport reported them (the vault may
// not).
type DefinitionsExistError struct {
	Registry string
	Count    int
	Requests []string
}

func (e *DefinitionsExistError) Error() string {
	if e.Count > 0 {
		return fmt.Sprintf("%d definition(s) already exist in registry %q", e.Count, e.Registry)
	}
	return fmt.Sprintf("definitions already exist in registry %q", e.Registry)
}

func (e *DefinitionsExistError) Unwrap() error { return ErrDefinitionsExist }

// InstallFailedError reports a transport or adapter level failure, local or
// remote, with a human-readable cause. Registry is empty when the failure
// precedes target selection (for example the vault registry listing).
type InstallFailedError struct {
	Registry string
	Reason   string
}

func (e *InstallFailedError) Error() string {
	if e.Registry == "" {
		return e.Reason
	}
	return fmt.Sprintf("install to registry %q failed: %s", e.Registry, e.Reason)
}

func (e *InstallFailedError) Unwrap() error { return ErrInstallFailed }
