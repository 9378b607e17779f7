// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

const (
	// DefaultVaultServer is the vault reached when no server is configured.
	DefaultVaultServer ServerURL = "https://vault.enviz.dev"
	// DefaultShellKind is the interactive shell spawned by default.
	DefaultShellKind ShellKind = "bash"
	// DefaultDiscoveryRoot bounds registry discovery when no root is configured.
	DefaultDiscoveryRoot RegistryRootPath = "/srv/projects"
)

// DefaultRegistryPaths returns the registries consulted when none are
// configured, in precedence order.
func DefaultRegistryPaths() []RegistryPath {
	return []RegistryPath{
		"/srv/enviz/registry/primary/default",
		"/srv/enviz/registry/secondary/default",
		"/srv/projects/.enviz/registry/default",
	}
}

var (
	// ErrInvalidServerURL is returned when a ServerURL value is not an http(s) URL.
	ErrInvalidServerURL = errors.New("invalid vault server URL")
	// ErrInvalidShellKind is returned when a ShellKind value is whitespace-only.
	ErrInvalidShellKind = errors.New("invalid shell kind")
	// ErrInvalidRegistryRootPath is returned when a RegistryRootPath value is not absolute.
	ErrInvalidRegistryRootPath = errors.New("invalid registry root path")
	// ErrInvalidRegistryPath is the sentinel error wrapped by InvalidRegistryPathError.
	ErrInvalidRegistryPath = errors.New("invalid registry path")
	// ErrInvalidVaultConfig is the sentinel error wrapped by InvalidVaultConfigError.
	ErrInvalidVaultConfig = errors.New("invalid vault config")
	// ErrInvalidShellConfig is the sentinel error wrapped by InvalidShellConfigError.
	ErrInvalidShellConfig = errors.New("invalid shell config")
	// ErrInvalidRegistriesConfig is the sentinel error wrapped by InvalidRegistriesConfigError.
	ErrInvalidRegistriesConfig = errors.New("invalid registries config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ServerURL is the base URL of a vault server. The zero value is valid
	// and means "use the default vault"; non-zero values must parse as an
	// http or https URL with a host.
	ServerURL string

	// InvalidServerURLError is returned when a ServerURL value is not an
	// http(s) URL. It wraps ErrInvalidServerURL for errors.Is() compatibility.
	InvalidServerURLError struct {
		Value ServerURL
	}

	// ShellKind names the shell executable to spawn, resolved via PATH.
	// The zero value is valid and means "use the default shell";
	// non-zero values must not be whitespace-only.
	ShellKind string

	// InvalidShellKindError is returned when a ShellKind value is
	// whitespace-only. It wraps ErrInvalidShellKind for errors.Is().
	InvalidShellKindError struct {
		Value ShellKind
	}

	// RegistryRootPath is the directory that bounds registry discovery.
	// The zero value is valid and means "use the default root";
	// non-zero values must be absolute.
	RegistryRootPath string

	// InvalidRegistryRootPathError is returned when a RegistryRootPath
	// value is relative. It wraps ErrInvalidRegistryRootPath for errors.Is().
	InvalidRegistryRootPathError struct {
		Value RegistryRootPath
	}

	// RegistryPath is a filesystem path to a registry directory.
	// A valid path must be non-empty and not whitespace-only.
	RegistryPath string

	// InvalidRegistryPathError is returned when a RegistryPath value is
	// empty or whitespace-only. It wraps ErrInvalidRegistryPath for errors.Is().
	InvalidRegistryPathError struct {
		Value RegistryPath
	}

	// InvalidVaultConfigError is returned when a VaultConfig has invalid fields.
	// It wraps ErrInvalidVaultConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidVaultConfigError struct {
		FieldErrors []error
	}

	// InvalidShellConfigError is returned when a ShellConfig has invalid fields.
	// It wraps ErrInvalidShellConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidShellConfigError struct {
		FieldErrors []error
	}

	// InvalidRegistriesConfigError is returned when a RegistriesConfig has
	// invalid fields. It wraps ErrInvalidRegistriesConfig for errors.Is()
	// compatibility and collects field-level validation errors.
	InvalidRegistriesConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Vault configures the remote definition vault.
		Vault VaultConfig `json:"vault" mapstructure:"vault"`
		// Shell configures interactive sub-shells.
		Shell ShellConfig `json:"shell" mapstructure:"shell"`
		// Registries configures definition registry lookup.
		Registries RegistriesConfig `json:"registries" mapstructure:"registries"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// VaultConfig configures the remote definition vault.
	VaultConfig struct {
		// Server is the vault's base URL.
		Server ServerURL `json:"server" mapstructure:"server"`
		// Author overrides the release author name reported to the vault.
		Author string `json:"author,omitempty" mapstructure:"author"`
	}

	// ShellConfig configures interactive sub-shells.
	ShellConfig struct {
		// Default names the shell spawned when none is requested.
		Default ShellKind `json:"default" mapstructure:"default"`
	}

	// RegistriesConfig configures definition registry lookup.
	RegistriesConfig struct {
		// Root bounds ancestor discovery; directories outside it are
		// never probed.
		Root RegistryRootPath `json:"root" mapstructure:"root"`
		// Defaults lists registries consulted ahead of discovered ones,
		// in precedence order.
		Defaults []RegistryPath `json:"defaults" mapstructure:"defaults"`
		// DisableDiscovery turns off ancestor discovery entirely.
		DisableDiscovery bool `json:"disable_discovery" mapstructure:"disable_discovery"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables verbose output.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// String returns the string representation of the ServerURL.
func (u ServerURL) String() string { return string(u) }

// IsValid returns whether the ServerURL is valid. The zero value is
// valid; non-zero values must parse as an http or https URL with a host.
func (u ServerURL) IsValid() (bool, []error) {
	if u == "" {
		return true, nil
	}
	parsed, err := url.Parse(string(u))
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return false, []error{&InvalidServerURLError{Value: u}}
	}
	return true, nil
}

// Error implements the error interface for InvalidServerURLError.
func (e *InvalidServerURLError) Error() string {
	return fmt.Sprintf("invalid vault server URL %q: must be an http(s) URL with a host", e.Value)
}

// Unwrap returns ErrInvalidServerURL for errors.Is() compatibility.
func (e *InvalidServerURLError) Unwrap() error { return ErrInvalidServerURL }

// String returns the string representation of the ShellKind.
func (k ShellKind) String() string { return string(k) }

// IsValid returns whether the ShellKind is valid. The zero value is
// valid; non-zero values must not be whitespace-only.
func (k ShellKind) IsValid() (bool, []error) {
	if k == "" {
		return true, nil
	}
	if strings.TrimSpace(string(k)) == "" {
		return false, []error{&InvalidShellKindError{Value: k}}
	}
	return true, nil
}

// Error implements the error interface for InvalidShellKindError.
func (e *InvalidShellKindError) Error() string {
	return fmt.Sprintf("invalid shell kind %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidShellKind for errors.Is() compatibility.
func (e *InvalidShellKindError) Unwrap() error { return ErrInvalidShellKind }

// String returns the string representation of the RegistryRootPath.
func (p RegistryRootPath) String() string { return string(p) }

// IsValid returns whether the RegistryRootPath is valid. The zero value
// is valid; non-zero values must be absolute paths.
func (p RegistryRootPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if !filepath.IsAbs(string(p)) {
		return false, []error{&InvalidRegistryRootPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidRegistryRootPathError.
func (e *InvalidRegistryRootPathError) Error() string {
	return fmt.Sprintf("invalid registry root path %q: must be absolute", e.Value)
}

// Unwrap returns ErrInvalidRegistryRootPath for errors.Is() compatibility.
func (e *InvalidRegistryRootPathError) Unwrap() error { return ErrInvalidRegistryRootPath }

// String returns the string representation of the RegistryPath.
func (p RegistryPath) String() string { return string(p) }

// IsValid returns whether the RegistryPath is valid.
// A valid path must be non-empty and not whitespace-only.
func (p RegistryPath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidRegistryPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidRegistryPathError.
func (e *InvalidRegistryPathError) Error() string {
	return fmt.Sprintf("invalid registry path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidRegistryPath for errors.Is() compatibility.
func (e *InvalidRegistryPathError) Unwrap() error { return ErrInvalidRegistryPath }

// IsValid returns whether the VaultConfig has valid fields.
// It delegates to Server.IsValid(); Author needs no validation.
func (c VaultConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Server.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidVaultConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidVaultConfigError.
func (e *InvalidVaultConfigError) Error() string {
	return fmt.Sprintf("invalid vault config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidVaultConfig for errors.Is() compatibility.
func (e *InvalidVaultConfigError) Unwrap() error { return ErrInvalidVaultConfig }

// IsValid returns whether the ShellConfig has valid fields.
// It delegates to Default.IsValid().
func (c ShellConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Default.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidShellConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidShellConfigError.
func (e *InvalidShellConfigError) Error() string {
	return fmt.Sprintf("invalid shell config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidShellConfig for errors.Is() compatibility.
func (e *InvalidShellConfigError) Unwrap() error { return ErrInvalidShellConfig }

// IsValid returns whether the RegistriesConfig has valid fields.
// It delegates to Root.IsValid() and each Defaults entry's IsValid();
// DisableDiscovery needs no validation.
func (c RegistriesConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Root.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, path := range c.Defaults {
		if valid, fieldErrs := path.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidRegistriesConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidRegistriesConfigError.
func (e *InvalidRegistriesConfigError) Error() string {
	return fmt.Sprintf("invalid registries config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidRegistriesConfig for errors.Is() compatibility.
func (e *InvalidRegistriesConfigError) Unwrap() error { return ErrInvalidRegistriesConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to Vault.IsValid(), Shell.IsValid(), and
// Registries.IsValid(). UI has only bool fields and needs no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Vault.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Shell.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Registries.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Vault: VaultConfig{
			Server: DefaultVaultServer,
			Author: "", // Resolved from the OS user when empty.
		},
		Shell: ShellConfig{
			Default: DefaultShellKind,
		},
		Registries: RegistriesConfig{
			Root:             DefaultDiscoveryRoot,
			Defaults:         DefaultRegistryPaths(),
			DisableDiscovery: false,
		},
		UI: UIConfig{
			Verbose: false,
		},
	}
}
