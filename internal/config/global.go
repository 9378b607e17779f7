// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"sync"
)

// Package-level cache so commands share one loaded configuration per process.
// Guarded by mu; the override setters exist for tests and the --config flag
// and clear the cache so the next Load observes them.
var (
	mu sync.Mutex

	globalConfig           *Config
	configPath             string
	errLastLoad            error
	configDirOverride      string
	configFilePathOverride string
)

// Load returns the cached configuration, reading it from disk on first use.
// The result is cached until ResetCache, Reset, or an override setter runs.
func Load() (*Config, error) {
	mu.Lock()
	if globalConfig != nil {
		cfg := globalConfig
		mu.Unlock()
		return cfg, nil
	}
	filePathOverride := configFilePathOverride
	mu.Unlock()

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: filePathOverride,
	})

	mu.Lock()
	defer mu.Unlock()
	errLastLoad = err
	if err != nil {
		return nil, err
	}
	globalConfig = cfg
	configPath = path
	return cfg, nil
}

// Get returns the configuration, falling back to built-in defaults when
// loading fails. The load error, if any, is available via LastLoadError.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// LastLoadError returns the error from the most recent Load attempt,
// or nil if the last load succeeded (or no load has happened yet).
func LastLoadError() error {
	mu.Lock()
	defer mu.Unlock()
	return errLastLoad
}

// ConfigFilePath returns the path of the config file the cached configuration
// was loaded from. It is empty when the configuration came from defaults.
func ConfigFilePath() string {
	mu.Lock()
	defer mu.Unlock()
	return configPath
}

// SetConfigDirOverride overrides the platform config directory and clears the
// cache so the next Load reads from the new location.
//
// This is primarily intended for testing to bypass os.UserHomeDir() which
// doesn't reliably respect the HOME env var on all platforms (e.g., macOS in CI).
func SetConfigDirOverride(dir string) {
	mu.Lock()
	defer mu.Unlock()
	configDirOverride = dir
	clearCacheLocked()
}

// SetConfigFilePathOverride pins loading to a specific config file, bypassing
// directory resolution entirely. Used by the --config flag.
func SetConfigFilePathOverride(path string) {
	mu.Lock()
	defer mu.Unlock()
	configFilePathOverride = path
	clearCacheLocked()
}

// ResetCache clears the cached configuration so the next Load re-reads it.
// Overrides stay in place.
func ResetCache() {
	mu.Lock()
	defer mu.Unlock()
	clearCacheLocked()
}

// Reset clears the cached configuration and all overrides. Call from test
// cleanup to restore defaults.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	configDirOverride = ""
	configFilePathOverride = ""
	clearCacheLocked()
}

func configDirOverrideValue() string {
	mu.Lock()
	defer mu.Unlock()
	return configDirOverride
}

func clearCacheLocked() {
	globalConfig = nil
	configPath = ""
	errLastLoad = nil
}
