// Package config provides operator configuration management for Limewire.
//
// This package manages a small YAML-based registry of remembered FC
// control-plane endpoints and UI preferences, stored in an OS-appropriate
// location, plus env-var-sourced store connection settings.
//
// # Configuration File Location
//
// The registry file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/limewire/config.yaml or $HOME/.config/limewire/config.yaml
//   - macOS: $HOME/.config/limewire/config.yaml
//   - Windows: %LOCALAPPDATA%\limewire\config.yaml
//
// # Store settings
//
// Store connection parameters are never persisted to the registry; they
// are read fresh from the environment on every startup via
// LoadSettingsFromEnv, so rotating a store credential never requires
// touching a file on disk.
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across
// goroutines. File operations are protected by a mutex to ensure atomic
// writes.
package config
