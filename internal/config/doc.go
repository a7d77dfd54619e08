// Package config provides user configuration management for the lyngdorf tools.
//
// This package manages a YAML-based configuration file that stores user-defined
// metadata for Lyngdorf devices, including registry names, nicknames, and
// application preferences. The configuration follows OS-specific conventions
// for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/lyngdorf/config.yaml or $HOME/.config/lyngdorf/config.yaml
//   - macOS: $HOME/.config/lyngdorf/config.yaml
//   - Windows: %LOCALAPPDATA%\lyngdorf\config.yaml
//
// # Usage Example
//
//	// Load the global registry
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Record a device under a short name
//	registry.RememberDevice("cinema", "192.168.1.100", "mp-60")
//	registry.SetDeviceNickname("cinema", "Cinema Processor")
//
//	// Resolve a command-line argument to a host
//	host, model, ok := registry.Resolve("cinema")
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
