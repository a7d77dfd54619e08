package config

import "time"

// Registry represents the entire user configuration file.
// This stores user-defined metadata for devices and application preferences.
type Registry struct {
	Version     int                `yaml:"version"`
	Devices     map[string]*Device `yaml:"devices,omitempty"` // Keyed by a user-chosen device name
	Preferences *Preferences       `yaml:"preferences,omitempty"`
}

// Device represents user-defined metadata for a single Lyngdorf device.
// This is keyed by a short user-chosen name in the Registry, so commands
// can say `lyngdorf-ctl volume cinema -- -25` instead of an IP address.
type Device struct {
	Host     string    `yaml:"host"`                // Host name or IP address
	Model    string    `yaml:"model,omitempty"`     // Model name, e.g. "mp-60"; detected when empty
	Nickname string    `yaml:"nickname,omitempty"`  // Longer display name
	LastSeen time.Time `yaml:"last_seen,omitempty"` // Last successful connection time
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	DefaultDevice string `yaml:"default_device,omitempty"` // Device key used when none is given
	WatchInterval int    `yaml:"watch_interval,omitempty"` // Dashboard refresh interval in seconds
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:     1,
		Devices:     make(map[string]*Device),
		Preferences: &Preferences{WatchInterval: 1},
	}
}

// GetDevice retrieves device metadata by its registry key.
// Returns nil if the device doesn't exist in the registry.
func (r *Registry) GetDevice(name string) *Device {
	return r.Devices[name]
}

// Resolve maps a command-line device argument to a host and model. The
// argument may be a registry key or a bare host; an empty argument falls
// back to the default device preference.
func (r *Registry) Resolve(arg string) (host, model string, ok bool) {
	if arg == "" {
		if r.Preferences == nil || r.Preferences.DefaultDevice == "" {
			return "", "", false
		}
		arg = r.Preferences.DefaultDevice
	}
	if d := r.Devices[arg]; d != nil {
		return d.Host, d.Model, true
	}
	// Not registered; treat the argument as a host.
	return arg, "", true
}

// EnsureDevice ensures a device entry exists in the registry.
// If the device doesn't exist, creates a new entry with default values.
// Returns the device entry (existing or newly created).
func (r *Registry) EnsureDevice(name string) *Device {
	if r.Devices == nil {
		r.Devices = make(map[string]*Device)
	}

	if device, exists := r.Devices[name]; exists {
		return device
	}

	device := &Device{}
	r.Devices[name] = device
	return device
}

// RememberDevice records a successful connection.
func (r *Registry) RememberDevice(name, host, model string) {
	device := r.EnsureDevice(name)
	device.Host = host
	device.Model = model
	device.LastSeen = time.Now()
}

// SetDeviceNickname sets a user-friendly nickname for a device.
func (r *Registry) SetDeviceNickname(name, nickname string) {
	device := r.EnsureDevice(name)
	device.Nickname = nickname
}
