package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/avcontrol/lyngdorf/pkg/models"
)

// Device represents a discovered Lyngdorf device on the network
type Device struct {
	// Name is the mDNS instance name (e.g., "MP-60 Cinema")
	Name string

	// Hostname is the mDNS hostname (e.g., "lyngdorf-mp60.local")
	Hostname string

	// IP is the IPv4 address (e.g., "192.168.1.100")
	IP string

	// Port is the control port (typically 84)
	Port int

	// Model is the matched device model
	Model models.Model

	// Metadata contains additional mDNS TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the device was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the device
func (d *Device) String() string {
	return fmt.Sprintf("%s %s (%s) at %s:%d",
		d.Model.Descriptor().Manufacturer, d.Model, d.Name, d.IP, d.Port)
}

// Addr returns the control endpoint address for the device
func (d *Device) Addr() string {
	return net.JoinHostPort(d.IP, strconv.Itoa(d.Port))
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (d *Device) GetMetadata(key string) string {
	if d.Metadata == nil {
		return ""
	}
	return d.Metadata[key]
}
