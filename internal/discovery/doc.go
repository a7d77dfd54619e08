// Package discovery provides mDNS-based discovery of Lyngdorf devices.
//
// This package implements multicast DNS (mDNS) service discovery to locate
// Lyngdorf processors and amplifiers on the local network. The devices
// advertise their control channel as a "_telnet._tcp" service; entries are
// matched against the supported model names.
//
// # Usage Example
//
//	// Discover devices with 10-second timeout
//	devices, err := discovery.ScanForDevices(10 * time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, device := range devices {
//	    fmt.Printf("Found: %s at %s (%s)\n",
//	        device.Name, device.IP, device.Model)
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Devices must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
//
// # Thread Safety
//
// This package is safe for concurrent use. Multiple discovery sessions can
// run simultaneously without interference.
package discovery
