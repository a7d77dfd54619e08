package discovery

import (
	"testing"

	"github.com/avcontrol/lyngdorf/pkg/models"
)

func TestDevice_String(t *testing.T) {
	device := &Device{
		Name:     "MP-60 Cinema",
		Hostname: "lyngdorf-mp60.local",
		IP:       "192.168.1.100",
		Port:     84,
		Model:    models.MP60,
	}

	expected := "Lyngdorf mp-60 (MP-60 Cinema) at 192.168.1.100:84"
	if device.String() != expected {
		t.Errorf("Device.String() = %v, want %v", device.String(), expected)
	}
}

func TestDevice_Addr(t *testing.T) {
	tests := []struct {
		name     string
		device   *Device
		expected string
	}{
		{
			name: "standard control port",
			device: &Device{
				IP:   "192.168.1.100",
				Port: 84,
			},
			expected: "192.168.1.100:84",
		},
		{
			name: "IPv6 address",
			device: &Device{
				IP:   "fe80::1",
				Port: 84,
			},
			expected: "[fe80::1]:84",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.device.Addr(); got != tt.expected {
				t.Errorf("Device.Addr() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDevice_GetMetadata(t *testing.T) {
	device := &Device{
		Metadata: map[string]string{
			"mac": "00:11:22:33:44:55",
			"ver": "1.4",
		},
	}

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{
			name:     "existing key",
			key:      "mac",
			expected: "00:11:22:33:44:55",
		},
		{
			name:     "another existing key",
			key:      "ver",
			expected: "1.4",
		},
		{
			name:     "non-existent key",
			key:      "missing",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := device.GetMetadata(tt.key); got != tt.expected {
				t.Errorf("Device.GetMetadata(%v) = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestDevice_GetMetadata_NilMap(t *testing.T) {
	device := &Device{
		Metadata: nil,
	}

	if got := device.GetMetadata("anything"); got != "" {
		t.Errorf("Device.GetMetadata() with nil map = %v, want empty string", got)
	}
}
