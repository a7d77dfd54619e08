package discovery

import (
	"net"
	"testing"

	"github.com/grandcat/zeroconf"

	"github.com/avcontrol/lyngdorf/pkg/models"
)

func TestScanner_parseServiceEntry(t *testing.T) {
	scanner := NewScanner()

	tests := []struct {
		name      string
		entry     *zeroconf.ServiceEntry
		wantNil   bool
		wantModel models.Model
		wantIP    string
		wantPort  int
	}{
		{
			name: "MP-60 with IPv4",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "MP-60 Cinema"},
				HostName:      "lyngdorf-mp60.local.",
				Port:          84,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.100")},
				Text:          []string{"mac=00:11:22:33:44:55", "ver=1.4"},
			},
			wantNil:   false,
			wantModel: models.MP60,
			wantIP:    "192.168.1.100",
			wantPort:  84,
		},
		{
			name: "model only in hostname",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "Living Room"},
				HostName:      "tdai3400-123456.local",
				Port:          84,
				AddrIPv4:      []net.IP{net.ParseIP("10.0.0.5")},
			},
			wantNil:   false,
			wantModel: models.TDAI3400,
			wantIP:    "10.0.0.5",
			wantPort:  84,
		},
		{
			name: "undashed model name in instance",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "tdai1120"},
				HostName:      "amp.local",
				Port:          84,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.50")},
			},
			wantNil:   false,
			wantModel: models.TDAI1120,
			wantIP:    "192.168.1.50",
			wantPort:  84,
		},
		{
			name: "no port specified defaults to 84",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "MP-40"},
				HostName:      "mp40.local",
				Port:          0,
				AddrIPv4:      []net.IP{net.ParseIP("172.16.0.1")},
			},
			wantNil:   false,
			wantModel: models.MP40,
			wantIP:    "172.16.0.1",
			wantPort:  84,
		},
		{
			name: "non-Lyngdorf device",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "someotherdevice"},
				HostName:      "someotherdevice.local",
				Port:          23,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.1")},
			},
			wantNil: true,
		},
		{
			name: "no IP address",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "MP-60"},
				HostName:      "mp60.local",
				Port:          84,
				AddrIPv4:      []net.IP{},
				AddrIPv6:      []net.IP{},
			},
			wantNil: true,
		},
		{
			name: "IPv6 only device",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "TDAI-2170"},
				HostName:      "tdai2170.local",
				Port:          84,
				AddrIPv6:      []net.IP{net.ParseIP("fe80::1")},
			},
			wantNil:   false,
			wantModel: models.TDAI2170,
			wantIP:    "fe80::1",
			wantPort:  84,
		},
		{
			name: "both IPv4 and IPv6 prefers IPv4",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "MP-50"},
				HostName:      "mp50.local",
				Port:          84,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.60")},
				AddrIPv6:      []net.IP{net.ParseIP("fe80::2")},
			},
			wantNil:   false,
			wantModel: models.MP50,
			wantIP:    "192.168.1.60",
			wantPort:  84,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			device := scanner.parseServiceEntry(tt.entry)

			if tt.wantNil {
				if device != nil {
					t.Fatalf("parseServiceEntry() = %v, want nil", device)
				}
				return
			}
			if device == nil {
				t.Fatal("parseServiceEntry() = nil, want device")
			}

			if device.Model != tt.wantModel {
				t.Errorf("device.Model = %v, want %v", device.Model, tt.wantModel)
			}
			if device.IP != tt.wantIP {
				t.Errorf("device.IP = %v, want %v", device.IP, tt.wantIP)
			}
			if device.Port != tt.wantPort {
				t.Errorf("device.Port = %v, want %v", device.Port, tt.wantPort)
			}
			if device.DiscoveredAt.IsZero() {
				t.Error("device.DiscoveredAt should be set")
			}
		})
	}
}

func TestScanner_parseServiceEntry_metadata(t *testing.T) {
	scanner := NewScanner()

	entry := &zeroconf.ServiceEntry{
		ServiceRecord: zeroconf.ServiceRecord{Instance: "MP-60"},
		HostName:      "mp60.local",
		Port:          84,
		AddrIPv4:      []net.IP{net.ParseIP("192.168.1.100")},
		Text:          []string{"mac=00:11:22:33:44:55", "flag"},
	}

	device := scanner.parseServiceEntry(entry)
	if device == nil {
		t.Fatal("parseServiceEntry() = nil, want device")
	}

	if got := device.GetMetadata("mac"); got != "00:11:22:33:44:55" {
		t.Errorf("GetMetadata(mac) = %q, want %q", got, "00:11:22:33:44:55")
	}
	if got := device.GetMetadata("flag"); got != "" {
		t.Errorf("GetMetadata(flag) = %q, want empty", got)
	}
}

func TestNewScanner(t *testing.T) {
	scanner := NewScanner()

	if scanner == nil {
		t.Fatal("NewScanner() = nil, want scanner")
	}

	if scanner.Timeout != DefaultScanTimeout {
		t.Errorf("scanner.Timeout = %v, want %v", scanner.Timeout, DefaultScanTimeout)
	}
}

func TestMatchModel(t *testing.T) {
	tests := []struct {
		instance    string
		hostname    string
		shouldMatch bool
		model       models.Model
	}{
		{"MP-60 Cinema", "mp60.local", true, models.MP60},
		{"", "lyngdorf-mp40.local.", true, models.MP40},
		{"TDAI 3400", "", true, models.TDAI3400},
		{"tdai-1120-kitchen", "amp.local", true, models.TDAI1120},
		{"Chromecast", "chromecast.local", false, 0},
		{"", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.instance+"/"+tt.hostname, func(t *testing.T) {
			model, ok := matchModel(tt.instance, tt.hostname)

			if ok != tt.shouldMatch {
				t.Fatalf("matchModel(%q, %q) ok = %v, want %v", tt.instance, tt.hostname, ok, tt.shouldMatch)
			}
			if ok && model != tt.model {
				t.Errorf("matchModel(%q, %q) = %v, want %v", tt.instance, tt.hostname, model, tt.model)
			}
		})
	}
}
