package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	// Should not be empty
	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	// Should contain "lyngdorf"
	if !strings.Contains(configDir, "lyngdorf") {
		t.Errorf("GetConfigDir() = %v, should contain 'lyngdorf'", configDir)
	}

	// Platform-specific checks
	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin", "linux":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
		}
	}

	t.Logf("Config directory: %s", configDir)
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	// Should end with config.yaml
	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}

	t.Logf("Config path: %s", configPath)
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}

	if reg.Devices == nil {
		t.Error("NewRegistry().Devices should not be nil")
	}

	if reg.Preferences == nil {
		t.Fatal("NewRegistry().Preferences should not be nil")
	}

	if reg.Preferences.WatchInterval != 1 {
		t.Errorf("NewRegistry().Preferences.WatchInterval = %v, want 1", reg.Preferences.WatchInterval)
	}
}

func TestRegistryEnsureDevice(t *testing.T) {
	reg := NewRegistry()

	// First call should create device
	device1 := reg.EnsureDevice("cinema")
	if device1 == nil {
		t.Fatal("EnsureDevice() returned nil")
	}

	// Second call should return same device
	device2 := reg.EnsureDevice("cinema")
	if device1 != device2 {
		t.Error("EnsureDevice() should return same instance for same name")
	}

	// Different name should create new device
	device3 := reg.EnsureDevice("study")
	if device1 == device3 {
		t.Error("EnsureDevice() should create new instance for different name")
	}
}

func TestRegistryRememberDevice(t *testing.T) {
	reg := NewRegistry()

	before := time.Now()
	reg.RememberDevice("cinema", "192.168.1.100", "mp-60")
	after := time.Now()

	device := reg.GetDevice("cinema")
	if device == nil {
		t.Fatal("Device should exist after RememberDevice()")
	}

	if device.Host != "192.168.1.100" {
		t.Errorf("Host = %v, want 192.168.1.100", device.Host)
	}

	if device.Model != "mp-60" {
		t.Errorf("Model = %v, want mp-60", device.Model)
	}

	if device.LastSeen.Before(before) || device.LastSeen.After(after) {
		t.Errorf("LastSeen = %v, should be between %v and %v", device.LastSeen, before, after)
	}
}

func TestRegistrySetDeviceNickname(t *testing.T) {
	reg := NewRegistry()

	reg.SetDeviceNickname("cinema", "Cinema Processor")

	device := reg.GetDevice("cinema")
	if device == nil {
		t.Fatal("Device should exist after SetDeviceNickname()")
	}

	if device.Nickname != "Cinema Processor" {
		t.Errorf("Nickname = %v, want 'Cinema Processor'", device.Nickname)
	}
}

func TestRegistryResolve(t *testing.T) {
	reg := NewRegistry()
	reg.RememberDevice("cinema", "192.168.1.100", "mp-60")
	reg.Preferences.DefaultDevice = "cinema"

	tests := []struct {
		name      string
		arg       string
		wantHost  string
		wantModel string
		wantOK    bool
	}{
		{"registry key", "cinema", "192.168.1.100", "mp-60", true},
		{"bare host", "10.0.0.5", "10.0.0.5", "", true},
		{"empty falls back to default", "", "192.168.1.100", "mp-60", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, model, ok := reg.Resolve(tt.arg)
			if host != tt.wantHost || model != tt.wantModel || ok != tt.wantOK {
				t.Errorf("Resolve(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.arg, host, model, ok, tt.wantHost, tt.wantModel, tt.wantOK)
			}
		})
	}
}

func TestRegistryResolveNoDefault(t *testing.T) {
	reg := NewRegistry()

	if _, _, ok := reg.Resolve(""); ok {
		t.Error("Resolve(\"\") should fail when no default device is set")
	}
}

func TestRegistryYAMLRoundTrip(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "lyngdorf-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	testConfigPath := filepath.Join(tmpDir, "config.yaml")

	reg := NewRegistry()
	reg.RememberDevice("cinema", "192.168.1.100", "mp-60")
	reg.SetDeviceNickname("cinema", "Cinema Processor")
	reg.Preferences.DefaultDevice = "cinema"

	data, err := yaml.Marshal(reg)
	if err != nil {
		t.Fatalf("Failed to marshal registry: %v", err)
	}

	if err := os.WriteFile(testConfigPath, data, 0600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	raw, err := os.ReadFile(testConfigPath)
	if err != nil {
		t.Fatalf("Failed to read test config: %v", err)
	}

	var loaded Registry
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		t.Fatalf("Failed to unmarshal registry: %v", err)
	}

	device := loaded.GetDevice("cinema")
	if device == nil {
		t.Fatal("Device should exist in loaded registry")
	}

	if device.Host != "192.168.1.100" {
		t.Errorf("Loaded host = %v, want 192.168.1.100", device.Host)
	}

	if device.Nickname != "Cinema Processor" {
		t.Errorf("Loaded nickname = %v, want 'Cinema Processor'", device.Nickname)
	}

	if loaded.Preferences == nil || loaded.Preferences.DefaultDevice != "cinema" {
		t.Error("Loaded preferences should carry the default device")
	}
}

// Benchmark tests

func BenchmarkGetConfigDir(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = GetConfigDir()
	}
}

func BenchmarkEnsureDevice(b *testing.B) {
	reg := NewRegistry()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reg.EnsureDevice("cinema")
	}
}
