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

	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	if !strings.Contains(configDir, "limewire") {
		t.Errorf("GetConfigDir() = %v, should contain 'limewire'", configDir)
	}

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
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}

	if reg.Endpoints == nil {
		t.Error("NewRegistry().Endpoints should not be nil")
	}

	if reg.Preferences == nil {
		t.Error("NewRegistry().Preferences should not be nil")
	}

	if reg.Preferences.AutoDiscover != false {
		t.Error("NewRegistry().Preferences.AutoDiscover should be false by default")
	}

	if reg.Preferences.DiscoverTimeout != 5 {
		t.Errorf("NewRegistry().Preferences.DiscoverTimeout = %v, want 5", reg.Preferences.DiscoverTimeout)
	}
}

func TestRegistryEnsureEndpoint(t *testing.T) {
	reg := NewRegistry()

	ep1 := reg.EnsureEndpoint("141.212.192.170:5000")
	if ep1 == nil {
		t.Fatal("EnsureEndpoint() returned nil")
	}

	ep2 := reg.EnsureEndpoint("141.212.192.170:5000")
	if ep1 != ep2 {
		t.Error("EnsureEndpoint() should return same instance for same address")
	}

	ep3 := reg.EnsureEndpoint("10.0.0.5:5000")
	if ep1 == ep3 {
		t.Error("EnsureEndpoint() should create new instance for different address")
	}
}

func TestRegistryRememberEndpoint(t *testing.T) {
	reg := NewRegistry()

	before := time.Now()
	reg.RememberEndpoint("141.212.192.170:5000", "Test stand FC")
	after := time.Now()

	ep := reg.GetEndpoint("141.212.192.170:5000")
	if ep == nil {
		t.Fatal("Endpoint should exist after RememberEndpoint()")
	}

	if ep.Nickname != "Test stand FC" {
		t.Errorf("Nickname = %v, want 'Test stand FC'", ep.Nickname)
	}

	if ep.LastSeen.Before(before) || ep.LastSeen.After(after) {
		t.Errorf("LastSeen = %v, should be between %v and %v", ep.LastSeen, before, after)
	}
}

func TestRegistrySetEndpointNickname(t *testing.T) {
	reg := NewRegistry()

	reg.SetEndpointNickname("141.212.192.170:5000", "Renamed FC")

	ep := reg.GetEndpoint("141.212.192.170:5000")
	if ep == nil {
		t.Fatal("Endpoint should exist after SetEndpointNickname()")
	}

	if ep.Nickname != "Renamed FC" {
		t.Errorf("Nickname = %v, want 'Renamed FC'", ep.Nickname)
	}
}

func TestRegistryLastDialed(t *testing.T) {
	reg := NewRegistry()

	if _, ok := reg.LastDialed(); ok {
		t.Fatal("LastDialed() should report ok=false on an empty registry")
	}

	reg.RememberEndpoint("10.0.0.1:5000", "older")
	time.Sleep(time.Millisecond)
	reg.RememberEndpoint("10.0.0.2:5000", "newer")

	latest, ok := reg.LastDialed()
	if !ok {
		t.Fatal("LastDialed() should report ok=true once an endpoint exists")
	}
	if latest.Address != "10.0.0.2:5000" {
		t.Errorf("LastDialed().Address = %v, want 10.0.0.2:5000", latest.Address)
	}
}

func TestRegistrySaveAndLoad(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "limewire-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	testConfigPath := filepath.Join(tmpDir, "config.yaml")

	reg := NewRegistry()
	reg.RememberEndpoint("141.212.192.170:5000", "Test stand FC")

	data, err := yaml.Marshal(reg)
	if err != nil {
		t.Fatalf("Failed to marshal registry: %v", err)
	}
	if err := os.WriteFile(testConfigPath, data, 0600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	loadedData, err := os.ReadFile(testConfigPath)
	if err != nil {
		t.Fatalf("Failed to read test config: %v", err)
	}
	var loadedReg Registry
	if err := yaml.Unmarshal(loadedData, &loadedReg); err != nil {
		t.Fatalf("Failed to unmarshal registry: %v", err)
	}

	ep := loadedReg.GetEndpoint("141.212.192.170:5000")
	if ep == nil {
		t.Fatal("Endpoint should exist in loaded registry")
	}
	if ep.Nickname != "Test stand FC" {
		t.Errorf("Loaded nickname = %v, want 'Test stand FC'", ep.Nickname)
	}
}

// Benchmark tests

func BenchmarkGetConfigDir(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = GetConfigDir()
	}
}

func BenchmarkEnsureEndpoint(b *testing.B) {
	reg := NewRegistry()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reg.EnsureEndpoint("141.212.192.170:5000")
	}
}

func BenchmarkRememberEndpoint(b *testing.B) {
	reg := NewRegistry()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reg.RememberEndpoint("141.212.192.170:5000", "Test stand FC")
	}
}
