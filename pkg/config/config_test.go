package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Provider.Binary != "apt-cache" {
		t.Errorf("Provider.Binary = %q, want apt-cache", cfg.Provider.Binary)
	}
	if cfg.Provider.Timeout() != 10*time.Second {
		t.Errorf("Provider.Timeout() = %v, want 10s", cfg.Provider.Timeout())
	}
	if cfg.Cycles.MaxPerNode != 10 {
		t.Errorf("Cycles.MaxPerNode = %d, want 10", cfg.Cycles.MaxPerNode)
	}
	if cfg.Cycles.Exhaustive {
		t.Error("Cycles.Exhaustive = true, want false by default")
	}
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[provider]
timeout_seconds = 30

[cycles]
exhaustive = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Provider.Timeout() != 30*time.Second {
		t.Errorf("Provider.Timeout() = %v, want 30s", cfg.Provider.Timeout())
	}
	if cfg.Provider.Binary != "apt-cache" {
		t.Errorf("Provider.Binary = %q, want default apt-cache", cfg.Provider.Binary)
	}
	if !cfg.Cycles.Exhaustive {
		t.Error("Cycles.Exhaustive = false, want true")
	}
	if cfg.Cycles.MaxPerNode != 10 {
		t.Errorf("Cycles.MaxPerNode = %d, want default 10", cfg.Cycles.MaxPerNode)
	}
}

func TestLoad_ZeroValuesNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[provider]
binary = ""
timeout_seconds = 0

[cycles]
max_per_node = -1
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults after normalization", cfg)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load() with malformed TOML returned nil error")
	}
}
