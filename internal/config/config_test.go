package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadAppConfigDefaultsWhenMissing(t *testing.T) {
	baseDir := t.TempDir()
	cfg, err := NewConfig(baseDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if cfg.App.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", cfg.App.Version)
	}
	if len(cfg.Destinations()) != 0 {
		t.Fatalf("expected no destinations, got %v", cfg.Destinations())
	}
}

func TestLoadAppConfigParsesYaml(t *testing.T) {
	baseDir := t.TempDir()
	waypointDir := filepath.Join(baseDir, WaypointDir)
	if err := os.MkdirAll(waypointDir, 0o755); err != nil {
		t.Fatal(err)
	}
	configYAML := strings.TrimSpace(`
version: 1
destinations:
  - id: lhasa-5d
    name: 拉萨
    city: 拉萨
  - id: chengdu-3d
    name: 成都
    trip: chengdu
`)
	if err := os.WriteFile(filepath.Join(waypointDir, "config.yaml"), []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := NewConfig(baseDir)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if got := len(cfg.Destinations()); got != 2 {
		t.Fatalf("expected 2 destinations, got %d", got)
	}
	ref, ok := cfg.Destination("lhasa-5d")
	if !ok {
		t.Fatal("lhasa-5d missing")
	}
	if ref.Trip != "lhasa-5d" {
		t.Fatalf("trip must default to the destination id, got %q", ref.Trip)
	}
	if got := cfg.DefaultDestination(); got != "lhasa-5d" {
		t.Fatalf("default destination must fall back to the first entry, got %q", got)
	}
}

func TestSetDefaultDestinationPersists(t *testing.T) {
	baseDir := t.TempDir()
	if err := InitWaypointDir(baseDir); err != nil {
		t.Fatalf("init: %v", err)
	}
	cfg, err := NewConfig(baseDir)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	cfg.App.Destinations = append(cfg.App.Destinations, DestinationRef{ID: "chengdu-3d", Name: "成都"})
	if err := cfg.SetDefaultDestination("chengdu-3d"); err != nil {
		t.Fatalf("set default: %v", err)
	}
	reloaded, err := NewConfig(baseDir)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := reloaded.DefaultDestination(); got != "chengdu-3d" {
		t.Fatalf("expected persisted default, got %q", got)
	}
	if err := cfg.SetDefaultDestination("nowhere"); err == nil {
		t.Fatal("unknown destination must be rejected")
	}
}

func TestInitWaypointDirCreatesStructure(t *testing.T) {
	baseDir := t.TempDir()
	if err := InitWaypointDir(baseDir); err != nil {
		t.Fatalf("init: %v", err)
	}
	for _, dir := range []string{"trips", "diary", "logs"} {
		path := filepath.Join(baseDir, WaypointDir, dir)
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", path, err)
		}
	}
	if _, err := os.Stat(filepath.Join(baseDir, WaypointDir, "config.yaml")); err != nil {
		t.Fatalf("expected seeded config file: %v", err)
	}
}
