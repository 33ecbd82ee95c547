// internal/config/config.go
//
// This package handles configuration and the .waypoint directory structure.
// Every directory the app runs from gets a .waypoint/ folder holding trips,
// diary books and logs.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// WaypointDir is the name of the directory we create in each base dir.
	WaypointDir = ".waypoint"
)

const defaultConfigYAML = `# waypoint configuration
version: 1

# Destinations shown on the picker screen. trip names an itinerary file id
# under .waypoint/trips/ (without extension).
destinations:
  - id: lhasa-5d
    name: 拉萨
    city: 拉萨
    trip: lhasa-5d

default_destination: lhasa-5d
`

// DestinationRef declares one destination card inside .waypoint/config.yaml.
type DestinationRef struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	City string `yaml:"city,omitempty"`
	Trip string `yaml:"trip"`
}

// AppConfig models .waypoint/config.yaml.
type AppConfig struct {
	Version            int              `yaml:"version"`
	Destinations       []DestinationRef `yaml:"destinations"`
	DefaultDestination string           `yaml:"default_destination,omitempty"`
}

// Config holds the runtime configuration for waypoint.
type Config struct {
	// BaseDir is the directory where the user ran `waypoint` from.
	BaseDir string

	// WaypointBaseDir is BaseDir/.waypoint.
	WaypointBaseDir string

	App AppConfig
}

// InitWaypointDir creates the .waypoint directory structure in the given base
// directory. Called when the TUI starts up.
//
// Structure created:
// .waypoint/
// ├── trips/   <- itinerary YAML files
// ├── diary/   <- diary books, one per itinerary
// └── logs/    <- travel logbook
func InitWaypointDir(baseDir string) error {
	waypointDir := filepath.Join(baseDir, WaypointDir)
	dirs := []string{
		filepath.Join(waypointDir, "trips"),
		filepath.Join(waypointDir, "diary"),
		filepath.Join(waypointDir, "logs"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return ensureConfigFile(filepath.Join(waypointDir, "config.yaml"))
}

// NewConfig creates a Config populated from .waypoint/config.yaml.
func NewConfig(baseDir string) (*Config, error) {
	cfg := &Config{
		BaseDir:         baseDir,
		WaypointBaseDir: filepath.Join(baseDir, WaypointDir),
		App:             defaultAppConfig(),
	}
	if err := cfg.loadAppConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// TripsDir returns the directory holding itinerary files.
func (c *Config) TripsDir() string {
	return filepath.Join(c.WaypointBaseDir, "trips")
}

// DiaryDir returns the directory holding diary books.
func (c *Config) DiaryDir() string {
	return filepath.Join(c.WaypointBaseDir, "diary")
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.WaypointBaseDir, "logs")
}

// ConfigPath returns the on-disk location of the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.WaypointBaseDir, "config.yaml")
}

// Destinations returns the configured destination cards.
func (c *Config) Destinations() []DestinationRef {
	return c.App.Destinations
}

// Destination looks up one destination by id.
func (c *Config) Destination(id string) (DestinationRef, bool) {
	target := strings.TrimSpace(id)
	for _, ref := range c.App.Destinations {
		if strings.EqualFold(ref.ID, target) {
			return ref, true
		}
	}
	return DestinationRef{}, false
}

// DefaultDestination returns the destination the picker preselects.
func (c *Config) DefaultDestination() string {
	return c.App.DefaultDestination
}

// SetDefaultDestination updates the preselected destination and persists the
// value back to .waypoint/config.yaml.
func (c *Config) SetDefaultDestination(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("config: destination id is required")
	}
	if _, ok := c.Destination(id); !ok {
		return fmt.Errorf("config: unknown destination %q", id)
	}
	c.App.DefaultDestination = id
	return c.saveAppConfig()
}

func (c *Config) loadAppConfig() error {
	path := c.ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed AppConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.App = parsed
	return nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{Version: 1}
}

func (ac *AppConfig) applyDefaults() {
	if ac.Version == 0 {
		ac.Version = 1
	}
}

func (ac *AppConfig) normalize() {
	for i := range ac.Destinations {
		ref := &ac.Destinations[i]
		ref.ID = strings.TrimSpace(ref.ID)
		ref.Name = strings.TrimSpace(ref.Name)
		ref.City = strings.TrimSpace(ref.City)
		ref.Trip = strings.TrimSpace(ref.Trip)
		if ref.Trip == "" {
			ref.Trip = ref.ID
		}
	}
	ac.DefaultDestination = strings.TrimSpace(ac.DefaultDestination)
	if ac.DefaultDestination == "" && len(ac.Destinations) > 0 {
		ac.DefaultDestination = ac.Destinations[0].ID
	}
}

func (ac AppConfig) validate() error {
	if ac.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	seen := map[string]struct{}{}
	for i, ref := range ac.Destinations {
		if ref.ID == "" {
			return fmt.Errorf("destinations[%d]: id is required", i)
		}
		if ref.Name == "" {
			return fmt.Errorf("destinations[%d]: name is required", i)
		}
		key := strings.ToLower(ref.ID)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("destinations[%d]: duplicate id %q", i, ref.ID)
		}
		seen[key] = struct{}{}
	}
	return nil
}

func ensureConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

func (c *Config) saveAppConfig() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.App.applyDefaults()
	c.App.normalize()
	if err := c.App.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.WaypointBaseDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure waypoint dir: %w", err)
	}
	data, err := yaml.Marshal(c.App)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.ConfigPath(), data, 0o644); err != nil {
		return fmt.Errorf("config: write config: %w", err)
	}
	return nil
}
