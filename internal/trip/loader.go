package trip

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Load reads one itinerary YAML file. Nodes without an id get one assigned so
// edits can always be keyed; the assignment is persisted on the next Save.
func Load(path string) (Itinerary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Itinerary{}, fmt.Errorf("trip: read %s: %w", path, err)
	}
	var it Itinerary
	if err := yaml.Unmarshal(data, &it); err != nil {
		return Itinerary{}, fmt.Errorf("trip: parse %s: %w", path, err)
	}
	it.normalize()
	if err := it.validate(); err != nil {
		return Itinerary{}, fmt.Errorf("trip: %s: %w", path, err)
	}
	return it, nil
}

// Save writes the itinerary back to disk, creating parent directories as
// needed.
func Save(path string, it Itinerary) error {
	it.normalize()
	if err := it.validate(); err != nil {
		return fmt.Errorf("trip: %w", err)
	}
	data, err := yaml.Marshal(it)
	if err != nil {
		return fmt.Errorf("trip: encode %s: %w", it.ID, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("trip: ensure dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("trip: write %s: %w", path, err)
	}
	return nil
}

// FindFile resolves an itinerary file inside dir by id, trying .yaml then
// .yml.
func FindFile(dir, id string) (string, error) {
	for _, name := range []string{id + ".yaml", id + ".yml"} {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("trip: stat %s: %w", path, err)
		}
	}
	return "", fmt.Errorf("trip: itinerary %s not found in %s", id, dir)
}

func (it *Itinerary) normalize() {
	it.ID = strings.TrimSpace(it.ID)
	it.Title = strings.TrimSpace(it.Title)
	it.Destination = strings.TrimSpace(it.Destination)
	it.City = strings.TrimSpace(it.City)
	for i := range it.Nodes {
		node := &it.Nodes[i]
		node.ID = strings.TrimSpace(node.ID)
		if node.ID == "" {
			node.ID = uuid.NewString()
		}
		node.Type = NodeType(strings.ToLower(strings.TrimSpace(string(node.Type))))
		node.Name = strings.TrimSpace(node.Name)
		if node.DayIndex < 1 {
			node.DayIndex = 1
		}
	}
}

func (it Itinerary) validate() error {
	if it.ID == "" {
		return fmt.Errorf("itinerary id is required")
	}
	if it.Destination == "" {
		return fmt.Errorf("destination is required")
	}
	for i, node := range it.Nodes {
		if node.Name == "" {
			return fmt.Errorf("nodes[%d]: name is required", i)
		}
	}
	return nil
}
