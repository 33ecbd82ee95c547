package diary

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

// Book is the on-disk diary for one itinerary: an ordered list of fragments.
type Book struct {
	ItineraryID string      `yaml:"itinerary_id"`
	Fragments   []*Fragment `yaml:"fragments"`
}

// Load reads the diary book for an itinerary. A missing file is an empty
// diary, not an error.
func Load(dir, itineraryID string) (*Book, error) {
	path := bookPath(dir, itineraryID)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Book{ItineraryID: itineraryID}, nil
		}
		return nil, fmt.Errorf("diary: read %s: %w", path, err)
	}
	var book Book
	if err := yaml.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("diary: parse %s: %w", path, err)
	}
	if strings.TrimSpace(book.ItineraryID) == "" {
		book.ItineraryID = itineraryID
	}
	for _, frag := range book.Fragments {
		if strings.TrimSpace(frag.ID) == "" {
			frag.ID = uuid.NewString()
		}
	}
	return &book, nil
}

// Save persists the diary book.
func Save(dir string, book *Book) error {
	if book == nil || strings.TrimSpace(book.ItineraryID) == "" {
		return fmt.Errorf("diary: book without itinerary id")
	}
	data, err := yaml.Marshal(book)
	if err != nil {
		return fmt.Errorf("diary: encode %s: %w", book.ItineraryID, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("diary: ensure dir: %w", err)
	}
	path := bookPath(dir, book.ItineraryID)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("diary: write %s: %w", path, err)
	}
	return nil
}

// ForNode finds the fragment tied to an itinerary node.
func (b *Book) ForNode(nodeID string) (*Fragment, bool) {
	for _, frag := range b.Fragments {
		if frag.NodeID == nodeID {
			return frag, true
		}
	}
	return nil, false
}

func bookPath(dir, itineraryID string) string {
	return filepath.Join(dir, itineraryID+".yaml")
}
