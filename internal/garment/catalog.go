package garment

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Catalog is the closet handed to the try-on core.
type Catalog struct {
	Items []Item `yaml:"items" json:"items"`
}

// ParseCatalog decodes a YAML (or JSON) catalog. Items without an ID get a random one.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("garment: parse catalog: %w", err)
	}
	seen := make(map[string]bool, len(c.Items))
	for i := range c.Items {
		it := &c.Items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		if seen[it.ID] {
			return nil, fmt.Errorf("garment: duplicate item id %q", it.ID)
		}
		seen[it.ID] = true
	}
	return &c, nil
}

// LoadCatalog reads a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("garment: read %s: %w", path, err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return c, nil
}

// Get returns the item with the given ID.
func (c *Catalog) Get(id string) (Item, bool) {
	for _, it := range c.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Lookup resolves several IDs, failing on the first unknown one.
func (c *Catalog) Lookup(ids []string) ([]Item, error) {
	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		it, ok := c.Get(id)
		if !ok {
			return nil, fmt.Errorf("garment: no item %q in catalog", id)
		}
		items = append(items, it)
	}
	return items, nil
}
