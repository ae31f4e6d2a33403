package catalog

import (
	"errors"
	"sort"
	"sync"

	"github.com/mamadbah2/paperdesk/internal/domain/models"
)

// ErrItemNotFound indicates the requested item is not part of the seeded
// catalog. Callers either omit the item or report it; it never crashes a
// request.
var ErrItemNotFound = errors.New("item not found in catalog")

// Catalog exposes the static item reference data. The catalog is seeded once
// at startup and never mutated afterwards.
type Catalog interface {
	Get(itemName string) (models.InventoryItem, error)
	All() []models.InventoryItem
}

// MemoryCatalog is the in-process Catalog implementation.
type MemoryCatalog struct {
	mu    sync.RWMutex
	items map[string]models.InventoryItem
	names []string
}

// NewMemoryCatalog builds a catalog from the provided items. Later
// duplicates of the same item name overwrite earlier ones.
func NewMemoryCatalog(items []models.InventoryItem) *MemoryCatalog {
	c := &MemoryCatalog{items: make(map[string]models.InventoryItem, len(items))}
	for _, item := range items {
		if _, seen := c.items[item.ItemName]; !seen {
			c.names = append(c.names, item.ItemName)
		}
		c.items[item.ItemName] = item
	}
	sort.Strings(c.names)
	return c
}

// Get returns the catalog row for the item, or ErrItemNotFound.
func (c *MemoryCatalog) Get(itemName string) (models.InventoryItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[itemName]
	if !ok {
		return models.InventoryItem{}, ErrItemNotFound
	}
	return item, nil
}

// All returns every catalog row, ordered by item name so reports stay
// deterministic.
func (c *MemoryCatalog) All() []models.InventoryItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]models.InventoryItem, 0, len(c.names))
	for _, name := range c.names {
		result = append(result, c.items[name])
	}
	return result
}
