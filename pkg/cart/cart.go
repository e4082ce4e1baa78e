// Package cart implements the durable local cart: listing projections
// collected while browsing, persisted as one JSON array file.
package cart

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	domain "github.com/NikhilTirunagiri/GMUBookSwap/pkg/types"
)

// Cart holds the entries added during browsing. With a path every
// mutation synchronously rewrites the file; with an empty path the cart
// is memory-only. A corrupt or missing file loads as an empty cart.
//
// The cart is owned by a single goroutine (the CLI's command loop) and
// is not safe for concurrent use. Entries are not scoped to the
// logged-in user: logging into another account keeps the previous
// cart's contents.
type Cart struct {
	path    string
	entries []domain.CartEntry
}

// New loads the cart at path, starting empty when nothing usable is
// there. An empty path keeps the cart in memory only.
func New(path string) *Cart {
	c := &Cart{path: path}
	c.load()
	return c
}

func (c *Cart) load() {
	if c.path == "" {
		return
	}
	raw, err := os.ReadFile(c.path) //nolint:gosec // cart path from trusted CLI flag
	if err != nil {
		return
	}
	var entries []domain.CartEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return
	}
	c.entries = entries
}

// Add appends the entry unless one with the same listing ID is already
// present, in which case it is a no-op.
func (c *Cart) Add(e domain.CartEntry) error {
	for i := range c.entries {
		if c.entries[i].ID == e.ID {
			return nil
		}
	}
	c.entries = append(c.entries, e)
	return c.save()
}

// Remove drops the entry with the given listing ID, if present.
func (c *Cart) Remove(id string) error {
	kept := c.entries[:0]
	for i := range c.entries {
		if c.entries[i].ID != id {
			kept = append(kept, c.entries[i])
		}
	}
	c.entries = kept
	return c.save()
}

// Clear empties the cart.
func (c *Cart) Clear() error {
	c.entries = nil
	return c.save()
}

// Items returns a copy of the entries in insertion order.
func (c *Cart) Items() []domain.CartEntry {
	out := make([]domain.CartEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Entry returns the entry with the given listing ID.
func (c *Cart) Entry(id string) (domain.CartEntry, bool) {
	for i := range c.entries {
		if c.entries[i].ID == id {
			return c.entries[i], true
		}
	}
	return domain.CartEntry{}, false
}

// Count returns the number of entries.
func (c *Cart) Count() int {
	return len(c.entries)
}

// Total sums the entry prices. An entry without a price counts as
// zero.
func (c *Cart) Total() float64 {
	var total float64
	for i := range c.entries {
		if c.entries[i].Price != nil {
			total += *c.entries[i].Price
		}
	}
	return total
}

// save rewrites the whole entry list through a temp file and rename.
// An empty cart persists as an empty JSON array, not a deleted file.
func (c *Cart) save() error {
	if c.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("creating cart directory: %w", err)
	}
	entries := c.entries
	if entries == nil {
		entries = []domain.CartEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("writing cart file: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		_ = os.Remove(tmp) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("replacing cart file: %w", err)
	}
	return nil
}
