package cart

import (
	"fmt"
	"sync"

	"github.com/drstein77/shopcart/internal/models"
)

// Cart is an ordered list of selected items. Duplicates are kept as
// separate entries. All mutations go through a single mutex.
type Cart struct {
	mx    sync.Mutex
	items []models.Item
}

func New() *Cart {
	return &Cart{}
}

// Add appends item to the end of the cart.
func (c *Cart) Add(item models.Item) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.items = append(c.items, item)
}

// Remove deletes the first entry with the given id, regardless of kind.
func (c *Cart) Remove(id int) (models.Item, error) {
	c.mx.Lock()
	defer c.mx.Unlock()

	for i, it := range c.items {
		if it.ID == id {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			return it, nil
		}
	}
	return models.Item{}, fmt.Errorf("cart entry %d: %w", id, models.ErrItemNotFound)
}

func (c *Cart) Clear() {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.items = nil
}

// Snapshot returns a copy of the current entries in cart order.
func (c *Cart) Snapshot() []models.Item {
	c.mx.Lock()
	defer c.mx.Unlock()

	out := make([]models.Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int {
	c.mx.Lock()
	defer c.mx.Unlock()

	return len(c.items)
}
