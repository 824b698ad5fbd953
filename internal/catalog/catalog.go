package catalog

import (
	"fmt"
	"sync"

	"github.com/drstein77/shopcart/internal/models"
)

// SeedEntry is a name/price pair used to populate the catalog.
type SeedEntry struct {
	Name  string
	Price int64
}

var (
	DefaultProducts = []SeedEntry{
		{Name: "Product A", Price: 1200},
		{Name: "Product B", Price: 5500},
		{Name: "Product C", Price: 350},
		{Name: "Product D", Price: 6200},
		{Name: "Product E", Price: 1800},
	}

	DefaultServices = []SeedEntry{
		{Name: "Service X", Price: 7000},
		{Name: "Service Y", Price: 900},
		{Name: "Service Z", Price: 4500},
		{Name: "Service W", Price: 1500},
		{Name: "Service V", Price: 200},
	}
)

// Catalog holds the purchasable items, one list per kind.
type Catalog struct {
	mx       sync.RWMutex
	products []models.Item
	services []models.Item
}

func New() *Catalog {
	return &Catalog{}
}

// Seed replaces the catalog contents. Ids are assigned per kind,
// sequentially from 1 in insertion order.
func (c *Catalog) Seed(products, services []SeedEntry) {
	p := build(products, models.Product)
	s := build(services, models.Service)

	c.mx.Lock()
	defer c.mx.Unlock()
	c.products, c.services = p, s
}

// SeedDefault loads the built-in product and service lists.
func (c *Catalog) SeedDefault() {
	c.Seed(DefaultProducts, DefaultServices)
}

// Load installs items that already carry their ids, e.g. rows read from the database.
func (c *Catalog) Load(items []models.Item) error {
	var p, s []models.Item
	for _, it := range items {
		switch it.Kind {
		case models.Product:
			p = append(p, it)
		case models.Service:
			s = append(s, it)
		default:
			return fmt.Errorf("item %d %q: %w", it.ID, it.Name, models.ErrInvalidKind)
		}
	}

	c.mx.Lock()
	defer c.mx.Unlock()
	c.products, c.services = p, s
	return nil
}

// ListAll returns all products followed by all services.
func (c *Catalog) ListAll() []models.Item {
	c.mx.RLock()
	defer c.mx.RUnlock()

	all := make([]models.Item, 0, len(c.products)+len(c.services))
	all = append(all, c.products...)
	return append(all, c.services...)
}

// FindByID looks an item up by id within the given kind.
func (c *Catalog) FindByID(kind models.Kind, id int) (models.Item, error) {
	c.mx.RLock()
	defer c.mx.RUnlock()

	var items []models.Item
	switch kind {
	case models.Product:
		items = c.products
	case models.Service:
		items = c.services
	default:
		return models.Item{}, models.ErrInvalidKind
	}

	for _, it := range items {
		if it.ID == id {
			return it, nil
		}
	}
	return models.Item{}, fmt.Errorf("%s %d: %w", kind, id, models.ErrItemNotFound)
}

func build(entries []SeedEntry, kind models.Kind) []models.Item {
	items := make([]models.Item, 0, len(entries))
	for i, e := range entries {
		items = append(items, models.Item{
			ID:    i + 1,
			Name:  e.Name,
			Price: e.Price,
			Kind:  kind,
		})
	}
	return items
}
