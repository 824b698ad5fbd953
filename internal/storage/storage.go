package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/drstein77/shopcart/internal/billing"
	"github.com/drstein77/shopcart/internal/cart"
	"github.com/drstein77/shopcart/internal/catalog"
	"github.com/drstein77/shopcart/internal/models"
)

type Log interface {
	Info(string, ...zap.Field)
}

// Keeper is the optional persistent source of the catalog.
type Keeper interface {
	SeedItems(ctx context.Context, products, services []catalog.SeedEntry) (bool, error)
	LoadItems(ctx context.Context) ([]models.Item, error)
	Ping(context.Context) bool
	Close() bool
}

// MemoryStorage holds the catalog and the shared cart in process memory.
type MemoryStorage struct {
	catalog *catalog.Catalog
	cart    *cart.Cart

	keeper Keeper
	log    Log
}

// NewMemoryStorage creates a MemoryStorage and populates its catalog, from
// the keeper when one is given and from the built-in lists otherwise.
func NewMemoryStorage(ctx context.Context, keeper Keeper, log Log) (*MemoryStorage, error) {
	s := &MemoryStorage{
		catalog: catalog.New(),
		cart:    cart.New(),
		keeper:  keeper,
		log:     log,
	}

	if keeper == nil {
		s.catalog.SeedDefault()
		log.Info("catalog seeded in memory", zap.Int("items", len(s.catalog.ListAll())))
		return s, nil
	}

	if _, err := keeper.SeedItems(ctx, catalog.DefaultProducts, catalog.DefaultServices); err != nil {
		return nil, fmt.Errorf("cannot seed catalog: %w", err)
	}
	items, err := keeper.LoadItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot load catalog: %w", err)
	}
	if err := s.catalog.Load(items); err != nil {
		return nil, fmt.Errorf("cannot load catalog: %w", err)
	}
	log.Info("catalog loaded from database", zap.Int("items", len(items)))

	return s, nil
}

func (s *MemoryStorage) ListItems(_ context.Context) ([]models.Item, error) {
	return s.catalog.ListAll(), nil
}

// AddToCart resolves the item in the catalog and appends it to the cart.
func (s *MemoryStorage) AddToCart(_ context.Context, kind models.Kind, id int) (models.Item, error) {
	item, err := s.catalog.FindByID(kind, id)
	if err != nil {
		return models.Item{}, err
	}
	s.cart.Add(item)
	return item, nil
}

func (s *MemoryStorage) RemoveFromCart(_ context.Context, id int) (models.Item, error) {
	return s.cart.Remove(id)
}

func (s *MemoryStorage) ClearCart(_ context.Context) error {
	s.cart.Clear()
	return nil
}

func (s *MemoryStorage) CartTotal(_ context.Context) (models.Bill, error) {
	return billing.ComputeBill(s.cart.Snapshot())
}

// Ping reports whether the storage can serve requests.
func (s *MemoryStorage) Ping(ctx context.Context) bool {
	if s.keeper == nil {
		return true
	}
	return s.keeper.Ping(ctx)
}

func (s *MemoryStorage) Close() {
	if s.keeper != nil {
		s.keeper.Close()
	}
}
