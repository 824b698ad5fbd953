package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/drstein77/shopcart/internal/catalog"
	"github.com/drstein77/shopcart/internal/models"
)

type fakeKeeper struct {
	items   []models.Item
	seedErr error
	loadErr error
	healthy bool

	seeded bool
	closed bool
}

func (f *fakeKeeper) SeedItems(_ context.Context, _, _ []catalog.SeedEntry) (bool, error) {
	if f.seedErr != nil {
		return false, f.seedErr
	}
	f.seeded = true
	return true, nil
}

func (f *fakeKeeper) LoadItems(_ context.Context) ([]models.Item, error) {
	return f.items, f.loadErr
}

func (f *fakeKeeper) Ping(_ context.Context) bool { return f.healthy }

func (f *fakeKeeper) Close() bool {
	f.closed = true
	return true
}

func newStorage(t *testing.T) *MemoryStorage {
	t.Helper()
	s, err := NewMemoryStorage(context.Background(), nil, zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestInMemoryCatalog(t *testing.T) {
	s := newStorage(t)
	ctx := context.Background()

	items, err := s.ListItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 10)
	assert.True(t, s.Ping(ctx))
}

func TestCartFlow(t *testing.T) {
	s := newStorage(t)
	ctx := context.Background()

	item, err := s.AddToCart(ctx, models.Product, 1)
	require.NoError(t, err)
	assert.Equal(t, "Product A", item.Name)

	bill, err := s.CartTotal(ctx)
	require.NoError(t, err)
	require.Len(t, bill.Items, 1)
	assert.Equal(t, "144", bill.Items[0].Tax.String())
	assert.Equal(t, "1344", bill.Total.String())

	_, err = s.AddToCart(ctx, models.Service, 42)
	assert.ErrorIs(t, err, models.ErrItemNotFound)

	_, err = s.RemoveFromCart(ctx, 42)
	assert.ErrorIs(t, err, models.ErrItemNotFound)

	removed, err := s.RemoveFromCart(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, item, removed)

	_, err = s.AddToCart(ctx, models.Service, 2)
	require.NoError(t, err)
	require.NoError(t, s.ClearCart(ctx))

	bill, err = s.CartTotal(ctx)
	require.NoError(t, err)
	assert.Empty(t, bill.Items)
	assert.True(t, bill.Total.IsZero())
}

func TestKeeperBackedCatalog(t *testing.T) {
	k := &fakeKeeper{
		items: []models.Item{
			{ID: 4, Name: "Only product", Price: 9000, Kind: models.Product},
		},
		healthy: true,
	}

	s, err := NewMemoryStorage(context.Background(), k, zap.NewNop())
	require.NoError(t, err)
	assert.True(t, k.seeded)

	items, err := s.ListItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, k.items, items)

	_, err = s.AddToCart(context.Background(), models.Product, 4)
	require.NoError(t, err)

	assert.True(t, s.Ping(context.Background()))
	k.healthy = false
	assert.False(t, s.Ping(context.Background()))

	s.Close()
	assert.True(t, k.closed)
}

func TestKeeperErrors(t *testing.T) {
	boom := errors.New("boom")

	_, err := NewMemoryStorage(context.Background(), &fakeKeeper{seedErr: boom}, zap.NewNop())
	assert.ErrorIs(t, err, boom)

	_, err = NewMemoryStorage(context.Background(), &fakeKeeper{loadErr: boom}, zap.NewNop())
	assert.ErrorIs(t, err, boom)
}
