package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drstein77/shopcart/internal/models"
)

func TestSeedDefault(t *testing.T) {
	c := New()
	c.SeedDefault()

	all := c.ListAll()
	require.Len(t, all, len(DefaultProducts)+len(DefaultServices))

	for i, it := range all[:len(DefaultProducts)] {
		assert.Equal(t, models.Product, it.Kind)
		assert.Equal(t, i+1, it.ID)
		assert.Equal(t, DefaultProducts[i].Name, it.Name)
		assert.Equal(t, DefaultProducts[i].Price, it.Price)
	}
	for i, it := range all[len(DefaultProducts):] {
		assert.Equal(t, models.Service, it.Kind)
		assert.Equal(t, i+1, it.ID)
		assert.Equal(t, DefaultServices[i].Name, it.Name)
	}
}

func TestFindByIDRoundTrip(t *testing.T) {
	c := New()
	c.SeedDefault()

	for _, it := range c.ListAll() {
		got, err := c.FindByID(it.Kind, it.ID)
		require.NoError(t, err)
		assert.Equal(t, it, got)
	}
}

func TestFindByIDNotFound(t *testing.T) {
	c := New()
	c.SeedDefault()

	_, err := c.FindByID(models.Product, 99)
	assert.ErrorIs(t, err, models.ErrItemNotFound)

	_, err = c.FindByID(models.Service, 0)
	assert.ErrorIs(t, err, models.ErrItemNotFound)

	_, err = c.FindByID(models.Kind{}, 1)
	assert.ErrorIs(t, err, models.ErrInvalidKind)
}

func TestEmptyCatalog(t *testing.T) {
	c := New()
	assert.Empty(t, c.ListAll())

	_, err := c.FindByID(models.Product, 1)
	assert.ErrorIs(t, err, models.ErrItemNotFound)
}

func TestLoad(t *testing.T) {
	c := New()
	err := c.Load([]models.Item{
		{ID: 7, Name: "Svc", Price: 100, Kind: models.Service},
		{ID: 3, Name: "Prod", Price: 2000, Kind: models.Product},
	})
	require.NoError(t, err)

	all := c.ListAll()
	require.Len(t, all, 2)
	assert.Equal(t, "Prod", all[0].Name)
	assert.Equal(t, "Svc", all[1].Name)

	got, err := c.FindByID(models.Service, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.Price)

	err = c.Load([]models.Item{{ID: 1, Name: "bad"}})
	assert.ErrorIs(t, err, models.ErrInvalidKind)
}

func TestListAllReturnsCopy(t *testing.T) {
	c := New()
	c.SeedDefault()

	all := c.ListAll()
	all[0].Name = "changed"

	got, err := c.FindByID(models.Product, 1)
	require.NoError(t, err)
	assert.Equal(t, "Product A", got.Name)
}
