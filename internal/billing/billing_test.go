package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drstein77/shopcart/internal/cart"
	"github.com/drstein77/shopcart/internal/catalog"
	"github.com/drstein77/shopcart/internal/models"
)

func TestComputeBillProductA(t *testing.T) {
	cat := catalog.New()
	cat.SeedDefault()

	item, err := cat.FindByID(models.Product, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1200), item.Price)

	c := cart.New()
	c.Add(item)

	bill, err := ComputeBill(c.Snapshot())
	require.NoError(t, err)
	require.Len(t, bill.Items, 1)
	assert.True(t, decimal.NewFromInt(144).Equal(bill.Items[0].Tax))
	assert.True(t, decimal.NewFromInt(1344).Equal(bill.Total))
}

func TestComputeBillKeepsOrderAndFractions(t *testing.T) {
	items := []models.Item{
		{ID: 9, Name: "odd", Price: 1001, Kind: models.Product},
		{ID: 1, Name: "Service X", Price: 7000, Kind: models.Service},
		{ID: 9, Name: "odd", Price: 1001, Kind: models.Product},
	}

	bill, err := ComputeBill(items)
	require.NoError(t, err)
	require.Len(t, bill.Items, 3)

	for i, li := range bill.Items {
		assert.Equal(t, items[i], li.Item)
	}
	assert.Equal(t, "120.12", bill.Items[0].Tax.String())
	assert.Equal(t, "700", bill.Items[1].Tax.String())

	// 2*(1001+120.12) + 7000+700
	assert.Equal(t, "9942.24", bill.Total.String())
}

func TestComputeBillEmpty(t *testing.T) {
	bill, err := ComputeBill(nil)
	require.NoError(t, err)
	assert.Empty(t, bill.Items)
	assert.True(t, bill.Total.IsZero())
}

func TestComputeBillInvalidKind(t *testing.T) {
	_, err := ComputeBill([]models.Item{{ID: 1, Price: 10}})
	assert.ErrorIs(t, err, models.ErrInvalidKind)
}

func TestRound(t *testing.T) {
	assert.Equal(t, "0.13", Round(decimal.RequireFromString("0.125")).String())
	assert.Equal(t, "1344", Round(decimal.NewFromInt(1344)).String())
}
