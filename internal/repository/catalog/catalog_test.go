package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/paperdesk/internal/domain/models"
)

func TestSuppliesProductLine(t *testing.T) {
	items := Supplies()
	require.Len(t, items, 46)

	byName := make(map[string]models.InventoryItem, len(items))
	for _, item := range items {
		byName[item.ItemName] = item
	}

	a4, ok := byName["A4 paper"]
	require.True(t, ok)
	assert.True(t, a4.UnitPrice.Equal(decimal.RequireFromString("0.05")))
	assert.Equal(t, models.CategoryPaper, a4.Category)

	banner, ok := byName["Rolls of banner paper (36-inch width)"]
	require.True(t, ok)
	assert.True(t, banner.UnitPrice.Equal(decimal.RequireFromString("2.50")))
	assert.Equal(t, models.CategoryLargeFormat, banner.Category)
}

func TestSampleInventoryIsReproducible(t *testing.T) {
	first := SampleInventory(0.4, 137)
	second := SampleInventory(0.4, 137)

	require.Equal(t, first, second, "same seed must yield the same inventory")
	assert.Len(t, first, 18, "40% of 46 items")

	for _, item := range first {
		assert.GreaterOrEqual(t, item.InitialStock, 200)
		assert.Less(t, item.InitialStock, 800)
		assert.GreaterOrEqual(t, item.MinStockLevel, 50)
		assert.Less(t, item.MinStockLevel, 150)
	}
}

func TestSampleInventoryVariesBySeed(t *testing.T) {
	a := SampleInventory(0.4, 137)
	b := SampleInventory(0.4, 138)

	assert.NotEqual(t, a, b)
}

func TestMemoryCatalogLookup(t *testing.T) {
	cat := NewMemoryCatalog([]models.InventoryItem{
		{ItemName: "Cardstock", Category: models.CategoryPaper, UnitPrice: decimal.RequireFromString("0.15")},
		{ItemName: "A4 paper", Category: models.CategoryPaper, UnitPrice: decimal.RequireFromString("0.05")},
	})

	item, err := cat.Get("A4 paper")
	require.NoError(t, err)
	assert.Equal(t, "A4 paper", item.ItemName)

	_, err = cat.Get("Papyrus")
	assert.ErrorIs(t, err, ErrItemNotFound)

	all := cat.All()
	require.Len(t, all, 2)
	assert.Equal(t, "A4 paper", all[0].ItemName, "All is sorted by name")
	assert.Equal(t, "Cardstock", all[1].ItemName)
}
