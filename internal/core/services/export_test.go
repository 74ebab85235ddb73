package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/inventory-dashboard/internal/core/domain"
)

func TestRenderInventoryWorkbook(t *testing.T) {
	size := "m"
	items := []domain.InventoryItem{
		{
			ID:                uuid.New(),
			SKU:               "CCTS-M-BLACK",
			ProductName:       "Classic Cotton T-Shirt",
			Category:          domain.CategoryTShirt,
			Size:              &size,
			QuantityOnHand:    3,
			QuantityReserved:  1,
			QuantityAvailable: 2,
			BuyPrice:          "8.99",
			SellPrice:         "19.99",
			LastModified:      time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC),
		},
		{
			ID:                uuid.New(),
			SKU:               "ECTB-NATURAL",
			ProductName:       "Eco Canvas Tote Bag",
			Category:          domain.CategoryToteBag,
			QuantityOnHand:    40,
			QuantityAvailable: 40,
			BuyPrice:          "5.99",
			SellPrice:         "16.99",
			LastModified:      time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC),
		},
	}

	data, err := renderInventoryWorkbook(items)
	require.NoError(t, err)

	file, err := xlsx.OpenBinary(data)
	require.NoError(t, err)
	sheet, ok := file.Sheet["Inventory"]
	require.True(t, ok)
	assert.Equal(t, 3, sheet.MaxRow)

	cellValue := func(row, col int) string {
		cell, err := sheet.Cell(row, col)
		require.NoError(t, err)
		return cell.Value
	}

	assert.Equal(t, "SKU", cellValue(0, 0))
	assert.Equal(t, "Stock Status", cellValue(0, 10))
	assert.Equal(t, "CCTS-M-BLACK", cellValue(1, 0))
	assert.Equal(t, "m", cellValue(1, 3))
	assert.Equal(t, "", cellValue(1, 4))
	assert.Equal(t, "2", cellValue(1, 7))
	assert.Equal(t, string(domain.StockLow), cellValue(1, 10))
	assert.Equal(t, "2024-05-01T08:30:00Z", cellValue(1, 11))
	assert.Equal(t, string(domain.StockInStock), cellValue(2, 10))
}
