package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/inventory-dashboard/internal/core/domain"
)

// XLSXContentType is the media type of exported workbooks.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var exportHeaders = []string{
	"SKU", "Product", "Category", "Size", "Color",
	"On Hand", "Reserved", "Available",
	"Buy Price", "Sell Price", "Stock Status", "Last Modified",
}

// renderInventoryWorkbook writes items to a single-sheet workbook.
func renderInventoryWorkbook(items []domain.InventoryItem) ([]byte, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet("Inventory")
	if err != nil {
		return nil, fmt.Errorf("failed to add worksheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, header := range exportHeaders {
		cell := headerRow.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}

	for _, item := range items {
		row := sheet.AddRow()
		row.AddCell().SetString(item.SKU)
		row.AddCell().SetString(item.ProductName)
		row.AddCell().SetString(string(item.Category))
		row.AddCell().SetString(deref(item.Size))
		row.AddCell().SetString(deref(item.Color))
		row.AddCell().SetInt(item.QuantityOnHand)
		row.AddCell().SetInt(item.QuantityReserved)
		row.AddCell().SetInt(item.QuantityAvailable)
		row.AddCell().SetString(item.BuyPrice)
		row.AddCell().SetString(item.SellPrice)
		row.AddCell().SetString(string(item.StockStatus()))
		row.AddCell().SetString(item.LastModified.UTC().Format(time.RFC3339))
	}

	for i := range exportHeaders {
		sheet.SetColWidth(i+1, i+1, 15)
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, fmt.Errorf("failed to write Excel file to buffer: %w", err)
	}

	return buffer.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
