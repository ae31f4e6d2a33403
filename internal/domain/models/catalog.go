package models

import "github.com/shopspring/decimal"

// Category classifies catalog items.
type Category string

const (
	CategoryPaper       Category = "paper"
	CategoryProduct     Category = "product"
	CategoryLargeFormat Category = "large_format"
	CategorySpecialty   Category = "specialty"
)

// InventoryItem is a static catalog row, seeded once and never updated at
// runtime. Current stock is NOT stored here; it is always derived from the
// ledger as of a query date.
type InventoryItem struct {
	ItemName      string          `json:"item_name"`
	Category      Category        `json:"category"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	MinStockLevel int             `json:"min_stock_level"`
}
