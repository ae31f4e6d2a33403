package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryLine is one row of the financial report inventory summary.
type InventoryLine struct {
	ItemName  string          `json:"item_name"`
	Stock     int             `json:"stock"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Value     decimal.Decimal `json:"value"`
}

// TopSeller aggregates sale revenue for a single item.
type TopSeller struct {
	ItemName     string          `json:"item_name"`
	TotalUnits   int             `json:"total_units"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// FinancialReport is the complete point-in-time company report. It is always
// recomputed from the ledger, never stored as derived state.
type FinancialReport struct {
	AsOfDate         time.Time       `json:"as_of_date"`
	CashBalance      decimal.Decimal `json:"cash_balance"`
	InventoryValue   decimal.Decimal `json:"inventory_value"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	InventorySummary []InventoryLine `json:"inventory_summary"`
	TopSellers       []TopSeller     `json:"top_selling_products"`
}

// FinancialSnapshot is the persisted form of a report, written by the
// scheduler. Monetary values are stored as fixed-point strings so the
// database representation stays exact.
type FinancialSnapshot struct {
	Date           time.Time `bson:"date" json:"date"`
	CashBalance    string    `bson:"cash_balance" json:"cash_balance"`
	InventoryValue string    `bson:"inventory_value" json:"inventory_value"`
	TotalAssets    string    `bson:"total_assets" json:"total_assets"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// Snapshot converts a report into its persistable form.
func (r FinancialReport) Snapshot(now time.Time) FinancialSnapshot {
	return FinancialSnapshot{
		Date:           r.AsOfDate,
		CashBalance:    r.CashBalance.StringFixed(2),
		InventoryValue: r.InventoryValue.StringFixed(2),
		TotalAssets:    r.TotalAssets.StringFixed(2),
		CreatedAt:      now,
	}
}
