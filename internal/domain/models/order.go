package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a line submitted for order placement. Price is the
// already-discounted line total taken from the quote, not quantity times
// unit price.
type OrderItem struct {
	ItemName string          `json:"item_name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OrderLineResult reports the outcome of one order line. Failed lines carry
// a reason and do not abort the remaining lines.
type OrderLineResult struct {
	ItemName      string          `json:"item_name"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	TransactionID int64           `json:"transaction_id,omitempty"`
	Success       bool            `json:"success"`
	Reason        string          `json:"reason,omitempty"`
}

// OrderResult aggregates per-line outcomes. Success is true only when every
// line succeeded; partial success is legal and reported line by line.
type OrderResult struct {
	Lines        []OrderLineResult `json:"order_results"`
	TotalRevenue decimal.Decimal   `json:"total_revenue"`
	Success      bool              `json:"success"`
}

// RestockResult reports the outcome of a supplier restock attempt. The
// ledger record, when written, is dated at DeliveryDate rather than the
// order date: stock lands and becomes available only on delivery day.
type RestockResult struct {
	Success       bool            `json:"success"`
	ItemName      string          `json:"item_name"`
	Quantity      int             `json:"quantity"`
	Cost          decimal.Decimal `json:"cost"`
	DeliveryDate  time.Time       `json:"delivery_date"`
	TransactionID int64           `json:"transaction_id,omitempty"`
	Reason        string          `json:"reason,omitempty"`
}

// Availability is a point-in-time stock check for one requested item.
type Availability struct {
	ItemName     string `json:"item_name"`
	Requested    int    `json:"requested_quantity"`
	CurrentStock int    `json:"current_stock"`
	Available    bool   `json:"available"`
	Shortfall    int    `json:"shortfall"`
}
