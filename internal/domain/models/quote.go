package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemRequest is a single parsed customer line: an item and the quantity
// wanted. This is the output shape of the natural-language parse step.
type ItemRequest struct {
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

// QuoteLineItem is a fully priced quote line. LineTotal carries the
// discounted total for the line.
type QuoteLineItem struct {
	ItemName  string          `json:"item_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// UnavailableItem records a requested item that could not be fulfilled.
// Shortfall is requested minus available, floored at zero.
type UnavailableItem struct {
	ItemName  string `json:"item_name"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
	Shortfall int    `json:"shortfall"`
}

// Quote is an ephemeral priced offer over a list of requested items. An item
// is either fully priced or fully rejected, never partially quoted.
type Quote struct {
	LineItems        []QuoteLineItem   `json:"quote_items"`
	TotalAmount      decimal.Decimal   `json:"total_amount"`
	UnavailableItems []UnavailableItem `json:"unavailable_items"`
}

// HasUnavailable reports whether any requested item was rejected.
func (q Quote) HasUnavailable() bool {
	return len(q.UnavailableItems) > 0
}

// HistoricalQuote is a read-only reference row used for keyword search over
// past quotes. It is loaded once and never written by the running system.
type HistoricalQuote struct {
	OriginalRequest string          `json:"original_request"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Explanation     string          `json:"quote_explanation"`
	JobType         string          `json:"job_type"`
	OrderSize       string          `json:"order_size"`
	EventType       string          `json:"event_type"`
	OrderDate       time.Time       `json:"order_date"`
}
