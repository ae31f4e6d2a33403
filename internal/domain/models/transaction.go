package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType enumerates the supported ledger entry kinds.
type TransactionType string

const (
	TransactionStockOrder TransactionType = "stock_orders"
	TransactionSale       TransactionType = "sales"
)

// Valid reports whether the type is one of the supported ledger entry kinds.
func (t TransactionType) Valid() bool {
	return t == TransactionStockOrder || t == TransactionSale
}

// Transaction is a single append-only ledger record. Amount is the total
// price of the transaction, never a per-unit price. A transaction with an
// empty ItemName is a pure cash event (e.g. seed capital) and contributes to
// the cash balance only. Records are never updated or deleted once written.
type Transaction struct {
	ID       int64           `json:"id"`
	ItemName string          `json:"item_name,omitempty"`
	Type     TransactionType `json:"transaction_type"`
	Units    int             `json:"units,omitempty"`
	Amount   decimal.Decimal `json:"price"`
	Date     time.Time       `json:"transaction_date"`
}
