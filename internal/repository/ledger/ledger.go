package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/mamadbah2/paperdesk/internal/domain/models"
)

// ErrInvalidTransactionType indicates an append with an unsupported
// transaction type. This is the only way Append can fail on the in-memory
// store.
var ErrInvalidTransactionType = errors.New("transaction type must be 'stock_orders' or 'sales'")

// Filter restricts a ledger scan. AsOf is the inclusive cutoff date; an
// empty ItemName matches every record, including pure cash events.
type Filter struct {
	AsOf     time.Time
	ItemName string
}

// Store is the append-only transaction log, the single source of truth for
// money and stock. There are no update or delete operations: any two
// observers computing the same point-in-time query see the same result
// regardless of when they run it.
type Store interface {
	// Append assigns the next id, stores the record and returns the id.
	Append(ctx context.Context, tx models.Transaction) (int64, error)
	// Scan returns all records matching the filter, in id order.
	Scan(ctx context.Context, filter Filter) ([]models.Transaction, error)
}
