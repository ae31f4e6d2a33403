package ledger

import (
	"context"
	"sync"

	"github.com/mamadbah2/paperdesk/internal/domain/models"
)

// MemoryStore is the in-process ledger implementation. The design assumes a
// single writer; the mutex only protects against accidental misuse, it is
// not an isolation mechanism between a stock check and a later write.
type MemoryStore struct {
	mu     sync.RWMutex
	txs    []models.Transaction
	nextID int64
}

// NewMemoryStore creates an empty in-memory ledger.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// Append stores the record with the next monotonically increasing id.
func (s *MemoryStore) Append(_ context.Context, tx models.Transaction) (int64, error) {
	if !tx.Type.Valid() {
		return 0, ErrInvalidTransactionType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx.ID = s.nextID
	s.nextID++
	s.txs = append(s.txs, tx)
	return tx.ID, nil
}

// Scan returns every record with date on or before the cutoff, optionally
// narrowed to a single item, in insertion (id) order.
func (s *MemoryStore) Scan(_ context.Context, filter Filter) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Transaction, 0, len(s.txs))
	for _, tx := range s.txs {
		if !filter.AsOf.IsZero() && tx.Date.After(filter.AsOf) {
			continue
		}
		if filter.ItemName != "" && tx.ItemName != filter.ItemName {
			continue
		}
		result = append(result, tx)
	}
	return result, nil
}
