package history

import (
	"context"
	"sort"
	"strings"

	"github.com/mamadbah2/paperdesk/internal/domain/models"
)

const defaultLimit = 5

// Store exposes keyword search over the historical quote corpus. The corpus
// is loaded once at startup and never written by the running system.
type Store interface {
	Search(ctx context.Context, terms []string, limit int) ([]models.HistoricalQuote, error)
}

// MemoryStore holds the corpus in process.
type MemoryStore struct {
	quotes []models.HistoricalQuote
}

// NewMemoryStore wraps the provided corpus.
func NewMemoryStore(quotes []models.HistoricalQuote) *MemoryStore {
	return &MemoryStore{quotes: quotes}
}

// Search returns quotes whose original request or explanation contains any
// of the terms, case-insensitively. Results are ordered by order date
// descending and capped at limit (default 5 when limit is not positive).
func (s *MemoryStore) Search(_ context.Context, terms []string, limit int) ([]models.HistoricalQuote, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	matched := make([]models.HistoricalQuote, 0)
	for _, q := range s.quotes {
		if matchesAny(q, terms) {
			matched = append(matched, q)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].OrderDate.After(matched[j].OrderDate)
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func matchesAny(q models.HistoricalQuote, terms []string) bool {
	if len(terms) == 0 {
		return true
	}

	request := strings.ToLower(q.OriginalRequest)
	explanation := strings.ToLower(q.Explanation)

	for _, term := range terms {
		needle := strings.ToLower(term)
		if needle == "" {
			continue
		}
		if strings.Contains(request, needle) || strings.Contains(explanation, needle) {
			return true
		}
	}
	return false
}
