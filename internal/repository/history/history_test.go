package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/paperdesk/internal/domain/models"
)

func corpus() []models.HistoricalQuote {
	at := func(month time.Month, d int) time.Time {
		return time.Date(2024, month, d, 0, 0, 0, 0, time.UTC)
	}
	return []models.HistoricalQuote{
		{OriginalRequest: "Need glossy paper for a wedding brochure", Explanation: "Premium stock quoted", OrderDate: at(time.February, 10)},
		{OriginalRequest: "Cardstock for conference badges", Explanation: "Bulk discount applied", OrderDate: at(time.May, 3)},
		{OriginalRequest: "A4 paper for office printing", Explanation: "Standard paper order", OrderDate: at(time.March, 21)},
		{OriginalRequest: "Banner paper for a school play", Explanation: "Large format job", OrderDate: at(time.January, 5)},
		{OriginalRequest: "Envelopes and letterhead", Explanation: "Mixed stationery order", OrderDate: at(time.June, 30)},
		{OriginalRequest: "More cardstock please", Explanation: "Repeat customer", OrderDate: at(time.April, 12)},
	}
}

func TestSearchMatchesAnyTerm(t *testing.T) {
	store := NewMemoryStore(corpus())

	// Any term matching is enough; "zzz" matches nothing on its own.
	results, err := store.Search(context.Background(), []string{"zzz", "cardstock"}, 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Cardstock for conference badges", results[0].OriginalRequest)
	assert.Equal(t, "More cardstock please", results[1].OriginalRequest)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	store := NewMemoryStore(corpus())

	results, err := store.Search(context.Background(), []string{"GLOSSY"}, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].OriginalRequest, "glossy")
}

func TestSearchMatchesExplanation(t *testing.T) {
	store := NewMemoryStore(corpus())

	results, err := store.Search(context.Background(), []string{"large format"}, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Banner paper for a school play", results[0].OriginalRequest)
}

func TestSearchOrdersByDateDescending(t *testing.T) {
	store := NewMemoryStore(corpus())

	results, err := store.Search(context.Background(), []string{"paper"}, 0)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for i := 1; i < len(results); i++ {
		assert.False(t, results[i].OrderDate.After(results[i-1].OrderDate),
			"results must be ordered newest first")
	}
}

func TestSearchDefaultAndExplicitLimit(t *testing.T) {
	store := NewMemoryStore(corpus())
	ctx := context.Background()

	// Empty terms match everything; the corpus has 6 entries and the
	// default cap is 5.
	all, err := store.Search(ctx, nil, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	two, err := store.Search(ctx, nil, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestSearchIgnoresEmptyTerms(t *testing.T) {
	store := NewMemoryStore(corpus())

	results, err := store.Search(context.Background(), []string{"", "wedding"}, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
}
