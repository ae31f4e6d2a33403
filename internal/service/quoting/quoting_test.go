package quoting

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/paperdesk/internal/domain/models"
	"github.com/mamadbah2/paperdesk/internal/repository/catalog"
	"github.com/mamadbah2/paperdesk/internal/repository/history"
	"github.com/mamadbah2/paperdesk/internal/repository/ledger"
	"github.com/mamadbah2/paperdesk/internal/service/projection"
)

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

type stubExplainer struct {
	text string
	err  error

	gotReferences []models.HistoricalQuote
}

func (s *stubExplainer) ExplainQuote(_ context.Context, _ models.Quote, _ string, references []models.HistoricalQuote) (string, error) {
	s.gotReferences = references
	return s.text, s.err
}

func newFixture(t *testing.T, explainer Explainer, stock map[string]int, corpus []models.HistoricalQuote) *Service {
	t.Helper()

	store := ledger.NewMemoryStore()
	for item, units := range stock {
		_, err := store.Append(context.Background(), models.Transaction{
			ItemName: item,
			Type:     models.TransactionStockOrder,
			Units:    units,
			Amount:   decimal.NewFromInt(1),
			Date:     day(1),
		})
		require.NoError(t, err)
	}

	cat := catalog.NewMemoryCatalog([]models.InventoryItem{
		{ItemName: "A4 paper", Category: models.CategoryPaper, UnitPrice: decimal.RequireFromString("0.05"), MinStockLevel: 100},
		{ItemName: "Cardstock", Category: models.CategoryPaper, UnitPrice: decimal.RequireFromString("0.15"), MinStockLevel: 50},
	})

	proj := projection.NewService(store, cat, nil)
	return NewService(proj, cat, history.NewMemoryStore(corpus), explainer, nil)
}

func TestBuildQuoteAppliesBulkDiscount(t *testing.T) {
	svc := newFixture(t, nil, map[string]int{"A4 paper": 300}, nil)

	quote := svc.BuildQuote(context.Background(), []models.ItemRequest{
		{ItemName: "A4 paper", Quantity: 150},
	}, day(5))

	require.Len(t, quote.LineItems, 1)
	assert.Empty(t, quote.UnavailableItems)
	assert.False(t, quote.HasUnavailable())

	line := quote.LineItems[0]
	// 150 * 0.05 = 7.50, 5% off leaves the unrounded 7.125.
	assert.True(t, line.LineTotal.Equal(decimal.RequireFromString("7.125")), "line total = %s", line.LineTotal)
	assert.True(t, quote.TotalAmount.Equal(decimal.RequireFromString("7.13")), "total = %s", quote.TotalAmount)
}

func TestBuildQuoteRejectsPartialQuantities(t *testing.T) {
	svc := newFixture(t, nil, map[string]int{"A4 paper": 50}, nil)

	quote := svc.BuildQuote(context.Background(), []models.ItemRequest{
		{ItemName: "A4 paper", Quantity: 60},
	}, day(5))

	assert.Empty(t, quote.LineItems, "no partial fulfillment offer")
	require.Len(t, quote.UnavailableItems, 1)
	assert.True(t, quote.HasUnavailable())

	short := quote.UnavailableItems[0]
	assert.Equal(t, 60, short.Requested)
	assert.Equal(t, 50, short.Available)
	assert.Equal(t, 10, short.Shortfall)
	assert.True(t, quote.TotalAmount.IsZero())
}

func TestBuildQuoteOmitsUnknownItems(t *testing.T) {
	svc := newFixture(t, nil, map[string]int{"A4 paper": 300, "Papyrus": 500}, nil)

	quote := svc.BuildQuote(context.Background(), []models.ItemRequest{
		{ItemName: "A4 paper", Quantity: 10},
		{ItemName: "Papyrus", Quantity: 10},
	}, day(5))

	require.Len(t, quote.LineItems, 1)
	assert.Equal(t, "A4 paper", quote.LineItems[0].ItemName)
	assert.Empty(t, quote.UnavailableItems, "unknown items are dropped, not reported short")
}

func TestBuildQuoteIsReadOnly(t *testing.T) {
	svc := newFixture(t, nil, map[string]int{"A4 paper": 300}, nil)
	req := []models.ItemRequest{{ItemName: "A4 paper", Quantity: 150}}

	first := svc.BuildQuote(context.Background(), req, day(5))
	second := svc.BuildQuote(context.Background(), req, day(5))

	assert.Equal(t, first, second, "quoting must not mutate state")
}

func TestExplainPrefersExplainer(t *testing.T) {
	svc := newFixture(t, &stubExplainer{text: "Great deal on paper today."}, map[string]int{"A4 paper": 300}, nil)
	quote := svc.BuildQuote(context.Background(), []models.ItemRequest{{ItemName: "A4 paper", Quantity: 10}}, day(5))

	assert.Equal(t, "Great deal on paper today.", svc.Explain(context.Background(), quote, "need paper"))
}

func TestExplainFallsBackOnError(t *testing.T) {
	svc := newFixture(t, &stubExplainer{err: errors.New("model unavailable")}, map[string]int{"A4 paper": 300}, nil)
	quote := svc.BuildQuote(context.Background(), []models.ItemRequest{{ItemName: "A4 paper", Quantity: 10}}, day(5))

	text := svc.Explain(context.Background(), quote, "need paper")
	assert.Contains(t, text, "Here is your quote")
	assert.Contains(t, text, "A4 paper")
	assert.Contains(t, text, "$0.50")
}

func TestExplainWithoutExplainer(t *testing.T) {
	svc := newFixture(t, nil, map[string]int{"A4 paper": 300}, nil)
	quote := svc.BuildQuote(context.Background(), []models.ItemRequest{{ItemName: "A4 paper", Quantity: 10}}, day(5))

	assert.Contains(t, svc.Explain(context.Background(), quote, ""), "Here is your quote")
}

func TestExplainPassesHistoricalReferences(t *testing.T) {
	corpus := []models.HistoricalQuote{
		{OriginalRequest: "Bulk A4 paper for the office", Explanation: "Applied the standard bulk discount", OrderDate: day(1)},
		{OriginalRequest: "Paper cups for an event", Explanation: "Small order, no discount", OrderDate: day(2)},
		{OriginalRequest: "Heavy cardstock badges", Explanation: "Specialty stock quoted", OrderDate: day(3)},
	}
	explainer := &stubExplainer{text: "Quoted with precedent."}
	svc := newFixture(t, explainer, map[string]int{"A4 paper": 300}, corpus)

	quote := svc.BuildQuote(context.Background(), []models.ItemRequest{{ItemName: "A4 paper", Quantity: 150}}, day(5))
	svc.Explain(context.Background(), quote, "need paper")

	// The line items derive the terms "a4" and "paper", which match the two
	// paper-related corpus entries.
	require.Len(t, explainer.gotReferences, 2)
	for _, ref := range explainer.gotReferences {
		assert.Contains(t, strings.ToLower(ref.OriginalRequest), "paper")
	}
}

func TestFallbackMentionsHistoricalReferences(t *testing.T) {
	corpus := []models.HistoricalQuote{
		{OriginalRequest: "A4 paper restock", Explanation: "Standard order", OrderDate: day(1)},
	}
	svc := newFixture(t, nil, map[string]int{"A4 paper": 300}, corpus)

	quote := svc.BuildQuote(context.Background(), []models.ItemRequest{{ItemName: "A4 paper", Quantity: 10}}, day(5))
	text := svc.Explain(context.Background(), quote, "")

	assert.Contains(t, text, "1 similar past orders")
}

func TestSearchTermsFor(t *testing.T) {
	terms := SearchTermsFor([]models.ItemRequest{
		{ItemName: "Glossy Paper"},
		{ItemName: "Heavy Cardstock"},
	})
	assert.Equal(t, []string{"glossy", "paper", "heavy"}, terms, "capped at three lowercase words")
}
