package quoting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/paperdesk/internal/domain/models"
	"github.com/mamadbah2/paperdesk/internal/repository/catalog"
	"github.com/mamadbah2/paperdesk/internal/repository/history"
	"github.com/mamadbah2/paperdesk/internal/service/pricing"
	"github.com/mamadbah2/paperdesk/internal/service/projection"
)

// referenceLimit caps how many past quotes are handed to the explainer.
const referenceLimit = 3

// Explainer generates the customer-facing explanation for a quote, optionally
// informed by similar past quotes. The LLM backed implementation lives in
// pkg/clients/anthropic; tests substitute a deterministic stub.
type Explainer interface {
	ExplainQuote(ctx context.Context, quote models.Quote, customerContext string, references []models.HistoricalQuote) (string, error)
}

// Service builds priced quotes over the projected inventory. Quote
// generation performs no ledger mutation: calling it repeatedly against an
// unchanged ledger yields identical results.
type Service struct {
	projection *projection.Service
	catalog    catalog.Catalog
	history    history.Store
	explainer  Explainer
	logger     *zap.Logger
}

// NewService wires a quoting service. The explainer may be nil, in which
// case the deterministic fallback text is always used.
func NewService(proj *projection.Service, cat catalog.Catalog, hist history.Store, explainer Explainer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		projection: proj,
		catalog:    cat,
		history:    hist,
		explainer:  explainer,
		logger:     logger,
	}
}

// BuildQuote prices each requested item independently. An item with
// insufficient stock goes to UnavailableItems with its shortfall and
// contributes nothing to the total; partial quantities are never offered.
// Items missing from the catalog are omitted from the quote. TotalAmount is
// rounded to two places; line totals stay unrounded.
func (s *Service) BuildQuote(ctx context.Context, items []models.ItemRequest, asOf time.Time) models.Quote {
	quote := models.Quote{
		LineItems:        make([]models.QuoteLineItem, 0, len(items)),
		UnavailableItems: make([]models.UnavailableItem, 0),
	}

	total := decimal.Zero
	for _, req := range items {
		current := s.projection.StockLevel(ctx, req.ItemName, asOf)
		if current < req.Quantity {
			shortfall := req.Quantity - current
			if shortfall < 0 {
				shortfall = 0
			}
			quote.UnavailableItems = append(quote.UnavailableItems, models.UnavailableItem{
				ItemName:  req.ItemName,
				Requested: req.Quantity,
				Available: current,
				Shortfall: shortfall,
			})
			continue
		}

		item, err := s.catalog.Get(req.ItemName)
		if err != nil {
			if errors.Is(err, catalog.ErrItemNotFound) {
				s.logger.Debug("omitting unknown item from quote", zap.String("item", req.ItemName))
				continue
			}
			s.logger.Error("catalog lookup failed, omitting line", zap.String("item", req.ItemName), zap.Error(err))
			continue
		}

		breakdown := pricing.Price(req.Quantity, item.UnitPrice)
		quote.LineItems = append(quote.LineItems, models.QuoteLineItem{
			ItemName:  req.ItemName,
			Quantity:  req.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: breakdown.Total,
		})
		total = total.Add(breakdown.Total)
	}

	quote.TotalAmount = total.Round(2)
	return quote
}

// SearchHistory looks up past quotes matching any of the terms.
func (s *Service) SearchHistory(ctx context.Context, terms []string, limit int) ([]models.HistoricalQuote, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Search(ctx, terms, limit)
}

// SearchTermsFor derives keyword search terms from the requested item names.
func SearchTermsFor(items []models.ItemRequest) []string {
	terms := make([]string, 0, len(items))
	for _, item := range items {
		terms = append(terms, strings.Fields(strings.ToLower(item.ItemName))...)
	}
	if len(terms) > 3 {
		terms = terms[:3]
	}
	return terms
}

// Explain produces the customer-facing quote text, enriched with similar
// past quotes from the corpus. Explainer failures fall back to a
// deterministic plain rendering; the request is never rejected because the
// explanation step misbehaved.
func (s *Service) Explain(ctx context.Context, quote models.Quote, customerContext string) string {
	references := s.historicalReferences(ctx, quote)

	if s.explainer != nil {
		text, err := s.explainer.ExplainQuote(ctx, quote, customerContext, references)
		if err == nil && strings.TrimSpace(text) != "" {
			return text
		}
		s.logger.Debug("quote explanation failed, using fallback", zap.Error(err))
	}
	return FallbackExplanation(quote, references)
}

// historicalReferences looks up past quotes resembling the current line items
// so the explanation can echo earlier pricing language. A failed or empty
// lookup degrades to no references.
func (s *Service) historicalReferences(ctx context.Context, quote models.Quote) []models.HistoricalQuote {
	items := make([]models.ItemRequest, 0, len(quote.LineItems))
	for _, line := range quote.LineItems {
		items = append(items, models.ItemRequest{ItemName: line.ItemName, Quantity: line.Quantity})
	}

	terms := SearchTermsFor(items)
	if len(terms) == 0 {
		return nil
	}

	references, err := s.SearchHistory(ctx, terms, referenceLimit)
	if err != nil {
		s.logger.Debug("history lookup failed, explaining without references", zap.Error(err))
		return nil
	}
	return references
}

// FallbackExplanation renders the quote without any LLM involvement.
func FallbackExplanation(quote models.Quote, references []models.HistoricalQuote) string {
	var b strings.Builder
	b.WriteString("Here is your quote:\n")
	for _, line := range quote.LineItems {
		fmt.Fprintf(&b, "- %s: %d units @ $%s each = $%s\n",
			line.ItemName, line.Quantity, line.UnitPrice.StringFixed(2), line.LineTotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "Total: $%s", quote.TotalAmount.StringFixed(2))
	if len(references) > 0 {
		fmt.Fprintf(&b, "\nPricing is consistent with %d similar past orders.", len(references))
	}
	return b.String()
}
