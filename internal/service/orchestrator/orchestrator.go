package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/paperdesk/internal/domain/models"
	"github.com/mamadbah2/paperdesk/internal/service/ordering"
	"github.com/mamadbah2/paperdesk/internal/service/projection"
	"github.com/mamadbah2/paperdesk/internal/service/quoting"
)

// ErrNoItemsParsed indicates the free-text parse step produced no usable
// items. The request is rejected; the process carries on.
var ErrNoItemsParsed = errors.New("no items could be parsed from the request")

// ErrUnavailableItems indicates at least one requested item remained
// unavailable after restocking was attempted. The whole request is rejected;
// no order is placed.
var ErrUnavailableItems = errors.New("some requested items are unavailable")

const (
	// restockBuffer is ordered on top of the shortfall so the next similar
	// request does not immediately run dry again.
	restockBuffer = 200

	dateFormat = "2006-01-02"
)

// RequestParser turns free-form customer text into structured item lines.
// The LLM backed implementation lives in pkg/clients/anthropic; tests
// substitute a deterministic stub.
type RequestParser interface {
	ParseItems(ctx context.Context, request string, date time.Time) ([]models.ItemRequest, error)
}

// Service sequences the full customer request pipeline: parse, availability
// check, restock, quote, order, summary. Unlike the per-item partial success
// the ordering layer supports, this layer is all-or-nothing: any item still
// unavailable after restocking rejects the entire request.
type Service struct {
	parser     RequestParser
	projection *projection.Service
	quoting    *quoting.Service
	ordering   *ordering.Service
	logger     *zap.Logger
}

// NewService constructs the request orchestrator.
func NewService(parser RequestParser, proj *projection.Service, quote *quoting.Service, order *ordering.Service, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		parser:     parser,
		projection: proj,
		quoting:    quote,
		ordering:   order,
		logger:     logger,
	}
}

// HandleRequest processes one customer request dated at the given day and
// returns a human-readable summary. On rejection the returned message
// explains the outcome and the error carries the rejection kind
// (ErrNoItemsParsed, ErrUnavailableItems).
func (s *Service) HandleRequest(ctx context.Context, request string, date time.Time) (string, error) {
	if s.parser == nil {
		return "Sorry, we could not understand your request.", ErrNoItemsParsed
	}

	items, err := s.parser.ParseItems(ctx, request, date)
	if err != nil {
		s.logger.Warn("request parse failed", zap.Error(err))
		return "Sorry, we could not understand your request.", fmt.Errorf("%w: %v", ErrNoItemsParsed, err)
	}
	if len(items) == 0 {
		return "No items found in your request. Please specify the items and quantities you need.", ErrNoItemsParsed
	}

	s.logger.Info("request parsed", zap.Int("items", len(items)), zap.Time("date", date))

	restockNote := s.restockShortItems(ctx, items, date)

	quote := s.quoting.BuildQuote(ctx, items, date)
	if quote.HasUnavailable() {
		return rejectionMessage(quote, restockNote), ErrUnavailableItems
	}

	orderItems := make([]models.OrderItem, 0, len(quote.LineItems))
	for _, line := range quote.LineItems {
		orderItems = append(orderItems, models.OrderItem{
			ItemName: line.ItemName,
			Quantity: line.Quantity,
			Price:    line.LineTotal,
		})
	}

	order := s.ordering.PlaceOrder(ctx, orderItems, date)
	if !order.Success {
		return orderFailureMessage(order), ErrUnavailableItems
	}

	explanation := s.quoting.Explain(ctx, quote, request)
	return successMessage(quote, order, explanation, restockNote), nil
}

// restockShortItems places a supplier order for every short item, covering
// the shortfall plus a buffer. Failed restocks are reported, not fatal: the
// quote step will reject the still-short item.
func (s *Service) restockShortItems(ctx context.Context, items []models.ItemRequest, date time.Time) string {
	var notes []string

	for _, item := range items {
		avail := s.projection.CheckAvailability(ctx, item.ItemName, item.Quantity, date)
		if avail.Available {
			continue
		}

		result, err := s.ordering.Restock(ctx, item.ItemName, avail.Shortfall+restockBuffer, date)
		if err != nil {
			s.logger.Warn("restock attempt failed",
				zap.String("item", item.ItemName),
				zap.Int("shortfall", avail.Shortfall),
				zap.Error(err))
			continue
		}

		notes = append(notes, fmt.Sprintf("%s (%d units arriving %s)",
			result.ItemName, result.Quantity, result.DeliveryDate.Format(dateFormat)))
	}

	if len(notes) == 0 {
		return ""
	}
	return "Note: we have placed restock orders for " + strings.Join(notes, ", ") + "."
}

func rejectionMessage(quote models.Quote, restockNote string) string {
	var b strings.Builder
	b.WriteString("We cannot fulfill your complete order at this time. The following items are unavailable:\n")
	for _, item := range quote.UnavailableItems {
		fmt.Fprintf(&b, "- %s: requested %d, available %d\n", item.ItemName, item.Requested, item.Available)
	}
	if restockNote != "" {
		b.WriteString(restockNote)
	}
	return b.String()
}

func orderFailureMessage(order models.OrderResult) string {
	var b strings.Builder
	b.WriteString("We could not process your order:\n")
	for _, line := range order.Lines {
		if !line.Success {
			fmt.Fprintf(&b, "- %s: %s\n", line.ItemName, line.Reason)
		}
	}
	return b.String()
}

func successMessage(quote models.Quote, order models.OrderResult, explanation, restockNote string) string {
	var b strings.Builder
	b.WriteString("Thank you for your order!\n\n")
	b.WriteString(explanation)
	b.WriteString("\n\nORDER SUMMARY:\n")
	for _, line := range quote.LineItems {
		fmt.Fprintf(&b, "- %s: %d units @ $%s each = $%s\n",
			line.ItemName, line.Quantity, line.UnitPrice.StringFixed(2), line.LineTotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTOTAL: $%s\n", quote.TotalAmount.StringFixed(2))
	fmt.Fprintf(&b, "Order processed successfully. Revenue: $%s.", order.TotalRevenue.Round(2).StringFixed(2))
	if restockNote != "" {
		b.WriteString("\n")
		b.WriteString(restockNote)
	}
	return b.String()
}
