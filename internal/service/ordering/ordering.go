package ordering

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
	"github.com/mamadbah2/paperdesk/internal/repository/ledger"
	"github.com/mamadbah2/paperdesk/internal/service/projection"
)

// ErrInsufficientFunds indicates the cash balance cannot cover a restock
// order. Restocking is all-or-nothing: no partial restock, no borrowing.
var ErrInsufficientFunds = errors.New("insufficient funds for restock")

const dateFormat = "2006-01-02"

// Service executes orders and restocks against the ledger. It is the only
// component that writes transactions after seeding.
type Service struct {
	ledger     ledger.Store
	catalog    catalog.Catalog
	projection *projection.Service
	logger     *zap.Logger
	now        func() time.Time
}

// NewService wires an ordering service instance.
func NewService(store ledger.Store, cat catalog.Catalog, proj *projection.Service, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		ledger:     store,
		catalog:    cat,
		projection: proj,
		logger:     logger,
		now:        time.Now,
	}
}

// PlaceOrder appends one sale transaction per fulfillable line. Each line
// re-validates stock against the current ledger: a quote may be stale if a
// restock or another sale landed between quoting and ordering. Failed lines
// record a reason and do not abort the rest; Success is true only when every
// line succeeded. The line Price is the already-discounted quote total, not
// quantity times unit price.
func (s *Service) PlaceOrder(ctx context.Context, items []models.OrderItem, date time.Time) models.OrderResult {
	result := models.OrderResult{
		Lines:        make([]models.OrderLineResult, 0, len(items)),
		TotalRevenue: decimal.Zero,
		Success:      true,
	}

	for _, item := range items {
		current := s.projection.StockLevel(ctx, item.ItemName, date)
		if current < item.Quantity {
			result.Lines = append(result.Lines, models.OrderLineResult{
				ItemName: item.ItemName,
				Quantity: item.Quantity,
				Price:    decimal.Zero,
				Success:  false,
				Reason:   fmt.Sprintf("insufficient stock: %d available", current),
			})
			result.Success = false
			continue
		}

		id, err := s.ledger.Append(ctx, models.Transaction{
			ItemName: item.ItemName,
			Type:     models.TransactionSale,
			Units:    item.Quantity,
			Amount:   item.Price,
			Date:     date,
		})
		if err != nil {
			s.logger.Error("sale append failed", zap.String("item", item.ItemName), zap.Error(err))
			result.Lines = append(result.Lines, models.OrderLineResult{
				ItemName: item.ItemName,
				Quantity: item.Quantity,
				Price:    decimal.Zero,
				Success:  false,
				Reason:   err.Error(),
			})
			result.Success = false
			continue
		}

		result.Lines = append(result.Lines, models.OrderLineResult{
			ItemName:      item.ItemName,
			Quantity:      item.Quantity,
			Price:         item.Price,
			TransactionID: id,
			Success:       true,
		})
		result.TotalRevenue = result.TotalRevenue.Add(item.Price)
	}

	return result
}

// Restock orders quantity units from the supplier at the catalog unit price.
// It fails without touching the ledger when the item is unknown or the cash
// balance at the order date cannot cover the cost. On success the stock
// order is dated at the computed delivery date, not the order date: stock
// lands and cash leaves only on delivery day.
func (s *Service) Restock(ctx context.Context, itemName string, quantity int, date time.Time) (models.RestockResult, error) {
	result := models.RestockResult{ItemName: itemName, Quantity: quantity}

	item, err := s.catalog.Get(itemName)
	if err != nil {
		result.Reason = fmt.Sprintf("item %q not found in catalog", itemName)
		return result, fmt.Errorf("restock %s: %w", itemName, err)
	}

	cost := item.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	cash := s.projection.CashBalance(ctx, date)
	if cash.LessThan(cost) {
		result.Reason = fmt.Sprintf("insufficient funds: need $%s, have $%s", cost.StringFixed(2), cash.StringFixed(2))
		return result, fmt.Errorf("restock %s: %w", itemName, ErrInsufficientFunds)
	}

	delivery := s.DeliveryDate(date, quantity)

	id, err := s.ledger.Append(ctx, models.Transaction{
		ItemName: itemName,
		Type:     models.TransactionStockOrder,
		Units:    quantity,
		Amount:   cost,
		Date:     delivery,
	})
	if err != nil {
		result.Reason = err.Error()
		return result, fmt.Errorf("restock %s: %w", itemName, err)
	}

	result.Success = true
	result.Cost = cost
	result.DeliveryDate = delivery
	result.TransactionID = id
	return result, nil
}

// DeliveryDate adds the supplier lead time for the quantity to the order
// date. Lead time grows with order size: up to 10 units ship same day, up
// to 100 take one day, up to 1000 take four days, anything larger seven.
func (s *Service) DeliveryDate(orderDate time.Time, quantity int) time.Time {
	return orderDate.AddDate(0, 0, leadTimeDays(quantity))
}

// ParseDate parses an ISO date, tolerating a trailing time component. A
// malformed value falls back to the current clock rather than failing; the
// leniency is deliberate.
func (s *Service) ParseDate(value string) time.Time {
	if idx := strings.Index(value, "T"); idx >= 0 {
		value = value[:idx]
	}
	parsed, err := time.Parse(dateFormat, value)
	if err != nil {
		s.logger.Warn("invalid date, falling back to today", zap.String("value", value), zap.Error(err))
		return s.now()
	}
	return parsed
}

func leadTimeDays(quantity int) int {
	switch {
	case quantity <= 10:
		return 0
	case quantity <= 100:
		return 1
	case quantity <= 1000:
		return 4
	default:
		return 7
	}
}
