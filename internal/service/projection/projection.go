package projection

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/paperdesk/internal/domain/models"
	"github.com/mamadbah2/paperdesk/internal/repository/catalog"
	"github.com/mamadbah2/paperdesk/internal/repository/ledger"
)

const topSellerCount = 5

// Service derives point-in-time state by folding the transaction ledger.
// Stock and cash are never stored; every answer is recomputed from the log
// up to the cutoff date. Projection queries deliberately never fail upward:
// an unreadable ledger degrades to zero values so report generation cannot
// crash a request.
type Service struct {
	ledger  ledger.Store
	catalog catalog.Catalog
	logger  *zap.Logger
}

// NewService wires a projection service instance.
func NewService(store ledger.Store, cat catalog.Catalog, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{ledger: store, catalog: cat, logger: logger}
}

// StockLevel returns net stock for one item as of the cutoff date: stock
// order units minus sale units. Zero when no records match. Negative raw
// sums are legal internally (e.g. a sale entered before its matching stock
// order); availability callers compare against the requested quantity
// regardless of sign.
func (s *Service) StockLevel(ctx context.Context, itemName string, asOf time.Time) int {
	txs, err := s.ledger.Scan(ctx, ledger.Filter{AsOf: asOf, ItemName: itemName})
	if err != nil {
		s.logger.Error("stock scan failed, degrading to zero", zap.String("item", itemName), zap.Error(err))
		return 0
	}

	stock := 0
	for _, tx := range txs {
		switch tx.Type {
		case models.TransactionStockOrder:
			stock += tx.Units
		case models.TransactionSale:
			stock -= tx.Units
		}
	}
	return stock
}

// AllStock returns net stock per item as of the cutoff date, restricted to
// strictly positive levels: zero or net-negative items are not available
// inventory and are omitted.
func (s *Service) AllStock(ctx context.Context, asOf time.Time) map[string]int {
	txs, err := s.ledger.Scan(ctx, ledger.Filter{AsOf: asOf})
	if err != nil {
		s.logger.Error("inventory scan failed, degrading to empty", zap.Error(err))
		return map[string]int{}
	}

	levels := make(map[string]int)
	for _, tx := range txs {
		if tx.ItemName == "" {
			continue
		}
		switch tx.Type {
		case models.TransactionStockOrder:
			levels[tx.ItemName] += tx.Units
		case models.TransactionSale:
			levels[tx.ItemName] -= tx.Units
		}
	}

	for name, stock := range levels {
		if stock <= 0 {
			delete(levels, name)
		}
	}
	return levels
}

// CashBalance returns sale revenue minus stock purchase cost over all
// records up to the cutoff date, including item-less cash seed events. Zero
// when the filtered ledger prefix is empty.
func (s *Service) CashBalance(ctx context.Context, asOf time.Time) decimal.Decimal {
	txs, err := s.ledger.Scan(ctx, ledger.Filter{AsOf: asOf})
	if err != nil {
		s.logger.Error("cash scan failed, degrading to zero", zap.Error(err))
		return decimal.Zero
	}

	balance := decimal.Zero
	for _, tx := range txs {
		switch tx.Type {
		case models.TransactionSale:
			balance = balance.Add(tx.Amount)
		case models.TransactionStockOrder:
			balance = balance.Sub(tx.Amount)
		}
	}
	return balance
}

// CheckAvailability reports whether the requested quantity of an item can
// be fulfilled as of the cutoff date. Shortfall is floored at zero.
func (s *Service) CheckAvailability(ctx context.Context, itemName string, quantity int, asOf time.Time) models.Availability {
	current := s.StockLevel(ctx, itemName, asOf)

	shortfall := quantity - current
	if shortfall < 0 {
		shortfall = 0
	}

	return models.Availability{
		ItemName:     itemName,
		Requested:    quantity,
		CurrentStock: current,
		Available:    current >= quantity,
		Shortfall:    shortfall,
	}
}

// NeedsRestock reports whether the item has fallen below its catalog
// minimum stock level as of the cutoff date.
func (s *Service) NeedsRestock(ctx context.Context, itemName string, asOf time.Time) (bool, error) {
	item, err := s.catalog.Get(itemName)
	if err != nil {
		return false, err
	}
	return s.StockLevel(ctx, itemName, asOf) < item.MinStockLevel, nil
}

// FinancialReport assembles the complete company report as of the cutoff
// date: cash, inventory valuation over the catalog, combined assets, an
// itemized inventory summary and the top sellers by sale revenue. It never
// fails; unreadable data degrades to zeroes.
func (s *Service) FinancialReport(ctx context.Context, asOf time.Time) models.FinancialReport {
	cash := s.CashBalance(ctx, asOf)

	inventoryValue := decimal.Zero
	summary := make([]models.InventoryLine, 0)
	for _, item := range s.catalog.All() {
		stock := s.StockLevel(ctx, item.ItemName, asOf)
		value := item.UnitPrice.Mul(decimal.NewFromInt(int64(stock)))
		inventoryValue = inventoryValue.Add(value)

		summary = append(summary, models.InventoryLine{
			ItemName:  item.ItemName,
			Stock:     stock,
			UnitPrice: item.UnitPrice,
			Value:     value,
		})
	}

	return models.FinancialReport{
		AsOfDate:         asOf,
		CashBalance:      cash,
		InventoryValue:   inventoryValue,
		TotalAssets:      cash.Add(inventoryValue),
		InventorySummary: summary,
		TopSellers:       s.topSellers(ctx, asOf),
	}
}

func (s *Service) topSellers(ctx context.Context, asOf time.Time) []models.TopSeller {
	txs, err := s.ledger.Scan(ctx, ledger.Filter{AsOf: asOf})
	if err != nil {
		s.logger.Error("top seller scan failed, degrading to empty", zap.Error(err))
		return []models.TopSeller{}
	}

	byItem := make(map[string]*models.TopSeller)
	for _, tx := range txs {
		if tx.Type != models.TransactionSale || tx.ItemName == "" {
			continue
		}
		seller, ok := byItem[tx.ItemName]
		if !ok {
			seller = &models.TopSeller{ItemName: tx.ItemName, TotalRevenue: decimal.Zero}
			byItem[tx.ItemName] = seller
		}
		seller.TotalUnits += tx.Units
		seller.TotalRevenue = seller.TotalRevenue.Add(tx.Amount)
	}

	sellers := make([]models.TopSeller, 0, len(byItem))
	for _, seller := range byItem {
		sellers = append(sellers, *seller)
	}

	// Revenue descending; item name ascending keeps ties deterministic.
	sort.Slice(sellers, func(i, j int) bool {
		cmp := sellers[i].TotalRevenue.Cmp(sellers[j].TotalRevenue)
		if cmp != 0 {
			return cmp > 0
		}
		return sellers[i].ItemName < sellers[j].ItemName
	})

	if len(sellers) > topSellerCount {
		sellers = sellers[:topSellerCount]
	}
	return sellers
}
