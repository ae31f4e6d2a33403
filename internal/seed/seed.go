package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/paperdesk/internal/domain/models"
	"github.com/mamadbah2/paperdesk/internal/repository/catalog"
	"github.com/mamadbah2/paperdesk/internal/repository/ledger"
)

// Defaults mirror the historical company bootstrap: 40% of the product line
// carried in stock, seeded on 2025-01-01 with 50,000 in opening capital.
const (
	DefaultSeed     = 137
	DefaultCoverage = 0.4
)

var (
	defaultInitialCash = decimal.NewFromInt(50000)
	defaultInitialDate = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// Options controls the bootstrap. Zero values fall back to the defaults
// above.
type Options struct {
	Seed        int64
	Coverage    float64
	InitialCash decimal.Decimal
	InitialDate time.Time
}

func (o Options) withDefaults() Options {
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Coverage == 0 {
		o.Coverage = DefaultCoverage
	}
	if o.InitialCash.IsZero() {
		o.InitialCash = defaultInitialCash
	}
	if o.InitialDate.IsZero() {
		o.InitialDate = defaultInitialDate
	}
	return o
}

// Bootstrap seeds the catalog and the ledger: an item-less sale supplies the
// opening cash balance, then one stock order per sampled item lands its
// opening stock, all dated at the initial date.
func Bootstrap(ctx context.Context, store ledger.Store, opts Options, logger *zap.Logger) (*catalog.MemoryCatalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = opts.withDefaults()

	seeded := catalog.SampleInventory(opts.Coverage, opts.Seed)

	// A durable ledger that already carries records was seeded on a previous
	// run. Rebuild only the catalog, which is deterministic for a given seed.
	existing, err := store.Scan(ctx, ledger.Filter{})
	if err != nil {
		return nil, fmt.Errorf("inspect ledger before seeding: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("ledger already seeded, skipping bootstrap", zap.Int("transactions", len(existing)))
		items := make([]models.InventoryItem, 0, len(seeded))
		for _, s := range seeded {
			items = append(items, s.InventoryItem)
		}
		return catalog.NewMemoryCatalog(items), nil
	}

	if _, err := store.Append(ctx, models.Transaction{
		Type:   models.TransactionSale,
		Amount: opts.InitialCash,
		Date:   opts.InitialDate,
	}); err != nil {
		return nil, fmt.Errorf("seed opening cash: %w", err)
	}

	items := make([]models.InventoryItem, 0, len(seeded))
	for _, s := range seeded {
		items = append(items, s.InventoryItem)

		cost := s.UnitPrice.Mul(decimal.NewFromInt(int64(s.InitialStock)))
		if _, err := store.Append(ctx, models.Transaction{
			ItemName: s.ItemName,
			Type:     models.TransactionStockOrder,
			Units:    s.InitialStock,
			Amount:   cost,
			Date:     opts.InitialDate,
		}); err != nil {
			return nil, fmt.Errorf("seed opening stock for %s: %w", s.ItemName, err)
		}
	}

	logger.Info("ledger seeded",
		zap.Int("items", len(items)),
		zap.String("opening_cash", opts.InitialCash.StringFixed(2)),
		zap.Time("initial_date", opts.InitialDate))

	return catalog.NewMemoryCatalog(items), nil
}
