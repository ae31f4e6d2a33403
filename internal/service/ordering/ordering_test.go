package ordering

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/paperdesk/internal/domain/models"
	"github.com/mamadbah2/paperdesk/internal/repository/catalog"
	"github.com/mamadbah2/paperdesk/internal/repository/ledger"
	"github.com/mamadbah2/paperdesk/internal/service/projection"
)

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func newFixture(t *testing.T, txs ...models.Transaction) (*Service, *ledger.MemoryStore) {
	t.Helper()

	store := ledger.NewMemoryStore()
	for _, tx := range txs {
		_, err := store.Append(context.Background(), tx)
		require.NoError(t, err)
	}

	cat := catalog.NewMemoryCatalog([]models.InventoryItem{
		{ItemName: "A4 paper", Category: models.CategoryPaper, UnitPrice: decimal.RequireFromString("0.05"), MinStockLevel: 100},
		{ItemName: "Cardstock", Category: models.CategoryPaper, UnitPrice: decimal.RequireFromString("0.15"), MinStockLevel: 50},
	})

	proj := projection.NewService(store, cat, nil)
	return NewService(store, cat, proj, nil), store
}

func openingCash(amount int64) models.Transaction {
	return models.Transaction{Type: models.TransactionSale, Amount: decimal.NewFromInt(amount), Date: day(1)}
}

func openingStock(item string, units int) models.Transaction {
	return models.Transaction{ItemName: item, Type: models.TransactionStockOrder, Units: units, Amount: decimal.NewFromInt(1), Date: day(1)}
}

func TestDeliveryDateLeadTimes(t *testing.T) {
	svc, _ := newFixture(t)
	order := day(10)

	tests := []struct {
		name     string
		quantity int
		wantDays int
	}{
		{name: "tiny order ships same day", quantity: 10, wantDays: 0},
		{name: "just above same-day tier", quantity: 11, wantDays: 1},
		{name: "one-day tier upper bound", quantity: 100, wantDays: 1},
		{name: "four-day tier lower bound", quantity: 101, wantDays: 4},
		{name: "four-day tier upper bound", quantity: 1000, wantDays: 4},
		{name: "bulk order takes a week", quantity: 1001, wantDays: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.DeliveryDate(order, tt.quantity)
			assert.Equal(t, order.AddDate(0, 0, tt.wantDays), got)
		})
	}
}

func TestRestockDatesTransactionAtDelivery(t *testing.T) {
	svc, store := newFixture(t, openingCash(1000))

	result, err := svc.Restock(context.Background(), "A4 paper", 500, day(10))
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.Equal(t, day(14), result.DeliveryDate, "500 units carry a four day lead time")
	assert.True(t, result.Cost.Equal(decimal.NewFromInt(25)), "cost = %s", result.Cost)

	txs, err := store.Scan(context.Background(), ledger.Filter{ItemName: "A4 paper"})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, day(14), txs[0].Date)
	assert.Equal(t, result.TransactionID, txs[0].ID)

	// Until delivery the stock and the cash deduction are invisible.
	proj := projection.NewService(store, catalog.NewMemoryCatalog(nil), nil)
	assert.Equal(t, 0, proj.StockLevel(context.Background(), "A4 paper", day(13)))
	assert.True(t, proj.CashBalance(context.Background(), day(13)).Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 500, proj.StockLevel(context.Background(), "A4 paper", day(14)))
}

func TestRestockInsufficientFundsLeavesLedgerUntouched(t *testing.T) {
	svc, store := newFixture(t, openingCash(10))

	result, err := svc.Restock(context.Background(), "Cardstock", 1000, day(5))
	require.ErrorIs(t, err, ErrInsufficientFunds)
	assert.False(t, result.Success)
	assert.Contains(t, result.Reason, "insufficient funds")

	txs, scanErr := store.Scan(context.Background(), ledger.Filter{ItemName: "Cardstock"})
	require.NoError(t, scanErr)
	assert.Empty(t, txs)
}

func TestRestockUnknownItem(t *testing.T) {
	svc, store := newFixture(t, openingCash(1000))

	result, err := svc.Restock(context.Background(), "Papyrus", 10, day(5))
	require.ErrorIs(t, err, catalog.ErrItemNotFound)
	assert.False(t, result.Success)

	txs, scanErr := store.Scan(context.Background(), ledger.Filter{})
	require.NoError(t, scanErr)
	assert.Len(t, txs, 1, "only the opening cash record remains")
}

func TestPlaceOrderAppendsSales(t *testing.T) {
	svc, store := newFixture(t, openingStock("A4 paper", 300))

	result := svc.PlaceOrder(context.Background(), []models.OrderItem{
		{ItemName: "A4 paper", Quantity: 150, Price: decimal.RequireFromString("7.125")},
	}, day(5))

	require.True(t, result.Success)
	require.Len(t, result.Lines, 1)
	assert.True(t, result.Lines[0].Success)
	assert.True(t, result.TotalRevenue.Equal(decimal.RequireFromString("7.125")))

	txs, err := store.Scan(context.Background(), ledger.Filter{ItemName: "A4 paper"})
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, models.TransactionSale, txs[1].Type)
	assert.Equal(t, 150, txs[1].Units)
}

func TestPlaceOrderPartialFailure(t *testing.T) {
	svc, store := newFixture(t, openingStock("A4 paper", 300), openingStock("Cardstock", 5))

	result := svc.PlaceOrder(context.Background(), []models.OrderItem{
		{ItemName: "A4 paper", Quantity: 100, Price: decimal.NewFromInt(5)},
		{ItemName: "Cardstock", Quantity: 50, Price: decimal.NewFromInt(7)},
	}, day(5))

	assert.False(t, result.Success)
	require.Len(t, result.Lines, 2)
	assert.True(t, result.Lines[0].Success)
	assert.False(t, result.Lines[1].Success)
	assert.Contains(t, result.Lines[1].Reason, "insufficient stock")
	assert.True(t, result.TotalRevenue.Equal(decimal.NewFromInt(5)), "only fulfilled lines count")

	txs, err := store.Scan(context.Background(), ledger.Filter{ItemName: "Cardstock"})
	require.NoError(t, err)
	assert.Len(t, txs, 1, "failed line must not write a sale")
}

func TestParseDate(t *testing.T) {
	svc, _ := newFixture(t)
	today := day(20)
	svc.now = func() time.Time { return today }

	assert.Equal(t, day(15), svc.ParseDate("2025-03-15"))
	assert.Equal(t, day(15), svc.ParseDate("2025-03-15T08:30:00Z"), "time component is tolerated")
	assert.Equal(t, today, svc.ParseDate("not-a-date"))
	assert.Equal(t, today, svc.ParseDate(""))
}
