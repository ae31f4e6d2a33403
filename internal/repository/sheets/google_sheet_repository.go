package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/paperdesk/internal/config"
	"github.com/mamadbah2/paperdesk/internal/domain/models"
)

const snapshotRange = "Snapshots!A:E"

// Exporter pushes financial snapshots to an external spreadsheet for the
// bookkeeping side of the business.
type Exporter interface {
	AppendSnapshot(ctx context.Context, snapshot models.FinancialSnapshot) error
}

// GoogleSheetExporter implements the Exporter interface using the official
// Google Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Google Sheets backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendSnapshot appends one snapshot row: date, cash, inventory value,
// total assets, created-at.
func (e *GoogleSheetExporter) AppendSnapshot(ctx context.Context, snapshot models.FinancialSnapshot) error {
	values := []interface{}{
		snapshot.Date.Format("2006-01-02"),
		snapshot.CashBalance,
		snapshot.InventoryValue,
		snapshot.TotalAssets,
		snapshot.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, snapshotRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append snapshot row into range %s: %w", snapshotRange, err)
	}

	e.logger.Debug("snapshot row appended to sheet", zap.String("range", snapshotRange))
	return nil
}
