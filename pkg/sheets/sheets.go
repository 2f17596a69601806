package sheets

import (
	"context"
	"fmt"
	"os"

	"messbot/internal/models"
	"messbot/pkg/config"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// readRange is wide enough for any of the bot's datasets; the first row is
// taken as the header.
const readRange = "A1:ZZ"

// Client wraps the Google Sheets API behind the always-available-or-empty
// contract the accessors rely on: a missing credentials file or a failed
// fetch yields an empty dataset, never an error on the read path.
type Client struct {
	svc    *sheets.Service
	logger *zap.Logger
}

func NewClient(ctx context.Context, cfg *config.SheetsConfig, logger *zap.Logger) *Client {
	c := &Client{logger: logger}

	if _, err := os.Stat(cfg.CredentialsPath); err != nil {
		logger.Warn("Sheets credentials file not found, datasets will read as empty",
			zap.String("path", cfg.CredentialsPath))
		return c
	}

	svc, err := sheets.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheets.SpreadsheetsScope))
	if err != nil {
		logger.Error("Failed to initialize Sheets client", zap.Error(err))
		return c
	}

	c.svc = svc
	return c
}

// Records fetches every row of the given spreadsheet as loosely-typed
// records. worksheet selects a tab by name; empty means the first tab.
// Any failure is logged and surfaces as an empty slice.
func (c *Client) Records(ctx context.Context, spreadsheetID, worksheet string) []models.Record {
	if c.svc == nil || spreadsheetID == "" {
		return nil
	}

	rng := readRange
	if worksheet != "" {
		rng = fmt.Sprintf("%s!%s", worksheet, readRange)
	}

	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		c.logger.Error("Failed to fetch sheet data",
			zap.String("spreadsheet_id", spreadsheetID),
			zap.Error(err))
		return nil
	}

	if len(resp.Values) < 2 {
		return nil
	}

	headers := make([]string, len(resp.Values[0]))
	for i, cell := range resp.Values[0] {
		headers[i] = fmt.Sprint(cell)
	}

	records := make([]models.Record, 0, len(resp.Values)-1)
	for _, row := range resp.Values[1:] {
		rec := make(models.Record, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(row) {
				rec[header] = fmt.Sprint(row[i])
			} else {
				rec[header] = ""
			}
		}
		records = append(records, rec)
	}

	return records
}

// Append adds one row to the end of the sheet. Writes are best-effort: the
// caller gets the error but nothing is retried or rolled back.
func (c *Client) Append(ctx context.Context, spreadsheetID, worksheet string, row []interface{}) error {
	if c.svc == nil {
		return fmt.Errorf("sheets client not initialized")
	}

	rng := readRange
	if worksheet != "" {
		rng = fmt.Sprintf("%s!%s", worksheet, readRange)
	}

	_, err := c.svc.Spreadsheets.Values.Append(spreadsheetID, rng, &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append row: %w", err)
	}
	return nil
}
