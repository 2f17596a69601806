package repository

import (
	"context"

	"messbot/internal/models"

	"go.uber.org/zap"
)

// Source is the dataset-source capability: fetch the rows of a spreadsheet
// as loosely-typed records, or append to it best-effort. pkg/sheets provides
// the production implementation; tests substitute stubs.
type Source interface {
	Records(ctx context.Context, spreadsheetID, worksheet string) []models.Record
	Append(ctx context.Context, spreadsheetID, worksheet string, row []interface{}) error
}

// DatasetRepository binds a Source to one concrete spreadsheet. Each accessor
// service receives its own repository instead of reaching for a shared
// client, so data never persists across queries.
type DatasetRepository struct {
	source    Source
	sheetID   string
	worksheet string
	logger    *zap.Logger
}

func NewDatasetRepository(source Source, sheetID string, logger *zap.Logger) *DatasetRepository {
	return &DatasetRepository{
		source:  source,
		sheetID: sheetID,
		logger:  logger,
	}
}

// WithWorksheet returns a repository reading a named tab instead of the
// first one.
func (r *DatasetRepository) WithWorksheet(name string) *DatasetRepository {
	clone := *r
	clone.worksheet = name
	return &clone
}

// Fetch re-reads the dataset. Always fresh, never cached; an unreachable
// source reads as empty.
func (r *DatasetRepository) Fetch(ctx context.Context) []models.Record {
	records := r.source.Records(ctx, r.sheetID, r.worksheet)
	r.logger.Debug("Fetched dataset",
		zap.String("spreadsheet_id", r.sheetID),
		zap.Int("rows", len(records)))
	return records
}

// AppendRow writes one row to the dataset, best-effort.
func (r *DatasetRepository) AppendRow(ctx context.Context, row []interface{}) error {
	return r.source.Append(ctx, r.sheetID, r.worksheet, row)
}
