package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"messbot/internal/dto"
	"messbot/internal/models"
	"messbot/internal/repository"
	"messbot/pkg/metrics"

	"go.uber.org/zap"
)

// InventoryService reads the inventory sheet and derives stock statistics
// and low-stock alerts. Every call re-fetches the dataset.
type InventoryService struct {
	repo              *repository.DatasetRepository
	lowStockThreshold float64
	logger            *zap.Logger
}

func NewInventoryService(repo *repository.DatasetRepository, lowStockThreshold float64, logger *zap.Logger) *InventoryService {
	return &InventoryService{
		repo:              repo,
		lowStockThreshold: lowStockThreshold,
		logger:            logger,
	}
}

// AllItems returns every inventory record, empty when the source is empty.
func (s *InventoryService) AllItems(ctx context.Context) []models.Record {
	return s.repo.Fetch(ctx)
}

// ItemByName finds the first record whose name column contains name,
// case-insensitively.
func (s *InventoryService) ItemByName(ctx context.Context, name string) (models.Record, bool) {
	records := s.repo.Fetch(ctx)
	if len(records) == 0 {
		return nil, false
	}

	nameCol, ok := models.ResolveColumn(records, models.ItemNameColumns)
	if !ok {
		return nil, false
	}

	needle := strings.ToLower(name)
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec[nameCol]), needle) {
			return rec.Clone(), true
		}
	}

	return nil, false
}

// ItemStock returns the quantity of the item whose name matches exactly
// (case-insensitive). An unparseable quantity reads as zero here, unlike
// CheckLowStock which drops such rows from the comparison; both behaviors
// are intentional and load-bearing for existing sheets.
func (s *InventoryService) ItemStock(ctx context.Context, name string) (float64, bool) {
	records := s.repo.Fetch(ctx)
	if len(records) == 0 {
		return 0, false
	}

	nameCol, ok := models.ResolveColumn(records, models.ItemNameColumns)
	if !ok {
		return 0, false
	}
	qtyCol, _ := models.ResolveColumn(records, models.QuantityColumns)

	for _, rec := range records {
		if strings.EqualFold(strings.TrimSpace(rec[nameCol]), name) {
			qty, _ := rec.Float(qtyCol)
			return qty, true
		}
	}

	return 0, false
}

// CheckLowStock emits one alert per item whose quantity is below the
// configured threshold. Rows without a parseable quantity are excluded from
// the comparison; a dataset without recognizable quantity or name columns
// degrades to no alerts.
func (s *InventoryService) CheckLowStock(ctx context.Context) []models.Alert {
	records := s.repo.Fetch(ctx)
	if len(records) == 0 {
		return nil
	}

	qtyCol, qtyOK := models.ResolveColumn(records, models.QuantityColumns)
	nameCol, nameOK := models.ResolveColumn(records, models.ItemNameColumns)
	if !qtyOK || !nameOK {
		return nil
	}

	var alerts []models.Alert
	for _, rec := range records {
		qty, valid := rec.Float(qtyCol)
		if !valid || qty >= s.lowStockThreshold {
			continue
		}
		alerts = append(alerts, models.NewAlert(models.AlertTypeLowStock,
			fmt.Sprintf("Low stock alert: %s has only %s units remaining",
				rec[nameCol], formatQuantity(qty))))
	}

	if len(alerts) > 0 {
		metrics.AlertsEmitted.WithLabelValues(string(models.AlertTypeLowStock)).Add(float64(len(alerts)))
	}
	return alerts
}

// Summary reports total row count, rows below the threshold, and the
// threshold itself.
func (s *InventoryService) Summary(ctx context.Context) dto.InventorySummary {
	records := s.repo.Fetch(ctx)
	if len(records) == 0 {
		return dto.InventorySummary{Message: "No inventory data available"}
	}

	lowStock := 0
	if qtyCol, ok := models.ResolveColumn(records, models.QuantityColumns); ok {
		for _, rec := range records {
			if qty, valid := rec.Float(qtyCol); valid && qty < s.lowStockThreshold {
				lowStock++
			}
		}
	}

	return dto.InventorySummary{
		TotalItems:        len(records),
		LowStockItems:     lowStock,
		LowStockThreshold: s.lowStockThreshold,
	}
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
