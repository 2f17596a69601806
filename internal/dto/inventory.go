package dto

type InventorySummary struct {
	TotalItems        int     `json:"total_items"`
	LowStockItems     int     `json:"low_stock_items"`
	LowStockThreshold float64 `json:"low_stock_threshold,omitempty"`
	Message           string  `json:"message,omitempty"`
}
