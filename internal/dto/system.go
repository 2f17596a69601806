package dto

type JobInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	NextRunTime string `json:"next_run_time"`
}

type ConfigResponse struct {
	LowStockThreshold  float64 `json:"low_stock_threshold"`
	LowRatingThreshold float64 `json:"low_rating_threshold"`
	Host               string  `json:"host"`
	Port               string  `json:"port"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Scheduler string `json:"scheduler"`
}
