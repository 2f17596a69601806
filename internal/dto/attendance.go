package dto

// AttendanceStats reports descriptive statistics over the most recent
// attendance rows. Fields stay nil when the backing column is absent from
// the dataset.
type AttendanceStats struct {
	TotalRecords int      `json:"total_records"`
	DaysAnalyzed int      `json:"days_analyzed,omitempty"`
	AvgPresent   *float64 `json:"avg_present,omitempty"`
	TotalPresent *int     `json:"total_present,omitempty"`
	MaxPresent   *int     `json:"max_present,omitempty"`
	MinPresent   *int     `json:"min_present,omitempty"`
	AvgAbsent    *float64 `json:"avg_absent,omitempty"`
	TotalAbsent  *int     `json:"total_absent,omitempty"`
	AvgTotal     *float64 `json:"avg_total,omitempty"`
	// Mean of per-day present/total percentages, only when both columns exist.
	AttendanceRatePercentage *float64 `json:"attendance_rate_percentage,omitempty"`
	Message                  string   `json:"message,omitempty"`
}

// AttendancePrediction is a 7-row moving-average forecast. PredictedAttendance
// is nil when prediction is impossible; Message then names the reason.
type AttendancePrediction struct {
	PredictedAttendance *int   `json:"predicted_attendance,omitempty"`
	PredictionMethod    string `json:"prediction_method,omitempty"`
	Trend               string `json:"trend,omitempty"`
	Confidence          string `json:"confidence,omitempty"`
	BasedOnDays         int    `json:"based_on_days,omitempty"`
	Message             string `json:"message"`
}
