package models

type Intent string

const (
	IntentInventoryQuery       Intent = "inventory_query"
	IntentLowStockAlert        Intent = "low_stock_alert"
	IntentAttendanceStats      Intent = "attendance_stats"
	IntentAttendancePrediction Intent = "attendance_prediction"
	IntentFeedbackAverage      Intent = "feedback_average"
	IntentLowRatingAlert       Intent = "low_rating_alert"
	IntentGeneral              Intent = "general"
)

// SupportedIntents lists every intent the bot can answer, in the order they
// are advertised by the help response.
var SupportedIntents = []Intent{
	IntentInventoryQuery,
	IntentLowStockAlert,
	IntentAttendanceStats,
	IntentAttendancePrediction,
	IntentFeedbackAverage,
	IntentLowRatingAlert,
}
