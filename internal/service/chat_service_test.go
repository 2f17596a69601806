package service

import (
	"context"
	"testing"

	"messbot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newChatService(t *testing.T, inventory, attendance, feedback []models.Record) *ChatService {
	t.Helper()
	logger := zaptest.NewLogger(t)
	return NewChatService(
		NewIntentService(),
		NewInventoryService(testRepo(t, inventory), 10, logger),
		NewAttendanceService(testRepo(t, attendance), logger),
		NewFeedbackService(testRepo(t, feedback), 2.5, logger),
		logger,
	)
}

func TestProcessMessage_InventorySummary(t *testing.T) {
	svc := newChatService(t, []models.Record{
		rec("item_name", "Rice", "quantity", "100"),
		rec("item_name", "Sugar", "quantity", "5"),
	}, nil, nil)

	resp := svc.ProcessMessage(context.Background(), "show me the inventory")

	assert.Equal(t, "inventory_query", resp.Intent)
	assert.Contains(t, resp.Response, "2 total items")
	assert.Contains(t, resp.Response, "1 items with low stock")
	require.Contains(t, resp.Data, "summary")
	require.Contains(t, resp.Data, "items")
}

func TestProcessMessage_InventoryItemLookup(t *testing.T) {
	svc := newChatService(t, []models.Record{
		rec("item_name", "Rice", "quantity", "100"),
	}, nil, nil)

	resp := svc.ProcessMessage(context.Background(), "check stock for rice")
	assert.Equal(t, "inventory_query", resp.Intent)
	assert.Contains(t, resp.Data, "item")

	resp = svc.ProcessMessage(context.Background(), "check stock for paneer")
	assert.Equal(t, "Item 'paneer' not found in inventory", resp.Response)
	assert.Nil(t, resp.Data)
}

func TestProcessMessage_LowStockAlert(t *testing.T) {
	svc := newChatService(t, []models.Record{
		rec("item_name", "Rice", "quantity", "100"),
		rec("item_name", "Sugar", "quantity", "5"),
	}, nil, nil)

	resp := svc.ProcessMessage(context.Background(), "low stock alert")

	assert.Equal(t, "low_stock_alert", resp.Intent)
	assert.Equal(t, "Found 1 low stock alert(s)", resp.Response)

	alerts, ok := resp.Data["alerts"].([]models.Alert)
	require.True(t, ok)
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0].Message, "Sugar")
}

func TestProcessMessage_LowStockAlert_AllStocked(t *testing.T) {
	svc := newChatService(t, []models.Record{
		rec("item_name", "Rice", "quantity", "100"),
	}, nil, nil)

	resp := svc.ProcessMessage(context.Background(), "any low stock warnings for inventory?")

	assert.Equal(t, "low_stock_alert", resp.Intent)
	assert.Equal(t, "No low stock alerts at this time. All items are adequately stocked.", resp.Response)
}

func TestProcessMessage_AttendanceStats(t *testing.T) {
	svc := newChatService(t, nil, []models.Record{
		rec("date", "2024-03-01", "present", "90", "total", "100"),
		rec("date", "2024-03-02", "present", "80", "total", "100"),
	}, nil)

	resp := svc.ProcessMessage(context.Background(), "show attendance statistics")

	assert.Equal(t, "attendance_stats", resp.Intent)
	assert.Contains(t, resp.Response, "Average present: 85")
	assert.Contains(t, resp.Response, "Attendance rate: 85%")
	assert.Contains(t, resp.Data, "stats")
}

func TestProcessMessage_AttendancePrediction(t *testing.T) {
	svc := newChatService(t, nil, []models.Record{
		rec("present", "80"),
		rec("present", "90"),
		rec("present", "100"),
	}, nil)

	resp := svc.ProcessMessage(context.Background(), "predict tomorrow's attendance")

	assert.Equal(t, "attendance_prediction", resp.Intent)
	assert.Contains(t, resp.Response, "predicted attendance is approximately 90")
	assert.Contains(t, resp.Data, "prediction")
}

func TestProcessMessage_FeedbackAverage(t *testing.T) {
	svc := newChatService(t, nil, nil, []models.Record{
		rec("meal_type", "lunch", "rating", "4"),
		rec("meal_type", "lunch", "rating", "5"),
	})

	resp := svc.ProcessMessage(context.Background(), "what is the average rating for lunch")

	assert.Equal(t, "feedback_average", resp.Intent)
	assert.Contains(t, resp.Response, "Feedback Average for lunch")
	assert.Contains(t, resp.Response, "4.5 stars")
	assert.Contains(t, resp.Response, "based on 2 feedback entries")
}

func TestProcessMessage_LowRatingAlert(t *testing.T) {
	svc := newChatService(t, nil, nil, []models.Record{
		rec("meal_type", "lunch", "rating", "1"),
	})

	resp := svc.ProcessMessage(context.Background(), "any low rating alerts?")

	assert.Equal(t, "low_rating_alert", resp.Intent)
	assert.Equal(t, "Found 1 low rating alert(s) in the last 7 days", resp.Response)
}

func TestProcessMessage_GeneralHelp(t *testing.T) {
	svc := newChatService(t, nil, nil, nil)

	resp := svc.ProcessMessage(context.Background(), "what can you do for me")

	assert.Equal(t, "general", resp.Intent)
	assert.Contains(t, resp.Response, "What would you like to know?")

	intents, ok := resp.Data["available_intents"].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{
		"inventory_query",
		"low_stock_alert",
		"attendance_stats",
		"attendance_prediction",
		"feedback_average",
		"low_rating_alert",
	}, intents)
}

func TestProcessMessage_EmptyDatasetsNeverPanic(t *testing.T) {
	svc := newChatService(t, nil, nil, nil)

	for _, message := range []string{
		"show me the inventory",
		"low stock alert",
		"show attendance statistics",
		"predict tomorrow's attendance",
		"what is the average feedback score",
		"any low rating alerts?",
	} {
		resp := svc.ProcessMessage(context.Background(), message)
		assert.NotEmpty(t, resp.Intent, "message: %s", message)
		assert.NotEmpty(t, resp.Response, "message: %s", message)
	}
}
