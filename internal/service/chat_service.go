package service

import (
	"context"
	"fmt"

	"messbot/internal/dto"
	"messbot/internal/models"
	"messbot/pkg/metrics"

	"go.uber.org/zap"
)

const statsWindowDays = 7

// maxItemsInReply caps how many raw inventory rows ride along in a summary
// reply.
const maxItemsInReply = 10

// ChatService composes a reply for one message: classify the intent, extract
// its parameters, dispatch to the matching accessor, and format a
// natural-language summary plus a structured payload. One step, no dialogue
// state.
type ChatService struct {
	intents    *IntentService
	inventory  *InventoryService
	attendance *AttendanceService
	feedback   *FeedbackService
	logger     *zap.Logger
}

func NewChatService(
	intents *IntentService,
	inventory *InventoryService,
	attendance *AttendanceService,
	feedback *FeedbackService,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		intents:    intents,
		inventory:  inventory,
		attendance: attendance,
		feedback:   feedback,
		logger:     logger,
	}
}

func (s *ChatService) ProcessMessage(ctx context.Context, message string) dto.ChatResponse {
	intent := s.intents.DetectIntent(message)
	params := s.intents.ExtractParams(message, intent)

	s.logger.Info("Processing chat message",
		zap.String("intent", string(intent)),
		zap.Any("params", params))
	metrics.ChatQueriesTotal.WithLabelValues(string(intent)).Inc()

	switch intent {
	case models.IntentInventoryQuery:
		return s.handleInventoryQuery(ctx, params)
	case models.IntentLowStockAlert:
		return s.handleLowStockAlert(ctx)
	case models.IntentAttendanceStats:
		return s.handleAttendanceStats(ctx)
	case models.IntentAttendancePrediction:
		return s.handleAttendancePrediction(ctx)
	case models.IntentFeedbackAverage:
		return s.handleFeedbackAverage(ctx, params)
	case models.IntentLowRatingAlert:
		return s.handleLowRatingAlert(ctx)
	default:
		return s.handleGeneral()
	}
}

func (s *ChatService) handleInventoryQuery(ctx context.Context, params map[string]string) dto.ChatResponse {
	if itemName := params["item_name"]; itemName != "" {
		item, found := s.inventory.ItemByName(ctx, itemName)
		if !found {
			return dto.ChatResponse{
				Intent:   string(models.IntentInventoryQuery),
				Response: fmt.Sprintf("Item '%s' not found in inventory", itemName),
				Data:     nil,
			}
		}
		return dto.ChatResponse{
			Intent:   string(models.IntentInventoryQuery),
			Response: fmt.Sprintf("Found item: %v", item),
			Data:     map[string]interface{}{"item": item},
		}
	}

	summary := s.inventory.Summary(ctx)
	items := s.inventory.AllItems(ctx)
	if len(items) > maxItemsInReply {
		items = items[:maxItemsInReply]
	}

	text := fmt.Sprintf("Inventory Summary: %d total items", summary.TotalItems)
	if summary.LowStockItems > 0 {
		text += fmt.Sprintf(", %d items with low stock", summary.LowStockItems)
	}

	return dto.ChatResponse{
		Intent:   string(models.IntentInventoryQuery),
		Response: text,
		Data:     map[string]interface{}{"summary": summary, "items": items},
	}
}

func (s *ChatService) handleLowStockAlert(ctx context.Context) dto.ChatResponse {
	alerts := s.inventory.CheckLowStock(ctx)
	if len(alerts) == 0 {
		return dto.ChatResponse{
			Intent:   string(models.IntentLowStockAlert),
			Response: "No low stock alerts at this time. All items are adequately stocked.",
			Data:     map[string]interface{}{"alerts": []models.Alert{}},
		}
	}
	return dto.ChatResponse{
		Intent:   string(models.IntentLowStockAlert),
		Response: fmt.Sprintf("Found %d low stock alert(s)", len(alerts)),
		Data:     map[string]interface{}{"alerts": alerts},
	}
}

func (s *ChatService) handleAttendanceStats(ctx context.Context) dto.ChatResponse {
	stats := s.attendance.Stats(ctx, statsWindowDays)

	text := "Attendance Statistics (last 7 days): "
	if stats.AvgPresent != nil {
		text += fmt.Sprintf("Average present: %v, ", *stats.AvgPresent)
	}
	if stats.AttendanceRatePercentage != nil {
		text += fmt.Sprintf("Attendance rate: %v%%", *stats.AttendanceRatePercentage)
	}
	if stats.Message != "" {
		text = stats.Message
	}

	return dto.ChatResponse{
		Intent:   string(models.IntentAttendanceStats),
		Response: text,
		Data:     map[string]interface{}{"stats": stats},
	}
}

func (s *ChatService) handleAttendancePrediction(ctx context.Context) dto.ChatResponse {
	prediction := s.attendance.PredictNextDay(ctx)
	return dto.ChatResponse{
		Intent:   string(models.IntentAttendancePrediction),
		Response: prediction.Message,
		Data:     map[string]interface{}{"prediction": prediction},
	}
}

func (s *ChatService) handleFeedbackAverage(ctx context.Context, params map[string]string) dto.ChatResponse {
	mealType := params["meal_type"]
	avg := s.feedback.Average(ctx, statsWindowDays, mealType)

	var mealInfo string
	if mealType != "" {
		mealInfo = fmt.Sprintf(" for %s", mealType)
	}
	text := fmt.Sprintf("Feedback Average%s (last 7 days): %v stars", mealInfo, avg.AverageRating)
	if avg.TotalFeedback > 0 {
		text += fmt.Sprintf(" based on %d feedback entries", avg.TotalFeedback)
	}

	return dto.ChatResponse{
		Intent:   string(models.IntentFeedbackAverage),
		Response: text,
		Data:     map[string]interface{}{"feedback": avg},
	}
}

func (s *ChatService) handleLowRatingAlert(ctx context.Context) dto.ChatResponse {
	alerts := s.feedback.CheckLowRatings(ctx, statsWindowDays)
	if len(alerts) == 0 {
		return dto.ChatResponse{
			Intent:   string(models.IntentLowRatingAlert),
			Response: "No low rating alerts in the last 7 days. Food quality is satisfactory.",
			Data:     map[string]interface{}{"alerts": []models.Alert{}},
		}
	}
	return dto.ChatResponse{
		Intent:   string(models.IntentLowRatingAlert),
		Response: fmt.Sprintf("Found %d low rating alert(s) in the last 7 days", len(alerts)),
		Data:     map[string]interface{}{"alerts": alerts},
	}
}

func (s *ChatService) handleGeneral() dto.ChatResponse {
	intents := make([]string, len(models.SupportedIntents))
	for i, intent := range models.SupportedIntents {
		intents[i] = string(intent)
	}

	return dto.ChatResponse{
		Intent: string(models.IntentGeneral),
		Response: "I can help you with inventory queries, attendance statistics, attendance predictions, " +
			"feedback averages, and alerts for low stock or low ratings. What would you like to know?",
		Data: map[string]interface{}{"available_intents": intents},
	}
}
