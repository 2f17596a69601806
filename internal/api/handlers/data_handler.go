package handlers

import (
	"messbot/internal/dto"
	"messbot/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DataHandler serves the direct dataset endpoints alongside the chat
// interface.
type DataHandler struct {
	inventory *service.InventoryService
	feedback  *service.FeedbackService
	logger    *zap.Logger
}

func NewDataHandler(inventory *service.InventoryService, feedback *service.FeedbackService, logger *zap.Logger) *DataHandler {
	return &DataHandler{
		inventory: inventory,
		feedback:  feedback,
		logger:    logger,
	}
}

// ListInventory godoc
// @Summary List inventory items
// @Description Returns every inventory row plus the low-stock summary
// @Tags inventory
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /inventory [get]
func (h *DataHandler) ListInventory(c *fiber.Ctx) error {
	items := h.inventory.AllItems(c.Context())
	summary := h.inventory.Summary(c.Context())

	return c.JSON(fiber.Map{
		"summary": summary,
		"items":   items,
	})
}

// RecentFeedback godoc
// @Summary Recent feedback entries
// @Tags feedback
// @Produce json
// @Param limit query int false "Maximum entries" default(10)
// @Param meal_type query string false "Filter by meal type (breakfast, lunch, dinner)"
// @Success 200 {object} map[string]interface{}
// @Router /feedback/recent [get]
func (h *DataHandler) RecentFeedback(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	mealType := c.Query("meal_type")

	entries := h.feedback.Recent(c.Context(), limit, mealType)
	return c.JSON(fiber.Map{
		"feedback": entries,
		"count":    len(entries),
	})
}

// SubmitFeedback godoc
// @Summary Submit a feedback entry
// @Description Appends one feedback row to the sheet, best-effort
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body dto.FeedbackSubmission true "Feedback entry"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /feedback [post]
func (h *DataHandler) SubmitFeedback(c *fiber.Ctx) error {
	var req dto.FeedbackSubmission
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Rating < 1 || req.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Rating must be between 1 and 5",
		})
	}

	if err := h.feedback.Submit(c.Context(), req); err != nil {
		h.logger.Error("Failed to submit feedback", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to submit feedback",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "submitted",
	})
}
