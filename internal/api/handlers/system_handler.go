package handlers

import (
	"messbot/internal/dto"
	"messbot/internal/service"
	"messbot/pkg/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SystemHandler struct {
	scheduler *service.SchedulerService
	cfg       *config.Config
	logger    *zap.Logger
}

func NewSystemHandler(scheduler *service.SchedulerService, cfg *config.Config, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		scheduler: scheduler,
		cfg:       cfg,
		logger:    logger,
	}
}

// Root godoc
// @Summary API status
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *SystemHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "Mess Bot API is operational",
		"version": "1.0.0",
	})
}

// Health godoc
// @Summary Health check
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *SystemHandler) Health(c *fiber.Ctx) error {
	schedulerState := "stopped"
	if h.scheduler.Running() {
		schedulerState = "running"
	}

	return c.JSON(dto.HealthResponse{
		Status:    "healthy",
		Scheduler: schedulerState,
	})
}

// Jobs godoc
// @Summary List scheduled checks
// @Description Returns each configured scheduled check with its next run time
// @Tags scheduler
// @Produce json
// @Success 200 {object} map[string][]dto.JobInfo
// @Router /scheduler/jobs [get]
func (h *SystemHandler) Jobs(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"jobs": h.scheduler.Jobs(),
	})
}

// Config godoc
// @Summary Current configuration
// @Description Non-sensitive configuration readback: thresholds and server bind info
// @Tags config
// @Produce json
// @Success 200 {object} dto.ConfigResponse
// @Router /config [get]
func (h *SystemHandler) Config(c *fiber.Ctx) error {
	return c.JSON(dto.ConfigResponse{
		LowStockThreshold:  h.cfg.Thresholds.LowStock,
		LowRatingThreshold: h.cfg.Thresholds.LowRating,
		Host:               h.cfg.Server.Host,
		Port:               h.cfg.Server.Port,
	})
}
