package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"messbot/internal/api"
	"messbot/internal/api/handlers"
	"messbot/internal/repository"
	"messbot/internal/service"
	"messbot/pkg/config"
	"messbot/pkg/logger"
	"messbot/pkg/sheets"

	"go.uber.org/zap"
)

// @title Mess Bot API
// @version 1.0
// @description Chat-style query bot for hostel mess inventory, attendance, and meal feedback backed by Google Sheets

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8000
// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Mess Bot service")

	ctx := context.Background()

	// Dataset source: one sheets client, one repository per dataset
	sheetsClient := sheets.NewClient(ctx, &cfg.Sheets, appLogger)
	inventoryRepo := repository.NewDatasetRepository(sheetsClient, cfg.Sheets.InventorySheetID, appLogger)
	attendanceRepo := repository.NewDatasetRepository(sheetsClient, cfg.Sheets.AttendanceSheetID, appLogger)
	feedbackRepo := repository.NewDatasetRepository(sheetsClient, cfg.Sheets.FeedbackSheetID, appLogger)

	// Initialize services
	intentService := service.NewIntentService()
	inventoryService := service.NewInventoryService(inventoryRepo, cfg.Thresholds.LowStock, appLogger)
	attendanceService := service.NewAttendanceService(attendanceRepo, appLogger)
	feedbackService := service.NewFeedbackService(feedbackRepo, cfg.Thresholds.LowRating, appLogger)
	chatService := service.NewChatService(intentService, inventoryService, attendanceService, feedbackService, appLogger)

	schedulerService, err := service.NewSchedulerService(&cfg.Scheduler, inventoryService, feedbackService, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to configure scheduler", zap.Error(err))
	}
	schedulerService.Start()

	// Initialize handlers
	chatHandler := handlers.NewChatHandler(chatService, appLogger)
	dataHandler := handlers.NewDataHandler(inventoryService, feedbackService, appLogger)
	systemHandler := handlers.NewSystemHandler(schedulerService, cfg, appLogger)

	// Setup router
	app := api.SetupRouter(chatHandler, dataHandler, systemHandler)

	// Start server
	go func() {
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	schedulerService.Stop()
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
