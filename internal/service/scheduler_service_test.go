package service

import (
	"context"
	"testing"

	"messbot/internal/models"
	"messbot/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newSchedulerService(t *testing.T, cfg *config.SchedulerConfig) (*SchedulerService, error) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	inventory := NewInventoryService(testRepo(t, []models.Record{
		rec("item_name", "Sugar", "quantity", "5"),
	}), 10, logger)
	feedback := NewFeedbackService(testRepo(t, []models.Record{
		rec("meal_type", "lunch", "rating", "1"),
	}), 2.5, logger)
	return NewSchedulerService(cfg, inventory, feedback, logger)
}

func TestSchedulerService_Jobs(t *testing.T) {
	svc, err := newSchedulerService(t, &config.SchedulerConfig{
		LowStockSpec:  "0 8 * * *",
		LowRatingSpec: "0 21 * * *",
	})
	require.NoError(t, err)

	jobs := svc.Jobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, "daily_low_stock_check", jobs[0].ID)
	assert.Equal(t, "Daily Low Stock Check", jobs[0].Name)
	assert.Equal(t, "daily_low_rating_check", jobs[1].ID)
	assert.Equal(t, "Daily Low Rating Check", jobs[1].Name)

	// Not started yet, no next run times
	assert.Empty(t, jobs[0].NextRunTime)
	assert.False(t, svc.Running())

	svc.Start()
	defer svc.Stop()

	jobs = svc.Jobs()
	assert.NotEmpty(t, jobs[0].NextRunTime)
	assert.NotEmpty(t, jobs[1].NextRunTime)
	assert.True(t, svc.Running())
}

func TestSchedulerService_InvalidSpec(t *testing.T) {
	_, err := newSchedulerService(t, &config.SchedulerConfig{
		LowStockSpec:  "not a cron spec",
		LowRatingSpec: "0 21 * * *",
	})
	assert.Error(t, err)
}

func TestSchedulerService_ChecksSwallowFailures(t *testing.T) {
	// The checks themselves only log; running them directly must not panic
	// even when datasets are empty or service calls misbehave.
	logger := zaptest.NewLogger(t)
	inventory := NewInventoryService(testRepo(t, nil), 10, logger)
	feedback := NewFeedbackService(testRepo(t, nil), 2.5, logger)

	svc, err := NewSchedulerService(&config.SchedulerConfig{
		LowStockSpec:  "0 8 * * *",
		LowRatingSpec: "0 21 * * *",
	}, inventory, feedback, logger)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		svc.runLowStockCheck(context.Background())
		svc.runLowRatingCheck(context.Background())
	})
}
