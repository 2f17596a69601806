package service

import (
	"context"
	"fmt"
	"time"

	"messbot/internal/dto"
	"messbot/pkg/config"
	"messbot/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SchedulerService runs the two unattended daily checks. Failures here are
// swallowed and logged, never escalated: no caller awaits these jobs.
type SchedulerService struct {
	cron      *cron.Cron
	inventory *InventoryService
	feedback  *FeedbackService
	logger    *zap.Logger

	jobs []scheduledJob
}

type scheduledJob struct {
	id      string
	name    string
	entryID cron.EntryID
}

func NewSchedulerService(cfg *config.SchedulerConfig, inventory *InventoryService, feedback *FeedbackService, logger *zap.Logger) (*SchedulerService, error) {
	s := &SchedulerService{
		cron:      cron.New(),
		inventory: inventory,
		feedback:  feedback,
		logger:    logger,
	}

	if err := s.addJob("daily_low_stock_check", "Daily Low Stock Check", cfg.LowStockSpec, s.runLowStockCheck); err != nil {
		return nil, err
	}
	if err := s.addJob("daily_low_rating_check", "Daily Low Rating Check", cfg.LowRatingSpec, s.runLowRatingCheck); err != nil {
		return nil, err
	}

	logger.Info("Scheduled jobs configured", zap.Int("count", len(s.jobs)))
	return s, nil
}

func (s *SchedulerService) addJob(id, name, spec string, run func(context.Context)) error {
	entryID, err := s.cron.AddFunc(spec, func() {
		metrics.ScheduledCheckRuns.WithLabelValues(id).Inc()
		defer func() {
			if r := recover(); r != nil {
				metrics.ScheduledCheckFailures.WithLabelValues(id).Inc()
				s.logger.Error("Scheduled check panicked",
					zap.String("job", id),
					zap.Any("panic", r))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		run(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", id, err)
	}

	s.jobs = append(s.jobs, scheduledJob{id: id, name: name, entryID: entryID})
	return nil
}

func (s *SchedulerService) runLowStockCheck(ctx context.Context) {
	s.logger.Info("Running daily low stock check")

	alerts := s.inventory.CheckLowStock(ctx)
	if len(alerts) == 0 {
		s.logger.Info("All inventory items are adequately stocked")
		return
	}

	s.logger.Warn("Low stock detected", zap.Int("items", len(alerts)))
	for _, alert := range alerts {
		s.logger.Warn(alert.Message)
	}
}

func (s *SchedulerService) runLowRatingCheck(ctx context.Context) {
	s.logger.Info("Running daily low rating check")

	alerts := s.feedback.CheckLowRatings(ctx, 1)
	if len(alerts) == 0 {
		s.logger.Info("No low ratings today")
		return
	}

	s.logger.Warn("Low ratings detected", zap.Int("entries", len(alerts)))
	for _, alert := range alerts {
		s.logger.Warn(alert.Message)
	}
}

func (s *SchedulerService) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started")
}

// Stop halts the cron timers and waits for an in-flight job to finish.
func (s *SchedulerService) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler stopped")
}

// Jobs lists the configured checks with their next run times.
func (s *SchedulerService) Jobs() []dto.JobInfo {
	out := make([]dto.JobInfo, 0, len(s.jobs))
	for _, job := range s.jobs {
		entry := s.cron.Entry(job.entryID)

		next := ""
		if !entry.Next.IsZero() {
			next = entry.Next.Format(time.RFC3339)
		}

		out = append(out, dto.JobInfo{
			ID:          job.id,
			Name:        job.name,
			NextRunTime: next,
		})
	}
	return out
}

// Running reports whether the scheduler has at least one pending entry.
func (s *SchedulerService) Running() bool {
	for _, job := range s.jobs {
		if !s.cron.Entry(job.entryID).Next.IsZero() {
			return true
		}
	}
	return false
}
