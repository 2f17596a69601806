package service

import (
	"context"
	"fmt"
	"strings"

	"messbot/internal/dto"
	"messbot/internal/models"
	"messbot/internal/repository"
	"messbot/pkg/metrics"

	"go.uber.org/zap"
)

// mealsPerDay approximates how many feedback rows one day produces, used to
// turn a day count into a row window.
const mealsPerDay = 3

// FeedbackService reads the meal feedback sheet and derives rating averages,
// distributions, and low-rating alerts. It also accepts best-effort feedback
// submissions.
type FeedbackService struct {
	repo               *repository.DatasetRepository
	lowRatingThreshold float64
	logger             *zap.Logger
}

func NewFeedbackService(repo *repository.DatasetRepository, lowRatingThreshold float64, logger *zap.Logger) *FeedbackService {
	return &FeedbackService{
		repo:               repo,
		lowRatingThreshold: lowRatingThreshold,
		logger:             logger,
	}
}

// ratedRow is a feedback record whose rating survived numeric coercion.
type ratedRow struct {
	rec    models.Record
	rating float64
}

// ratedWindow fetches the dataset, drops rows without a parseable rating,
// and restricts to the most recent days*3 rated rows, by date when dates
// parse and positionally otherwise. Dropping happens before windowing, so
// unrated rows never shrink the window. ok=false means no rating column
// exists.
func (s *FeedbackService) ratedWindow(ctx context.Context, days int) ([]ratedRow, bool) {
	records := s.repo.Fetch(ctx)
	if len(records) == 0 {
		return nil, true
	}

	ratingCol, ok := models.ResolveColumn(records, models.RatingColumns)
	if !ok {
		return nil, false
	}

	var rated []models.Record
	for _, rec := range records {
		if _, valid := rec.Float(ratingCol); valid {
			rated = append(rated, rec)
		}
	}
	if len(rated) == 0 {
		return nil, true
	}

	window := rated
	if dateCol, hasDate := models.ResolveColumn(rated, models.DateColumns); hasDate {
		if sorted, sortedOK := sortByDateDesc(rated, dateCol); sortedOK {
			window = head(sorted, days*mealsPerDay)
		} else {
			window = tail(rated, days*mealsPerDay)
		}
	} else {
		window = tail(rated, days*mealsPerDay)
	}

	rows := make([]ratedRow, 0, len(window))
	for _, rec := range window {
		rating, _ := rec.Float(ratingCol)
		rows = append(rows, ratedRow{rec: rec, rating: rating})
	}
	return rows, true
}

// Average computes mean/count/max/min and the four-bucket distribution over
// the recent window, optionally restricted to one meal type.
func (s *FeedbackService) Average(ctx context.Context, days int, mealType string) dto.FeedbackAverage {
	rows, hasRatingCol := s.ratedWindow(ctx, days)
	if !hasRatingCol {
		return dto.FeedbackAverage{Message: "Rating column not found in feedback data"}
	}

	if mealType != "" {
		rows = s.filterByMeal(rows, mealType)
	}

	if len(rows) == 0 {
		msg := "No feedback data available"
		if mealType != "" {
			msg = fmt.Sprintf("No feedback data available for %s", mealType)
		}
		return dto.FeedbackAverage{Message: msg}
	}

	ratings := make([]float64, len(rows))
	dist := dto.RatingDistribution{}
	for i, row := range rows {
		ratings[i] = row.rating
		switch {
		case row.rating >= 4:
			dist.Excellent++
		case row.rating >= 3:
			dist.Good++
		case row.rating >= 2:
			dist.Average++
		default:
			dist.Poor++
		}
	}

	return dto.FeedbackAverage{
		AverageRating: round2(mean(ratings)),
		TotalFeedback: len(rows),
		MaxRating:     floatPtr(maxOf(ratings)),
		MinRating:     floatPtr(minOf(ratings)),
		DaysAnalyzed:  days,
		MealType:      mealType,
		Distribution:  &dist,
	}
}

// CheckLowRatings emits one alert per row in the recent window whose rating
// is strictly below the configured threshold. Meal type and date are
// included in the message when those columns exist.
func (s *FeedbackService) CheckLowRatings(ctx context.Context, days int) []models.Alert {
	rows, hasRatingCol := s.ratedWindow(ctx, days)
	if !hasRatingCol || len(rows) == 0 {
		return nil
	}

	mealCol, hasMeal := models.ResolveColumn([]models.Record{rows[0].rec}, models.MealTypeColumns)
	dateCol, hasDate := models.ResolveColumn([]models.Record{rows[0].rec}, models.DateColumns)

	var alerts []models.Alert
	for _, row := range rows {
		if row.rating >= s.lowRatingThreshold {
			continue
		}

		var mealInfo, dateInfo string
		if hasMeal && row.rec[mealCol] != "" {
			mealInfo = fmt.Sprintf(" for %s", row.rec[mealCol])
		}
		if hasDate {
			if t, ok := row.rec.Date(dateCol); ok {
				dateInfo = fmt.Sprintf(" on %s", t.Format("2006-01-02"))
			} else if row.rec[dateCol] != "" {
				dateInfo = fmt.Sprintf(" on %s", row.rec[dateCol])
			}
		}

		alerts = append(alerts, models.NewAlert(models.AlertTypeLowRating,
			fmt.Sprintf("Low rating alert%s%s: %g stars", mealInfo, dateInfo, row.rating)))
	}

	if len(alerts) > 0 {
		metrics.AlertsEmitted.WithLabelValues(string(models.AlertTypeLowRating)).Add(float64(len(alerts)))
	}
	return alerts
}

// Recent returns up to limit feedback records, newest first when dates
// parse, optionally filtered by meal type.
func (s *FeedbackService) Recent(ctx context.Context, limit int, mealType string) []models.Record {
	records := s.repo.Fetch(ctx)
	if len(records) == 0 {
		return nil
	}

	if mealType != "" {
		if mealCol, ok := models.ResolveColumn(records, models.MealTypeColumns); ok {
			var filtered []models.Record
			for _, rec := range records {
				if strings.EqualFold(strings.TrimSpace(rec[mealCol]), mealType) {
					filtered = append(filtered, rec)
				}
			}
			records = filtered
		}
	}
	if len(records) == 0 {
		return nil
	}

	if dateCol, ok := models.ResolveColumn(records, models.DateColumns); ok {
		if sorted, sortedOK := sortByDateDesc(records, dateCol); sortedOK {
			records = sorted
		}
	}

	return head(records, limit)
}

// Submit appends one feedback row to the sheet. Best-effort: no retries, no
// transactional guarantee.
func (s *FeedbackService) Submit(ctx context.Context, sub dto.FeedbackSubmission) error {
	row := []interface{}{sub.Date, sub.MealType, sub.Rating, sub.Comments}
	if err := s.repo.AppendRow(ctx, row); err != nil {
		return fmt.Errorf("failed to submit feedback: %w", err)
	}
	s.logger.Info("Feedback submitted",
		zap.String("meal_type", sub.MealType),
		zap.Float64("rating", sub.Rating))
	return nil
}

func (s *FeedbackService) filterByMeal(rows []ratedRow, mealType string) []ratedRow {
	if len(rows) == 0 {
		return rows
	}
	mealCol, ok := models.ResolveColumn([]models.Record{rows[0].rec}, models.MealTypeColumns)
	if !ok {
		return rows
	}

	var filtered []ratedRow
	for _, row := range rows {
		if strings.EqualFold(strings.TrimSpace(row.rec[mealCol]), mealType) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
