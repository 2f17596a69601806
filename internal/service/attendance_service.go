package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"messbot/internal/dto"
	"messbot/internal/models"
	"messbot/internal/repository"

	"go.uber.org/zap"
)

const predictionWindow = 7

// AttendanceService reads the attendance sheet and derives statistics, a
// moving-average prediction, and the current day's record.
type AttendanceService struct {
	repo   *repository.DatasetRepository
	logger *zap.Logger

	// now is swappable in tests for the today lookup.
	now func() time.Time
}

func NewAttendanceService(repo *repository.DatasetRepository, logger *zap.Logger) *AttendanceService {
	return &AttendanceService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// AllRecords returns every attendance record.
func (s *AttendanceService) AllRecords(ctx context.Context) []models.Record {
	return s.repo.Fetch(ctx)
}

// Stats computes descriptive statistics over the most recent days rows.
// Rows are taken newest-first by date when the date column parses, otherwise
// positionally from the end. Stats are computed only for columns the dataset
// actually has.
func (s *AttendanceService) Stats(ctx context.Context, days int) dto.AttendanceStats {
	records := s.repo.Fetch(ctx)
	if len(records) == 0 {
		return dto.AttendanceStats{Message: "No attendance data available"}
	}

	presentCol, presentOK := models.ResolveColumn(records, models.PresentColumns)
	absentCol, absentOK := models.ResolveColumn(records, models.AbsentColumns)
	totalCol, totalOK := models.ResolveColumn(records, models.TotalColumns)

	window := records
	if dateCol, ok := models.ResolveColumn(records, models.DateColumns); ok {
		if sorted, sortedOK := sortByDateDesc(records, dateCol); sortedOK {
			window = head(sorted, days)
		} else {
			window = tail(records, days)
		}
	} else {
		window = tail(records, days)
	}

	stats := dto.AttendanceStats{
		TotalRecords: len(window),
		DaysAnalyzed: minInt(days, len(window)),
	}

	if presentOK {
		if vals := columnValues(window, presentCol); len(vals) > 0 {
			stats.AvgPresent = floatPtr(round2(mean(vals)))
			stats.TotalPresent = intPtr(int(sum(vals)))
			stats.MaxPresent = intPtr(int(maxOf(vals)))
			stats.MinPresent = intPtr(int(minOf(vals)))
		}
	}

	if absentOK {
		if vals := columnValues(window, absentCol); len(vals) > 0 {
			stats.AvgAbsent = floatPtr(round2(mean(vals)))
			stats.TotalAbsent = intPtr(int(sum(vals)))
		}
	}

	if totalOK {
		if vals := columnValues(window, totalCol); len(vals) > 0 {
			stats.AvgTotal = floatPtr(round2(mean(vals)))
		}
	}

	if presentOK && totalOK {
		var rates []float64
		for _, rec := range window {
			present, pOK := rec.Float(presentCol)
			total, tOK := rec.Float(totalCol)
			if pOK && tOK && total != 0 {
				rates = append(rates, present/total*100)
			}
		}
		if len(rates) > 0 {
			stats.AttendanceRatePercentage = floatPtr(round2(mean(rates)))
		}
	}

	return stats
}

// PredictNextDay forecasts the next day's present count as the mean of the
// last 7 rows with a parseable present value, taken in arrival order. The
// window is deliberately not date-sorted; sheets are appended
// chronologically and the original trend semantics depend on that.
func (s *AttendanceService) PredictNextDay(ctx context.Context) dto.AttendancePrediction {
	records := s.repo.Fetch(ctx)
	if len(records) == 0 {
		return dto.AttendancePrediction{Message: "No attendance data available"}
	}

	presentCol, ok := models.ResolveColumn(records, models.PresentColumns)
	if !ok {
		return dto.AttendancePrediction{Message: "Present column not found in attendance data"}
	}

	var valid []float64
	for _, rec := range records {
		if v, parsed := rec.Float(presentCol); parsed {
			valid = append(valid, v)
		}
	}

	if len(valid) < 3 {
		return dto.AttendancePrediction{
			Message: "Insufficient data for prediction (need at least 3 records)",
		}
	}

	recent := valid
	if len(recent) > predictionWindow {
		recent = recent[len(recent)-predictionWindow:]
	}

	avg := mean(recent)
	predicted := int(math.Round(avg))

	trend := "stable"
	if delta := recent[len(recent)-1] - recent[0]; delta > 0 {
		trend = "increasing"
	} else if delta < 0 {
		trend = "decreasing"
	}

	return dto.AttendancePrediction{
		PredictedAttendance: intPtr(predicted),
		PredictionMethod:    "7-day moving average",
		Trend:               trend,
		Confidence:          "medium",
		BasedOnDays:         len(recent),
		Message: fmt.Sprintf("Based on last %d days, predicted attendance is approximately %d students",
			len(recent), predicted),
	}
}

// TodayRecord returns the row whose date equals the current calendar date,
// falling back to the most recent row when no date column exists or nothing
// matches.
func (s *AttendanceService) TodayRecord(ctx context.Context) (models.Record, bool) {
	records := s.repo.Fetch(ctx)
	if len(records) == 0 {
		return nil, false
	}

	dateCol, ok := models.ResolveColumn(records, models.DateColumns)
	if ok {
		today := s.now().Format("2006-01-02")
		var match models.Record
		for _, rec := range records {
			if t, parsed := rec.Date(dateCol); parsed && t.Format("2006-01-02") == today {
				// Last matching row wins, duplicates are corrections.
				match = rec
			}
		}
		if match != nil {
			return match, true
		}
	}

	return records[len(records)-1], true
}

func columnValues(records []models.Record, column string) []float64 {
	var vals []float64
	for _, rec := range records {
		if v, ok := rec.Float(column); ok {
			vals = append(vals, v)
		}
	}
	return vals
}

func mean(vals []float64) float64 {
	return sum(vals) / float64(len(vals))
}

func sum(vals []float64) float64 {
	total := 0.0
	for _, v := range vals {
		total += v
	}
	return total
}

func maxOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
