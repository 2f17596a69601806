package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"messbot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newAttendanceService(t *testing.T, records []models.Record) *AttendanceService {
	t.Helper()
	return NewAttendanceService(testRepo(t, records), zaptest.NewLogger(t))
}

func TestAttendanceStats(t *testing.T) {
	svc := newAttendanceService(t, []models.Record{
		rec("date", "2024-03-01", "present", "90", "absent", "10", "total", "100"),
		rec("date", "2024-03-02", "present", "80", "absent", "20", "total", "100"),
		rec("date", "2024-03-03", "present", "100", "absent", "0", "total", "100"),
	})

	stats := svc.Stats(context.Background(), 7)

	assert.Equal(t, 3, stats.TotalRecords)
	assert.Equal(t, 3, stats.DaysAnalyzed)

	require.NotNil(t, stats.AvgPresent)
	assert.Equal(t, 90.0, *stats.AvgPresent)
	require.NotNil(t, stats.TotalPresent)
	assert.Equal(t, 270, *stats.TotalPresent)
	require.NotNil(t, stats.MaxPresent)
	assert.Equal(t, 100, *stats.MaxPresent)
	require.NotNil(t, stats.MinPresent)
	assert.Equal(t, 80, *stats.MinPresent)

	require.NotNil(t, stats.AvgAbsent)
	assert.Equal(t, 10.0, *stats.AvgAbsent)
	require.NotNil(t, stats.AvgTotal)
	assert.Equal(t, 100.0, *stats.AvgTotal)

	require.NotNil(t, stats.AttendanceRatePercentage)
	assert.Equal(t, 90.0, *stats.AttendanceRatePercentage)
}

func TestAttendanceStats_WindowsByDateDescending(t *testing.T) {
	// Rows arrive oldest-first; only the 2 most recent should count
	svc := newAttendanceService(t, []models.Record{
		rec("date", "2024-03-01", "present", "10"),
		rec("date", "2024-03-02", "present", "20"),
		rec("date", "2024-03-03", "present", "30"),
	})

	stats := svc.Stats(context.Background(), 2)

	assert.Equal(t, 2, stats.TotalRecords)
	require.NotNil(t, stats.AvgPresent)
	assert.Equal(t, 25.0, *stats.AvgPresent)
}

func TestAttendanceStats_PositionalFallback(t *testing.T) {
	// No date parses at all, so the window is the positional tail
	svc := newAttendanceService(t, []models.Record{
		rec("date", "first week", "present", "10"),
		rec("date", "second week", "present", "20"),
		rec("date", "third week", "present", "30"),
	})

	stats := svc.Stats(context.Background(), 2)

	require.NotNil(t, stats.AvgPresent)
	assert.Equal(t, 25.0, *stats.AvgPresent)
}

func TestAttendanceStats_MissingColumns(t *testing.T) {
	svc := newAttendanceService(t, []models.Record{
		rec("date", "2024-03-01", "present", "90"),
	})

	stats := svc.Stats(context.Background(), 7)

	require.NotNil(t, stats.AvgPresent)
	assert.Nil(t, stats.AvgAbsent)
	assert.Nil(t, stats.AvgTotal)
	assert.Nil(t, stats.AttendanceRatePercentage, "rate needs both present and total")
}

func TestAttendanceStats_EmptyDataset(t *testing.T) {
	svc := newAttendanceService(t, nil)

	stats := svc.Stats(context.Background(), 7)

	assert.Equal(t, 0, stats.TotalRecords)
	assert.Equal(t, "No attendance data available", stats.Message)
}

func TestPredictNextDay(t *testing.T) {
	svc := newAttendanceService(t, []models.Record{
		rec("date", "2024-03-01", "present", "80"),
		rec("date", "2024-03-02", "present", "90"),
		rec("date", "2024-03-03", "present", "100"),
	})

	prediction := svc.PredictNextDay(context.Background())

	require.NotNil(t, prediction.PredictedAttendance)
	assert.Equal(t, 90, *prediction.PredictedAttendance)
	assert.Equal(t, "increasing", prediction.Trend)
	assert.Equal(t, "7-day moving average", prediction.PredictionMethod)
	assert.Equal(t, 3, prediction.BasedOnDays)
	assert.Contains(t, prediction.Message, "approximately 90")
}

func TestPredictNextDay_Trend(t *testing.T) {
	tests := []struct {
		name    string
		present []string
		want    string
	}{
		{"increasing", []string{"80", "85", "95"}, "increasing"},
		{"decreasing", []string{"95", "85", "80"}, "decreasing"},
		{"stable", []string{"90", "70", "90"}, "stable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []models.Record
			for i, p := range tt.present {
				records = append(records, rec("date", fmt.Sprintf("2024-03-0%d", i+1), "present", p))
			}
			svc := newAttendanceService(t, records)

			prediction := svc.PredictNextDay(context.Background())
			assert.Equal(t, tt.want, prediction.Trend)
		})
	}
}

func TestPredictNextDay_UsesLastSevenRows(t *testing.T) {
	var records []models.Record
	for i := 0; i < 10; i++ {
		records = append(records, rec("present", "50"))
	}
	// The last 7 rows are all 100, earlier rows must not dilute the mean
	for i := 0; i < 7; i++ {
		records = append(records, rec("present", "100"))
	}
	svc := newAttendanceService(t, records)

	prediction := svc.PredictNextDay(context.Background())

	require.NotNil(t, prediction.PredictedAttendance)
	assert.Equal(t, 100, *prediction.PredictedAttendance)
	assert.Equal(t, 7, prediction.BasedOnDays)
}

func TestPredictNextDay_InsufficientData(t *testing.T) {
	tests := []struct {
		name    string
		records []models.Record
		reason  string
	}{
		{
			name:   "empty dataset",
			reason: "No attendance data available",
		},
		{
			name: "no present column",
			records: []models.Record{
				rec("date", "2024-03-01", "headcount", "90"),
			},
			reason: "Present column not found in attendance data",
		},
		{
			name: "fewer than 3 valid rows",
			records: []models.Record{
				rec("present", "90"),
				rec("present", "absent-day"),
				rec("present", "85"),
			},
			reason: "Insufficient data for prediction (need at least 3 records)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAttendanceService(t, tt.records)

			prediction := svc.PredictNextDay(context.Background())

			assert.Nil(t, prediction.PredictedAttendance)
			assert.Equal(t, tt.reason, prediction.Message)
		})
	}
}

func TestPredictNextDay_RoundsToNearestInteger(t *testing.T) {
	svc := newAttendanceService(t, []models.Record{
		rec("present", "90"),
		rec("present", "91"),
		rec("present", "93"),
	})

	prediction := svc.PredictNextDay(context.Background())

	require.NotNil(t, prediction.PredictedAttendance)
	// mean 91.33 rounds down
	assert.Equal(t, 91, *prediction.PredictedAttendance)
}

func TestTodayRecord(t *testing.T) {
	today := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)

	svc := newAttendanceService(t, []models.Record{
		rec("date", "2024-03-01", "present", "80"),
		rec("date", "2024-03-02", "present", "90"),
		rec("date", "2024-03-03", "present", "100"),
	})
	svc.now = func() time.Time { return today }

	record, found := svc.TodayRecord(context.Background())

	require.True(t, found)
	assert.Equal(t, "90", record["present"])
}

func TestTodayRecord_Fallbacks(t *testing.T) {
	t.Run("no date column returns most recent row", func(t *testing.T) {
		svc := newAttendanceService(t, []models.Record{
			rec("present", "80"),
			rec("present", "95"),
		})

		record, found := svc.TodayRecord(context.Background())
		require.True(t, found)
		assert.Equal(t, "95", record["present"])
	})

	t.Run("no matching date returns most recent row", func(t *testing.T) {
		svc := newAttendanceService(t, []models.Record{
			rec("date", "2020-01-01", "present", "80"),
			rec("date", "2020-01-02", "present", "70"),
		})
		svc.now = func() time.Time { return time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC) }

		record, found := svc.TodayRecord(context.Background())
		require.True(t, found)
		assert.Equal(t, "70", record["present"])
	})

	t.Run("empty dataset", func(t *testing.T) {
		svc := newAttendanceService(t, nil)

		_, found := svc.TodayRecord(context.Background())
		assert.False(t, found)
	})
}
