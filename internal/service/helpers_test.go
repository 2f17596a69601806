package service

import (
	"context"
	"testing"

	"messbot/internal/models"
	"messbot/internal/repository"

	"go.uber.org/zap/zaptest"
)

// stubSource serves canned records and captures appended rows.
type stubSource struct {
	records   []models.Record
	appended  [][]interface{}
	appendErr error
}

func (s *stubSource) Records(_ context.Context, _, _ string) []models.Record {
	return s.records
}

func (s *stubSource) Append(_ context.Context, _, _ string, row []interface{}) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.appended = append(s.appended, row)
	return nil
}

func testRepo(t *testing.T, records []models.Record) *repository.DatasetRepository {
	t.Helper()
	return newRepoWithSource(t, &stubSource{records: records})
}

func newRepoWithSource(t *testing.T, source repository.Source) *repository.DatasetRepository {
	t.Helper()
	return repository.NewDatasetRepository(source, "test-sheet", zaptest.NewLogger(t))
}

func rec(pairs ...string) models.Record {
	r := models.Record{}
	for i := 0; i+1 < len(pairs); i += 2 {
		r[pairs[i]] = pairs[i+1]
	}
	return r
}
